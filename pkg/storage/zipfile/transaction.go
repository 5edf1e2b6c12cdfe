package zipfile

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/weathervane/weathervane/pkg/storage"
	"github.com/weathervane/weathervane/pkg/storage/status"
)

// backupExt is appended to the archive path to form the snapshot name.
// The snapshot lives next to the archive so the restoring rename stays on
// one filesystem and is atomic.
const backupExt = ".bck"

// BeginWrite snapshots the archive to a sibling backup file, then reopens
// the archive for appending: existing members are raw-copied into a fresh
// writer and subsequent Puts append new entries. Commit deletes the backup;
// Rollback renames it back into place, restoring the pre-transaction bytes.
//
// Transactions are exclusive per store instance and non-reentrant.
func (s *zipStore) BeginWrite(ctx context.Context) (storage.WriteTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.writing {
		s.mu.Unlock()
		return nil, status.ErrTxInProgress.WrapMessage(s.path)
	}
	s.writing = true
	s.mu.Unlock()

	tx, err := s.openTx()
	if err != nil {
		s.mu.Lock()
		s.writing = false
		s.mu.Unlock()
		return nil, err
	}
	return tx, nil
}

func (s *zipStore) openTx() (*writeTx, error) {
	backup := s.path + backupExt

	// a leftover backup from an interrupted run is superseded by this snapshot
	if exists, _ := afero.Exists(s.fs, backup); exists {
		s.l.Warn("overwriting stale backup", zap.String("backup", backup))
	}
	if err := copyFile(s.fs, s.path, backup); err != nil {
		return nil, fmt.Errorf("snapshot archive %q: %w", s.path, err)
	}

	bf, err := s.fs.Open(backup)
	if err != nil {
		_ = s.fs.Remove(backup)
		return nil, fmt.Errorf("open backup %q: %w", backup, err)
	}
	defer bf.Close()
	fi, err := bf.Stat()
	if err != nil {
		_ = s.fs.Remove(backup)
		return nil, fmt.Errorf("stat backup %q: %w", backup, err)
	}
	zr, err := zip.NewReader(bf, fi.Size())
	if err != nil {
		_ = s.fs.Remove(backup)
		return nil, status.ErrCorrupted.Wrap(err)
	}

	f, err := s.fs.Create(s.path)
	if err != nil {
		// the archive may have been truncated, put the snapshot back
		if restoreErr := s.restore(backup); restoreErr != nil {
			return nil, fmt.Errorf("restore archive %q: %v (create error: %w)",
				s.path, restoreErr, err)
		}
		return nil, fmt.Errorf("reopen archive %q: %w", s.path, err)
	}
	zw := zip.NewWriter(f)
	for _, member := range zr.File {
		if err = zw.Copy(member); err != nil {
			_ = zw.Close()
			_ = f.Close()
			// the archive was truncated, put the snapshot back
			if restoreErr := s.restore(backup); restoreErr != nil {
				return nil, fmt.Errorf("restore after failed copy of %q: %v (copy error: %w)",
					member.Name, restoreErr, err)
			}
			return nil, fmt.Errorf("carry entry %q over: %w", member.Name, err)
		}
	}

	return &writeTx{
		s:      s,
		f:      f,
		zw:     zw,
		backup: backup,
		added:  make(map[string]struct{}),
	}, nil
}

func (s *zipStore) restore(backup string) error {
	if err := s.fs.Remove(s.path); err != nil {
		return err
	}
	return s.fs.Rename(backup, s.path)
}

type writeTx struct {
	s      *zipStore
	f      afero.File
	zw     *zip.Writer
	backup string

	mu    sync.Mutex
	added map[string]struct{}
	done  bool
}

func (tx *writeTx) Put(ctx context.Context, key string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx.mu.Lock()
	defer tx.mu.Unlock()
	if tx.done {
		return status.ErrTxDone.WrapMessage(tx.s.path)
	}
	if _, ok := tx.added[key]; ok {
		return status.ErrExists.WrapMessage(key)
	}
	tx.s.mu.Lock()
	_, ok := tx.s.members[key]
	tx.s.mu.Unlock()
	if ok {
		return status.ErrExists.WrapMessage(key)
	}

	w, err := tx.zw.CreateHeader(&zip.FileHeader{
		Name:     key,
		Method:   zip.Deflate,
		Modified: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("create entry %q: %w", key, err)
	}
	if _, err = w.Write(payload); err != nil {
		return fmt.Errorf("write entry %q: %w", key, err)
	}
	tx.added[key] = struct{}{}
	return nil
}

func (tx *writeTx) Commit() error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	if tx.done {
		return status.ErrTxDone.WrapMessage(tx.s.path)
	}

	if err := tx.zw.Close(); err != nil {
		return tx.rollbackLocked(fmt.Errorf("finalize archive %q: %w", tx.s.path, err))
	}
	if err := tx.f.Sync(); err != nil {
		tx.s.l.Debug("archive sync", zap.String("archive", tx.s.path), zap.Error(err))
	}
	if err := tx.f.Close(); err != nil {
		return tx.rollbackLocked(fmt.Errorf("close archive %q: %w", tx.s.path, err))
	}
	tx.done = true

	s := tx.s
	s.mu.Lock()
	for key := range tx.added {
		s.members[key] = struct{}{}
	}
	s.writing = false
	s.mu.Unlock()

	// the backup must never outlive the transaction
	if err := s.fs.Remove(tx.backup); err != nil {
		return fmt.Errorf("remove backup %q: %w", tx.backup, err)
	}
	return nil
}

func (tx *writeTx) Rollback(cause error) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	if tx.done {
		return status.ErrTxDone.WrapMessage(tx.s.path)
	}
	return tx.rollbackLocked(cause)
}

// rollbackLocked discards the mutated archive and renames the snapshot back
// into place, then re-raises cause. Member set and cache were never touched
// by this transaction, so they still describe the restored archive.
func (tx *writeTx) rollbackLocked(cause error) error {
	tx.done = true
	_ = tx.zw.Close()
	_ = tx.f.Close()

	s := tx.s
	restoreErr := s.restore(tx.backup)

	s.mu.Lock()
	s.writing = false
	s.mu.Unlock()

	if restoreErr != nil {
		return fmt.Errorf("restore archive %q from backup: %v (rollback cause: %w)",
			s.path, restoreErr, cause)
	}
	s.l.Debug("transaction rolled back",
		zap.String("archive", s.path), zap.Error(cause))
	return cause
}

func copyFile(fs afero.Fs, src, dst string) error {
	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := fs.Create(dst)
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
