// Package zipfile implements storage.Store over a single zip archive.
//
// The archive is the sole source of truth: entry names are scanned once at
// open time, reads are served from the archive (and cached in memory, which
// is safe because entries are immutable), and every mutation runs inside a
// backup-guarded write transaction (see transaction.go).
package zipfile

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/weathervane/weathervane/pkg/storage"
	"github.com/weathervane/weathervane/pkg/storage/status"
)

// Option configures a zipfile store.
type Option func(*zipStore)

// Logger sets the store logger (defaults to a nop logger).
func Logger(l *zap.Logger) Option {
	return func(s *zipStore) {
		if l != nil {
			s.l = l
		}
	}
}

// New opens the archive at path, creating an empty one when absent.
// An existing archive has all member names scanned up front; a repeated
// name fails with status.ErrCorrupted, since writes are append-only and
// the format must never contain duplicates.
func New(fs afero.Fs, path string, opts ...Option) (storage.Store, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	s := &zipStore{
		fs:      fs,
		path:    path,
		l:       zap.NewNop(),
		members: make(map[string]struct{}),
		cache:   make(map[string][]byte),
	}
	for _, apply := range opts {
		apply(s)
	}

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, fmt.Errorf("stat archive %q: %w", path, err)
	}
	if !exists {
		s.l.Warn("archive not found, creating", zap.String("archive", path))
		if err = s.createEmpty(); err != nil {
			return nil, err
		}
		return s, nil
	}
	if err = s.scanMembers(); err != nil {
		return nil, err
	}
	return s, nil
}

type zipStore struct {
	fs   afero.Fs
	path string
	l    *zap.Logger

	mu      sync.Mutex
	writing bool
	members map[string]struct{}
	cache   map[string][]byte
}

func (s *zipStore) String() string {
	return "zipfile@" + s.path
}

func (s *zipStore) Has(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.members[key]
	return ok, nil
}

func (s *zipStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	if _, ok := s.members[key]; !ok {
		s.mu.Unlock()
		return nil, status.ErrNotFound.WrapMessage(key)
	}
	if payload, ok := s.cache[key]; ok {
		s.mu.Unlock()
		return payload, nil
	}
	s.mu.Unlock()

	zr, closer, err := s.openReader()
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	for _, member := range zr.File {
		if member.Name != key {
			continue
		}
		rc, err := member.Open()
		if err != nil {
			return nil, fmt.Errorf("open entry %q in %s: %w", key, s.path, err)
		}
		payload, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read entry %q in %s: %w", key, s.path, err)
		}
		s.mu.Lock()
		s.cache[key] = payload
		s.mu.Unlock()
		return payload, nil
	}
	// member set and archive disagree, e.g. a reader raced a writer
	return nil, status.ErrNotFound.WrapMessage(key)
}

func (s *zipStore) Keys(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.members))
	for key := range s.members {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *zipStore) Properties(_ context.Context) (storage.Properties, error) {
	var p storage.Properties

	zr, closer, err := s.openReader()
	if err != nil {
		return p, err
	}
	defer closer.Close()

	for _, member := range zr.File {
		p.Entries++
		p.EntriesSize += int64(member.UncompressedSize64)
		p.CompressedSize += int64(member.CompressedSize64)
	}
	fi, err := s.fs.Stat(s.path)
	if err != nil {
		return p, fmt.Errorf("stat archive %q: %w", s.path, err)
	}
	p.Size = fi.Size()
	return p, nil
}

func (s *zipStore) createEmpty() error {
	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := s.fs.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("ensuring directories for %q: %w", s.path, err)
		}
	}
	f, err := s.fs.Create(s.path)
	if err != nil {
		return fmt.Errorf("create archive %q: %w", s.path, err)
	}
	zw := zip.NewWriter(f)
	if err = zw.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("initialize archive %q: %w", s.path, err)
	}
	return f.Close()
}

func (s *zipStore) scanMembers() error {
	zr, closer, err := s.openReader()
	if err != nil {
		return err
	}
	defer closer.Close()

	for _, member := range zr.File {
		if _, ok := s.members[member.Name]; ok {
			return status.ErrCorrupted.WrapWithLog(s.l,
				fmt.Errorf("duplicate entry %q", member.Name),
				zap.String("archive", s.path))
		}
		s.members[member.Name] = struct{}{}
	}
	return nil
}

func (s *zipStore) openReader() (*zip.Reader, io.Closer, error) {
	f, err := s.fs.Open(s.path)
	if err != nil {
		return nil, nil, fmt.Errorf("open archive %q: %w", s.path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("stat archive %q: %w", s.path, err)
	}
	zr, err := zip.NewReader(f, fi.Size())
	if err != nil {
		_ = f.Close()
		return nil, nil, status.ErrCorrupted.Wrap(err)
	}
	return zr, f, nil
}
