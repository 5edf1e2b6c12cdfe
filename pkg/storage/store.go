// Package storage defines the interface to archive-backed blob stores.
//
// A Store maps hierarchical string keys to immutable byte payloads: once
// written, an entry is never overwritten or deleted through normal operation.
// All mutation happens inside a write transaction, an exclusive scope whose
// effects either commit in full or roll the archive back to its
// pre-transaction state.
//
// Implementations live in subpackages (e.g. zipfile). Sentinel errors are in
// package status to keep implementations free of import cycles.
package storage

import (
	"context"
)

// Store is an append-only key/value view over one archive.
type Store interface {
	String() string

	// Has reports whether key exists in the archive.
	Has(ctx context.Context, key string) (bool, error)

	// Get returns the payload stored under key, or status.ErrNotFound.
	// Payloads are immutable; implementations may cache them.
	Get(ctx context.Context, key string) ([]byte, error)

	// Keys lists every entry name, sorted ascending.
	Keys(ctx context.Context) ([]string, error)

	// Properties aggregates archive-wide counters with a full scan.
	Properties(ctx context.Context) (Properties, error)

	// BeginWrite opens a write transaction. Transactions on one archive are
	// exclusive and non-reentrant: a second call while one is open fails with
	// status.ErrTxInProgress.
	BeginWrite(ctx context.Context) (WriteTx, error)
}

// WriteTx is a single-writer transaction scope over one archive.
// Exactly one of Commit or Rollback must be called; either finishes the
// transaction and removes the backup snapshot taken at BeginWrite.
type WriteTx interface {
	// Put appends a new entry. Writing a key that exists in the archive, or
	// that was written earlier in this same transaction, fails with
	// status.ErrExists.
	Put(ctx context.Context, key string, payload []byte) error

	// Commit makes every Put durable and deletes the backup snapshot.
	// A commit that cannot finalize the archive rolls back instead and
	// reports why.
	Commit() error

	// Rollback restores the archive to its pre-transaction state and returns
	// cause so callers can re-raise the triggering error.
	Rollback(cause error) error
}

// Properties are the full-scan aggregates of one archive.
type Properties struct {
	// Entries is the number of stored payloads.
	Entries int64
	// EntriesSize sums the uncompressed payload sizes.
	EntriesSize int64
	// CompressedSize sums the stored (compressed) payload sizes.
	CompressedSize int64
	// Size is the archive file size on disk.
	Size int64
	_    struct{}
}

// WithTx runs fn inside a write transaction: committed when fn returns nil,
// rolled back (re-raising fn's error) otherwise.
func WithTx(ctx context.Context, s Store, fn func(tx WriteTx) error) error {
	tx, err := s.BeginWrite(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		return tx.Rollback(err)
	}
	return tx.Commit()
}
