// Package status declares error constants returned by
// implementations of the Store interface.
//
// NOTE: such constants are located in a separate package to avoid
// creating undue cyclical dependencies between pkg/storage and one
// of its implementations.
package status

import "github.com/weathervane/weathervane/pkg/errors"

var (
	// Sentinel errors returned by implementations of the interface defined by storage

	// ErrNotFound indicates that the requested entry does not exist in the archive
	ErrNotFound = errors.New("not found")

	// ErrExists indicates that the entry already exists and cannot be overridden
	ErrExists = errors.New("exists already")

	// ErrCorrupted indicates that the archive failed its open-time consistency
	// check (duplicate member names) and must not be used
	ErrCorrupted = errors.New("corrupt archive")

	// ErrTxInProgress indicates an attempt to open a second write transaction
	// while one is already open on the same archive
	ErrTxInProgress = errors.New("write transaction already in progress")

	// ErrTxDone indicates use of a transaction that already committed or rolled back
	ErrTxDone = errors.New("write transaction already finished")
)
