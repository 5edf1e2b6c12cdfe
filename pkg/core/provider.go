package core

import (
	"context"
	"time"

	"github.com/weathervane/weathervane/pkg/errors"
	"github.com/weathervane/weathervane/pkg/model"
)

// ErrStopFetch is the provider's "stop fetching" signal (e.g. a usage-limit
// condition). A FetchFunc returning it ends the current batch early without
// error: every date already written stays durable and the batch reports how
// many dates it added.
var ErrStopFetch = errors.New("provider signaled to stop fetching")

// FetchFunc is the provider collaborator boundary: it yields the opaque
// payload to persist for one date, ErrStopFetch to end the batch cleanly,
// or any other error to abort it. The core never interprets the payload.
//
// The callback doubles as the cooperative cancellation point of a batch: it
// runs before each date's write, so stopping here never touches dates that
// were already committed.
type FetchFunc func(ctx context.Context, location model.Location, day time.Time) ([]byte, error)
