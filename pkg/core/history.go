// Package core presents weather histories as domain objects: a History is
// one location's per-day records over an archive-backed store, Locations is
// the manifest of known locations, and WeatherData ties both to a data
// directory.
package core

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/weathervane/weathervane/pkg/dates"
	"github.com/weathervane/weathervane/pkg/errors"
	"github.com/weathervane/weathervane/pkg/model"
	"github.com/weathervane/weathervane/pkg/storage"
)

// HistoryOption configures a History.
type HistoryOption func(*History)

// HistoryLogger sets the history logger (defaults to a nop logger).
func HistoryLogger(l *zap.Logger) HistoryOption {
	return func(h *History) {
		if l != nil {
			h.l = l
		}
	}
}

// HistoryExt overrides the archive entry extension (defaults to "json").
func HistoryExt(ext string) HistoryOption {
	return func(h *History) {
		if ext != "" {
			h.ext = ext
		}
	}
}

// NewHistory builds the per-day history view of one location over a store.
func NewHistory(store storage.Store, location model.Location, opts ...HistoryOption) *History {
	h := &History{
		store:    store,
		location: location.Normalize(),
		ext:      model.DefaultHistoryExt,
		l:        zap.NewNop(),
	}
	for _, apply := range opts {
		apply(h)
	}
	return h
}

// History is one location's weather history: a set of known dates backed by
// an append-only store, with one archive entry per day.
type History struct {
	store    storage.Store
	location model.Location
	ext      string
	l        *zap.Logger

	mu    sync.Mutex
	dates []time.Time // sorted, lazily built, cleared by Add
}

// Location identifies the history owner.
func (h *History) Location() model.Location {
	return h.location
}

// Path builds the archive entry name for one day of this history.
func (h *History) Path(day time.Time) string {
	return model.HistoryPath(h.location.Alias, day, h.ext)
}

// Dates lists the days with stored history, ascending. Zero bounds are open:
// a non-zero from/to narrows the result to [from, to] inclusive without
// forcing a rescan. The underlying date list is computed once and cached
// until the next Add.
func (h *History) Dates(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	all, err := h.load(ctx)
	if err != nil {
		return nil, err
	}
	if from.IsZero() && to.IsZero() {
		return append([]time.Time(nil), all...), nil
	}
	filtered := make([]time.Time, 0, len(all))
	for _, day := range all {
		if !from.IsZero() && day.Before(from) {
			continue
		}
		if !to.IsZero() && day.After(to) {
			break
		}
		filtered = append(filtered, day)
	}
	return filtered, nil
}

// DateRanges merges the stored dates into maximal runs of consecutive days:
// each date exactly one day after the previous extends the run, a larger gap
// starts a new range.
func (h *History) DateRanges(ctx context.Context) ([]dates.DateRange, error) {
	all, err := h.load(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}

	var ranges []dates.DateRange
	first, last := all[0], all[0]
	for _, current := range all[1:] {
		if current.After(last.AddDate(0, 0, 1)) {
			ranges = append(ranges, dates.DateRange{Low: first, High: last})
			first, last = current, current
		} else {
			last = current
		}
	}
	return append(ranges, dates.DateRange{Low: first, High: last}), nil
}

// Add fetches and persists history for the given days, ascending. Days that
// already exist are skipped with a warning, not re-fetched. Each day is
// written in its own transaction, so a mid-batch provider failure leaves
// every earlier day durably persisted; fetch returning ErrStopFetch ends the
// batch early without error. Returns how many days were added.
func (h *History) Add(ctx context.Context, days []time.Time, fetch FetchFunc) (int, error) {
	if len(days) == 0 {
		h.l.Warn("there are no history dates to add",
			zap.String("location", h.location.Name))
		return 0, nil
	}

	batch := make([]time.Time, len(days))
	copy(batch, days)
	sort.Slice(batch, func(i, j int) bool { return batch[i].Before(batch[j]) })

	added := 0
	defer func() {
		if added > 0 {
			h.invalidate()
		}
	}()

	for _, day := range batch {
		key := h.Path(day)
		has, err := h.store.Has(ctx, key)
		if err != nil {
			return added, err
		}
		if has {
			h.l.Warn("history already exists, skipping",
				zap.String("location", h.location.Name),
				zap.String("entry", key))
			continue
		}

		payload, err := fetch(ctx, h.location, day)
		if err != nil {
			if errors.Is(err, ErrStopFetch) {
				h.l.Info("provider stopped the batch",
					zap.String("location", h.location.Name),
					zap.Int("added", added))
				return added, nil
			}
			return added, fmt.Errorf("fetch history for %s on %s: %w",
				h.location.Name, day.Format("2006-01-02"), err)
		}

		err = storage.WithTx(ctx, h.store, func(tx storage.WriteTx) error {
			return tx.Put(ctx, key, payload)
		})
		if err != nil {
			return added, fmt.Errorf("store history for %s on %s: %w",
				h.location.Name, day.Format("2006-01-02"), err)
		}
		added++
	}
	return added, nil
}

// Read returns the opaque payload stored for one day.
func (h *History) Read(ctx context.Context, day time.Time) ([]byte, error) {
	return h.store.Get(ctx, h.Path(day))
}

// Properties aggregates the backing archive's counters.
func (h *History) Properties(ctx context.Context) (storage.Properties, error) {
	return h.store.Properties(ctx)
}

func (h *History) load(ctx context.Context) ([]time.Time, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.dates != nil {
		return h.dates, nil
	}

	keys, err := h.store.Keys(ctx)
	if err != nil {
		return nil, err
	}
	all := make([]time.Time, 0, len(keys))
	for _, key := range keys {
		pc, err := model.ParseHistoryPath(key)
		if err != nil {
			h.l.Warn("skipping unrecognized archive entry",
				zap.String("entry", key), zap.Error(err))
			continue
		}
		all = append(all, pc.Day)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Before(all[j]) })
	h.dates = all
	return all, nil
}

func (h *History) invalidate() {
	h.mu.Lock()
	h.dates = nil
	h.mu.Unlock()
}
