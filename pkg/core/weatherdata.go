package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/weathervane/weathervane/pkg/dates"
	"github.com/weathervane/weathervane/pkg/errors"
	"github.com/weathervane/weathervane/pkg/model"
	"github.com/weathervane/weathervane/pkg/storage"
	"github.com/weathervane/weathervane/pkg/storage/zipfile"
)

// ErrUnknownLocation indicates a location that is not in the manifest.
var ErrUnknownLocation = errors.New("unknown location")

// Option configures a WeatherData facade.
type Option func(*WeatherData)

// WithFS overrides the filesystem (defaults to the OS filesystem).
func WithFS(fs afero.Fs) Option {
	return func(w *WeatherData) {
		if fs != nil {
			w.fs = fs
		}
	}
}

// WithLogger sets the facade logger (defaults to a nop logger).
func WithLogger(l *zap.Logger) Option {
	return func(w *WeatherData) {
		if l != nil {
			w.l = l
		}
	}
}

// WithHistoryExt overrides the archive entry extension used by every history
// opened through this facade (defaults to "json").
func WithHistoryExt(ext string) Option {
	return func(w *WeatherData) {
		if ext != "" {
			w.ext = ext
		}
	}
}

// New opens the weather data directory: the locations manifest plus one
// history archive per location. The directory is created when missing.
func New(dir string, opts ...Option) (*WeatherData, error) {
	w := &WeatherData{
		dir:       dir,
		fs:        afero.NewOsFs(),
		l:         zap.NewNop(),
		histories: make(map[string]*History),
	}
	for _, apply := range opts {
		apply(w)
	}

	fi, err := w.fs.Stat(dir)
	switch {
	case err != nil && os.IsNotExist(err):
		if err = w.fs.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data directory %q: %w", dir, err)
		}
	case err != nil:
		return nil, err
	case !fi.IsDir():
		return nil, fmt.Errorf("%q is not a directory", dir)
	}

	w.locations, err = LoadLocations(w.fs, dir, w.l)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// WeatherData binds a data directory to the locations manifest and the
// per-location history archives inside it.
type WeatherData struct {
	dir string
	fs  afero.Fs
	l   *zap.Logger
	ext string

	locations *Locations
	histories map[string]*History // keyed by lower-cased alias
}

// Dir is the data directory path.
func (w *WeatherData) Dir() string {
	return w.dir
}

// Locations lists the known locations.
func (w *WeatherData) Locations() []model.Location {
	return w.locations.All()
}

// GetLocation finds a location by name or alias.
func (w *WeatherData) GetLocation(nameOrAlias string) (model.Location, bool) {
	return w.locations.Get(nameOrAlias)
}

// AddLocation registers a location and persists the manifest.
func (w *WeatherData) AddLocation(loc model.Location) error {
	if err := w.locations.Add(loc); err != nil {
		return err
	}
	return w.locations.Save()
}

// RemoveLocation drops a location, its manifest entry and its history
// archive. Reports whether the location was known.
func (w *WeatherData) RemoveLocation(nameOrAlias string) (bool, error) {
	loc, ok := w.locations.Get(nameOrAlias)
	if !ok {
		return false, nil
	}
	if !w.locations.Remove(nameOrAlias) {
		return false, nil
	}
	if err := w.locations.Save(); err != nil {
		return true, err
	}
	delete(w.histories, strings.ToLower(loc.Alias))
	archive := w.ArchivePath(loc)
	if exists, _ := afero.Exists(w.fs, archive); exists {
		if err := w.fs.Remove(archive); err != nil {
			return true, fmt.Errorf("remove history archive %q: %w", archive, err)
		}
	}
	return true, nil
}

// UpdateLocation changes a location's alias and persists the manifest.
// The history archive, if any, is renamed to follow the alias.
func (w *WeatherData) UpdateLocation(name, alias string) (bool, error) {
	loc, ok := w.locations.Get(name)
	if !ok {
		return false, nil
	}
	oldArchive := w.ArchivePath(loc)
	updated, err := w.locations.Update(name, alias)
	if err != nil || !updated {
		return updated, err
	}
	if err := w.locations.Save(); err != nil {
		return true, err
	}
	delete(w.histories, strings.ToLower(loc.Alias))

	newLoc, _ := w.locations.Get(alias)
	if exists, _ := afero.Exists(w.fs, oldArchive); exists {
		if err := w.fs.Rename(oldArchive, w.ArchivePath(newLoc)); err != nil {
			return true, fmt.Errorf("rename history archive: %w", err)
		}
	}
	return true, nil
}

// ArchivePath is the history archive file for a location.
func (w *WeatherData) ArchivePath(loc model.Location) string {
	return filepath.Join(w.dir, model.HistoryArchiveName(loc.Alias))
}

// HistoryExists reports whether a location has a history archive on disk.
func (w *WeatherData) HistoryExists(loc model.Location) bool {
	exists, _ := afero.Exists(w.fs, w.ArchivePath(loc))
	return exists
}

// AddHistory fetches and persists history days for a location through the
// provider callback; see History.Add for batch semantics.
func (w *WeatherData) AddHistory(ctx context.Context, nameOrAlias string, days []time.Time, fetch FetchFunc) (int, error) {
	h, err := w.history(nameOrAlias)
	if err != nil {
		return 0, err
	}
	return h.Add(ctx, days, fetch)
}

// HistoryDates lists a location's stored days within optional bounds.
func (w *WeatherData) HistoryDates(ctx context.Context, nameOrAlias string, from, to time.Time) ([]time.Time, error) {
	h, err := w.history(nameOrAlias)
	if err != nil {
		return nil, err
	}
	return h.Dates(ctx, from, to)
}

// HistoryDateRanges merges a location's stored days into contiguous ranges.
func (w *WeatherData) HistoryDateRanges(ctx context.Context, nameOrAlias string) ([]dates.DateRange, error) {
	h, err := w.history(nameOrAlias)
	if err != nil {
		return nil, err
	}
	return h.DateRanges(ctx)
}

// HistoryProperties aggregates a location's archive counters.
func (w *WeatherData) HistoryProperties(ctx context.Context, nameOrAlias string) (storage.Properties, error) {
	h, err := w.history(nameOrAlias)
	if err != nil {
		return storage.Properties{}, err
	}
	return h.Properties(ctx)
}

// LocationProperties pairs a location with its archive counters.
type LocationProperties struct {
	Location   model.Location
	Properties storage.Properties
}

// AllHistoryProperties aggregates every location's archive counters, sorted
// by location name. Locations without an archive report zero counters.
func (w *WeatherData) AllHistoryProperties(ctx context.Context) ([]LocationProperties, error) {
	locations := w.locations.All()
	sort.Slice(locations, func(i, j int) bool { return locations[i].Name < locations[j].Name })

	all := make([]LocationProperties, 0, len(locations))
	for _, loc := range locations {
		lp := LocationProperties{Location: loc}
		if w.HistoryExists(loc) {
			h, err := w.history(loc.Alias)
			if err != nil {
				return nil, err
			}
			if lp.Properties, err = h.Properties(ctx); err != nil {
				return nil, err
			}
		}
		all = append(all, lp)
	}
	return all, nil
}

// ReadHistory returns the opaque payload stored for one day.
func (w *WeatherData) ReadHistory(ctx context.Context, nameOrAlias string, day time.Time) ([]byte, error) {
	h, err := w.history(nameOrAlias)
	if err != nil {
		return nil, err
	}
	return h.Read(ctx, day)
}

// history lazily opens the location's archive-backed catalog. Opening
// creates the archive when absent; a corrupt archive error is fatal for
// that store and is surfaced unchanged.
func (w *WeatherData) history(nameOrAlias string) (*History, error) {
	loc, ok := w.locations.Get(nameOrAlias)
	if !ok {
		return nil, ErrUnknownLocation.WrapMessage(nameOrAlias)
	}
	key := strings.ToLower(loc.Alias)
	if h, ok := w.histories[key]; ok {
		return h, nil
	}
	store, err := zipfile.New(w.fs, w.ArchivePath(loc), zipfile.Logger(w.l))
	if err != nil {
		return nil, err
	}
	h := NewHistory(store, loc, HistoryLogger(w.l), HistoryExt(w.ext))
	w.histories[key] = h
	return h, nil
}
