package core

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/weathervane/weathervane/pkg/model"
)

// ManifestName is the locations manifest file inside the data directory.
const ManifestName = "locations.json"

// Locations is the manifest-backed collection of known locations. The
// manifest is read and written wholesale; mutations mark the collection
// dirty and Save persists it.
type Locations struct {
	fs   afero.Fs
	path string
	l    *zap.Logger

	list  []model.Location
	dirty bool
}

// LoadLocations reads the locations manifest from dir, tolerating a missing
// manifest (an empty collection).
func LoadLocations(fs afero.Fs, dir string, l *zap.Logger) (*Locations, error) {
	if l == nil {
		l = zap.NewNop()
	}
	locs := &Locations{
		fs:   fs,
		path: filepath.Join(dir, ManifestName),
		l:    l,
	}

	data, err := afero.ReadFile(fs, locs.path)
	if err != nil {
		if os.IsNotExist(err) {
			l.Debug("locations manifest not found", zap.String("manifest", locs.path))
			return locs, nil
		}
		return nil, err
	}
	locs.list, err = model.UnmarshalManifest(data)
	if err != nil {
		return nil, err
	}
	return locs, nil
}

// Len is the number of known locations.
func (locs *Locations) Len() int {
	return len(locs.list)
}

// All lists the known locations.
func (locs *Locations) All() []model.Location {
	return append([]model.Location(nil), locs.list...)
}

// Get finds a location by name or alias.
func (locs *Locations) Get(nameOrAlias string) (model.Location, bool) {
	if idx := locs.indexOf(nameOrAlias); idx >= 0 {
		return locs.list[idx], true
	}
	return model.Location{}, false
}

// Add registers a new location; an existing identity fails with
// model.ErrDuplicateLocation.
func (locs *Locations) Add(loc model.Location) error {
	if err := loc.Validate(); err != nil {
		return err
	}
	loc = loc.Normalize()
	if locs.indexOf(loc.Name) >= 0 || locs.indexOf(loc.Alias) >= 0 {
		return model.ErrDuplicateLocation.WrapMessage(loc.Name)
	}
	locs.list = append(locs.list, loc)
	locs.dirty = true
	return nil
}

// Remove drops a location by name or alias, reporting whether it was known.
func (locs *Locations) Remove(nameOrAlias string) bool {
	idx := locs.indexOf(nameOrAlias)
	if idx < 0 {
		return false
	}
	locs.list = append(locs.list[:idx], locs.list[idx+1:]...)
	locs.dirty = true
	return true
}

// Update changes the alias of the named location, reporting whether it was
// known. An alias colliding with another location's name or alias fails with
// model.ErrDuplicateLocation, since the alias names the history archive.
func (locs *Locations) Update(name, alias string) (bool, error) {
	idx := locs.indexOf(name)
	if idx < 0 {
		return false, nil
	}
	if other := locs.indexOf(alias); other >= 0 && other != idx {
		return false, model.ErrDuplicateLocation.WrapMessage(alias)
	}
	locs.list[idx].Alias = alias
	locs.list[idx] = locs.list[idx].Normalize()
	locs.dirty = true
	return true, nil
}

// Save writes the manifest back when the collection changed.
func (locs *Locations) Save() error {
	if !locs.dirty {
		return nil
	}
	data, err := model.MarshalManifest(locs.list)
	if err != nil {
		return err
	}
	if err = afero.WriteFile(locs.fs, locs.path, data, 0644); err != nil {
		return err
	}
	locs.dirty = false
	return nil
}

func (locs *Locations) indexOf(nameOrAlias string) int {
	for idx, loc := range locs.list {
		if loc.IsConsidered(nameOrAlias) {
			return idx
		}
	}
	return -1
}
