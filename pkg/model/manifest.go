package model

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type manifest struct {
	Locations []Location `json:"locations"`
}

// MarshalManifest serializes locations to the locations.json wire form.
func MarshalManifest(locations []Location) ([]byte, error) {
	if locations == nil {
		locations = []Location{}
	}
	return json.MarshalIndent(manifest{Locations: locations}, "", "  ")
}

// UnmarshalManifest parses a locations.json document, validating each record
// and rejecting duplicate identities.
func UnmarshalManifest(data []byte) ([]Location, error) {
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, ErrInvalidLocation.Wrap(err)
	}
	locations := make([]Location, 0, len(m.Locations))
	for _, loc := range m.Locations {
		if err := loc.Validate(); err != nil {
			return nil, err
		}
		loc = loc.Normalize()
		for _, known := range locations {
			if known.Same(loc) {
				return nil, ErrDuplicateLocation.WrapMessage(
					"name=" + loc.Name + " alias=" + loc.Alias)
			}
		}
		locations = append(locations, loc)
	}
	return locations, nil
}
