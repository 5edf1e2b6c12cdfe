package model

import (
	"fmt"
	"strings"

	"github.com/weathervane/weathervane/pkg/errors"
)

var (
	// ErrInvalidLocation indicates a location record with missing required fields
	ErrInvalidLocation = errors.New("invalid location")

	// ErrDuplicateLocation indicates two locations sharing the same identity
	ErrDuplicateLocation = errors.New("duplicate location")
)

// Location identifies a place whose weather history is archived.
//
// Identity is the (name, alias) pair, compared case-insensitively: two
// locations with the same name and alias refer to the same history archive
// no matter the coordinates they carry.
type Location struct {
	Name      string `json:"name" yaml:"name"`
	Alias     string `json:"alias" yaml:"alias"`
	Longitude string `json:"longitude" yaml:"longitude"`
	Latitude  string `json:"latitude" yaml:"latitude"`
	TZ        string `json:"tz" yaml:"tz"`
	_         struct{}
}

func (l Location) String() string {
	return fmt.Sprintf("(name=%q, alias=%s, longitude=%s, latitude=%s, tz=%s)",
		l.Name, l.Alias, l.Longitude, l.Latitude, l.TZ)
}

// Same compares locations by identity (name and alias).
func (l Location) Same(other Location) bool {
	return strings.EqualFold(l.Name, other.Name) && strings.EqualFold(l.Alias, other.Alias)
}

// IsName matches the location name, case-insensitively unless caseSensitive is set.
func (l Location) IsName(name string, caseSensitive bool) bool {
	if caseSensitive {
		return l.Name == name
	}
	return strings.EqualFold(l.Name, name)
}

// IsAlias matches the location alias, case-insensitively unless caseSensitive is set.
func (l Location) IsAlias(alias string, caseSensitive bool) bool {
	if caseSensitive {
		return l.Alias == alias
	}
	return strings.EqualFold(l.Alias, alias)
}

// IsConsidered reports whether value names this location by name or alias.
func (l Location) IsConsidered(value string) bool {
	return l.IsName(value, false) || l.IsAlias(value, false)
}

// Normalize returns a copy with the alias folded to lower case,
// the canonical form used for archive names and entry paths.
func (l Location) Normalize() Location {
	l.Alias = strings.ToLower(l.Alias)
	return l
}

// Validate checks that all required fields are present.
func (l Location) Validate() error {
	for field, value := range map[string]string{
		"name":      l.Name,
		"alias":     l.Alias,
		"longitude": l.Longitude,
		"latitude":  l.Latitude,
		"tz":        l.TZ,
	} {
		if value == "" {
			return ErrInvalidLocation.WrapMessage("the location " + field + " is required")
		}
	}
	return nil
}
