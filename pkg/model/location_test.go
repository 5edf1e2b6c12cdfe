package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weathervane/weathervane/pkg/errors"
)

func testLocation() Location {
	return Location{
		Name:      "Fairbanks, AK",
		Alias:     "fairbanks_ak",
		Longitude: "-147.7164",
		Latitude:  "64.8378",
		TZ:        "America/Anchorage",
	}
}

func TestLocationIdentity(t *testing.T) {
	loc := testLocation()

	other := loc
	other.Longitude = "0"
	other.Latitude = "0"
	assert.True(t, loc.Same(other), "identity ignores coordinates")

	other = loc
	other.Alias = "FAIRBANKS_AK"
	assert.True(t, loc.Same(other), "identity is case-insensitive")

	other = loc
	other.Alias = "fbx"
	assert.False(t, loc.Same(other))
}

func TestLocationMatching(t *testing.T) {
	loc := testLocation()

	assert.True(t, loc.IsName("fairbanks, ak", false))
	assert.False(t, loc.IsName("fairbanks, ak", true))
	assert.True(t, loc.IsAlias("Fairbanks_AK", false))
	assert.True(t, loc.IsConsidered("fairbanks_ak"))
	assert.True(t, loc.IsConsidered("Fairbanks, AK"))
	assert.False(t, loc.IsConsidered("anchorage"))
}

func TestLocationValidate(t *testing.T) {
	loc := testLocation()
	require.NoError(t, loc.Validate())

	loc.TZ = ""
	err := loc.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidLocation))
}

func TestManifestRoundTrip(t *testing.T) {
	in := []Location{testLocation()}
	b, err := MarshalManifest(in)
	require.NoError(t, err)

	out, err := UnmarshalManifest(b)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, in[0], out[0])
}

func TestManifestDuplicates(t *testing.T) {
	dup := testLocation()
	dup.Longitude = "1" // identity unchanged
	b, err := MarshalManifest([]Location{testLocation(), dup})
	require.NoError(t, err)

	_, err = UnmarshalManifest(b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateLocation))
}

func TestManifestNormalizesAlias(t *testing.T) {
	loc := testLocation()
	loc.Alias = "Fairbanks_AK"
	b, err := MarshalManifest([]Location{loc})
	require.NoError(t, err)

	out, err := UnmarshalManifest(b)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "fairbanks_ak", out[0].Alias)
}
