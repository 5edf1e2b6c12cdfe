package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weathervane/weathervane/pkg/dates"
	"github.com/weathervane/weathervane/pkg/model"
)

type fakeLocations map[string]model.Location

func (f fakeLocations) GetLocation(nameOrAlias string) (model.Location, bool) {
	loc, ok := f[nameOrAlias]
	return loc, ok
}

func TestParseLocationRange(t *testing.T) {
	locs := fakeLocations{
		"fairbanks_ak": {Name: "Fairbanks, AK", Alias: "fairbanks_ak"},
	}

	pair, err := parseLocationRange(locs, "fairbanks_ak=2020-10-01:2021-04-30")
	require.NoError(t, err)
	assert.Equal(t, "fairbanks_ak", pair.Location.Alias)
	assert.True(t, pair.Range.Equal(dates.MustNew(
		dates.Day(2020, time.October, 1),
		dates.Day(2021, time.April, 30),
	)))

	// a single day needs no colon
	pair, err = parseLocationRange(locs, "fairbanks_ak=2020-10-01")
	require.NoError(t, err)
	assert.True(t, pair.Range.Equal(dates.Single(dates.Day(2020, time.October, 1))))

	_, err = parseLocationRange(locs, "fairbanks_ak")
	require.Error(t, err)

	_, err = parseLocationRange(locs, "atlantis=2020-10-01")
	require.Error(t, err)

	_, err = parseLocationRange(locs, "fairbanks_ak=2021-04-30:2020-10-01")
	require.Error(t, err, "reversed bounds are rejected")
}

func TestParseDay(t *testing.T) {
	day, err := parseDay("2020-02-29")
	require.NoError(t, err)
	assert.True(t, day.Equal(dates.Day(2020, time.February, 29)))

	_, err = parseDay("2020-13-01")
	require.Error(t, err)
	_, err = parseDay("20201001")
	require.Error(t, err)
}
