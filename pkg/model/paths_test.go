package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weathervane/weathervane/pkg/errors"
)

func TestHistoryPath(t *testing.T) {
	day := time.Date(2020, time.February, 29, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "fairbanks_ak/fairbanks_ak-20200229.json",
		HistoryPath("fairbanks_ak", day, ""))
	assert.Equal(t, "fairbanks_ak/fairbanks_ak-20200229.json",
		HistoryPath("Fairbanks_AK", day, "json"))
	assert.Equal(t, "fairbanks_ak/fairbanks_ak-20200229.csv",
		HistoryPath("fairbanks_ak", day, "csv"))
}

func TestParseHistoryPath(t *testing.T) {
	pc, err := ParseHistoryPath("fairbanks_ak/fairbanks_ak-20200229.json")
	require.NoError(t, err)
	assert.Equal(t, "fairbanks_ak", pc.Alias)
	assert.Equal(t, time.Date(2020, time.February, 29, 0, 0, 0, 0, time.UTC), pc.Day)
}

func TestParseHistoryPathRoundTrip(t *testing.T) {
	day := time.Date(2021, time.December, 1, 0, 0, 0, 0, time.UTC)
	pc, err := ParseHistoryPath(HistoryPath("medford_or", day, ""))
	require.NoError(t, err)
	assert.Equal(t, "medford_or", pc.Alias)
	assert.True(t, pc.Day.Equal(day))
}

func TestParseHistoryPathRejectsMalformed(t *testing.T) {
	for _, entry := range []string{
		"noseparator.json",
		"alias/alias-2020022.json",  // short date
		"alias/alias-2020x229.json", // non-numeric date
		"alias/alias-.json",
	} {
		_, err := ParseHistoryPath(entry)
		require.Error(t, err, entry)
		assert.True(t, errors.Is(err, ErrInvalidHistoryPath), entry)
	}
}

func TestHistoryArchiveName(t *testing.T) {
	assert.Equal(t, "fairbanks_ak.zip", HistoryArchiveName("Fairbanks_AK"))
}
