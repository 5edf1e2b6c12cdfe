package zipfile

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weathervane/weathervane/pkg/errors"
	"github.com/weathervane/weathervane/pkg/storage"
	"github.com/weathervane/weathervane/pkg/storage/status"
)

const testArchive = "weather_data/fairbanks_ak.zip"

func setupStore(t testing.TB) (storage.Store, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	bs, err := New(fs, testArchive)
	require.NoError(t, err)
	return bs, fs
}

func putOne(t testing.TB, bs storage.Store, key string, payload []byte) {
	t.Helper()

	require.NoError(t, storage.WithTx(context.Background(), bs, func(tx storage.WriteTx) error {
		return tx.Put(context.Background(), key, payload)
	}))
}

func TestNewCreatesEmptyArchive(t *testing.T) {
	bs, fs := setupStore(t)

	exists, err := afero.Exists(fs, testArchive)
	require.NoError(t, err)
	assert.True(t, exists)

	keys, err := bs.Keys(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)

	props, err := bs.Properties(context.Background())
	require.NoError(t, err)
	assert.Zero(t, props.Entries)
	assert.NotZero(t, props.Size, "even an empty zip has a directory record")
}

func TestPutGetRoundTrip(t *testing.T) {
	bs, fs := setupStore(t)

	payload := []byte(`{"daily":{"data":[{"temperatureHigh":12.3}]}}`)
	putOne(t, bs, "fairbanks_ak/fairbanks_ak-20201001.json", payload)

	got, err := bs.Get(context.Background(), "fairbanks_ak/fairbanks_ak-20201001.json")
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	// a freshly reopened store sees byte-identical content
	reopened, err := New(fs, testArchive)
	require.NoError(t, err)
	got, err = reopened.Get(context.Background(), "fairbanks_ak/fairbanks_ak-20201001.json")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestGetNotFound(t *testing.T) {
	bs, _ := setupStore(t)

	_, err := bs.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotFound))
}

func TestGetServesFromCache(t *testing.T) {
	bs, fs := setupStore(t)

	key := "fairbanks_ak/fairbanks_ak-20201001.json"
	payload := []byte("payload")
	putOne(t, bs, key, payload)

	got, err := bs.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	// entries are immutable once written, so cached reads survive the
	// archive file going away
	require.NoError(t, fs.Remove(testArchive))
	got, err = bs.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestHasAndKeys(t *testing.T) {
	bs, _ := setupStore(t)

	putOne(t, bs, "a/a-20201002.json", []byte("two"))
	putOne(t, bs, "a/a-20201001.json", []byte("one"))

	has, err := bs.Has(context.Background(), "a/a-20201001.json")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = bs.Has(context.Background(), "a/a-20201003.json")
	require.NoError(t, err)
	assert.False(t, has)

	keys, err := bs.Keys(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a/a-20201001.json", "a/a-20201002.json"}, keys)
}

func TestDuplicatePutFails(t *testing.T) {
	bs, _ := setupStore(t)
	ctx := context.Background()

	key := "a/a-20201001.json"
	putOne(t, bs, key, []byte("original"))

	err := storage.WithTx(ctx, bs, func(tx storage.WriteTx) error {
		return tx.Put(ctx, key, []byte("override"))
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrExists))

	// entry count unchanged, content untouched
	props, err := bs.Properties(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, props.Entries)

	got, err := bs.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), got)
}

func TestDuplicatePutWithinTx(t *testing.T) {
	bs, _ := setupStore(t)
	ctx := context.Background()

	err := storage.WithTx(ctx, bs, func(tx storage.WriteTx) error {
		if err := tx.Put(ctx, "k", []byte("first")); err != nil {
			return err
		}
		return tx.Put(ctx, "k", []byte("second"))
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrExists))

	has, err := bs.Has(ctx, "k")
	require.NoError(t, err)
	assert.False(t, has, "the whole transaction rolled back")
}

func TestOpenDetectsDuplicateMembers(t *testing.T) {
	fs := afero.NewMemMapFs()

	// hand-roll an archive with a repeated member name
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, content := range []string{"one", "two"} {
		w, err := zw.Create("dup/dup-20200101.json")
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, afero.WriteFile(fs, "dup.zip", buf.Bytes(), 0600))

	_, err := New(fs, "dup.zip")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrCorrupted))
}

func TestProperties(t *testing.T) {
	bs, _ := setupStore(t)
	ctx := context.Background()

	// compressible payloads so compressed size differs from entry size
	big := bytes.Repeat([]byte("weather "), 512)
	putOne(t, bs, "a/a-20201001.json", big)
	putOne(t, bs, "a/a-20201002.json", big)

	props, err := bs.Properties(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, props.Entries)
	assert.EqualValues(t, 2*len(big), props.EntriesSize)
	assert.Less(t, props.CompressedSize, props.EntriesSize)
	assert.NotZero(t, props.Size)
}

func TestString(t *testing.T) {
	bs, _ := setupStore(t)
	assert.Equal(t, "zipfile@"+testArchive, bs.String())
}
