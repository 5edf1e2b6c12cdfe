package zipfile

import (
	"context"
	stderr "errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weathervane/weathervane/pkg/errors"
	"github.com/weathervane/weathervane/pkg/storage"
	"github.com/weathervane/weathervane/pkg/storage/status"
)

func archiveBytes(t testing.TB, fs afero.Fs) []byte {
	t.Helper()

	b, err := afero.ReadFile(fs, testArchive)
	require.NoError(t, err)
	return b
}

func backupExists(t testing.TB, fs afero.Fs) bool {
	t.Helper()

	exists, err := afero.Exists(fs, testArchive+backupExt)
	require.NoError(t, err)
	return exists
}

func TestCommitRemovesBackup(t *testing.T) {
	bs, fs := setupStore(t)
	ctx := context.Background()

	tx, err := bs.BeginWrite(ctx)
	require.NoError(t, err)
	assert.True(t, backupExists(t, fs), "backup exists for the life of the transaction")

	require.NoError(t, tx.Put(ctx, "k1", []byte("v1")))
	require.NoError(t, tx.Commit())

	assert.False(t, backupExists(t, fs))
	got, err := bs.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)
}

func TestRollbackRestoresPreTransactionState(t *testing.T) {
	bs, fs := setupStore(t)
	ctx := context.Background()

	putOne(t, bs, "k1", []byte("v1"))
	before := archiveBytes(t, fs)

	// N of M entries appended, then the caller's own logic fails
	boom := stderr.New("provider exploded")
	err := storage.WithTx(ctx, bs, func(tx storage.WriteTx) error {
		if err := tx.Put(ctx, "k2", []byte("v2")); err != nil {
			return err
		}
		if err := tx.Put(ctx, "k3", []byte("v3")); err != nil {
			return err
		}
		return boom
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom), "the original error is re-raised")

	assert.Equal(t, before, archiveBytes(t, fs), "archive byte-identical to pre-transaction state")
	assert.False(t, backupExists(t, fs), "no backup survives")

	// reopening confirms only the committed entry remains
	reopened, err := New(fs, testArchive)
	require.NoError(t, err)
	keys, err := reopened.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"k1"}, keys)
}

func TestRollbackKeepsMemberSetConsistent(t *testing.T) {
	bs, _ := setupStore(t)
	ctx := context.Background()

	boom := stderr.New("nope")
	err := storage.WithTx(ctx, bs, func(tx storage.WriteTx) error {
		if err := tx.Put(ctx, "ghost", []byte("x")); err != nil {
			return err
		}
		return boom
	})
	require.Error(t, err)

	has, err := bs.Has(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, has)

	// the key is writable again after the rollback
	putOne(t, bs, "ghost", []byte("y"))
	got, err := bs.Get(ctx, "ghost")
	require.NoError(t, err)
	assert.Equal(t, []byte("y"), got)
}

func TestSingleWriterDiscipline(t *testing.T) {
	bs, _ := setupStore(t)
	ctx := context.Background()

	tx, err := bs.BeginWrite(ctx)
	require.NoError(t, err)

	_, err = bs.BeginWrite(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrTxInProgress))

	require.NoError(t, tx.Commit())

	// released after commit
	tx2, err := bs.BeginWrite(ctx)
	require.NoError(t, err)
	require.NoError(t, tx2.Rollback(nil))
}

func TestFinishedTransactionRejectsUse(t *testing.T) {
	bs, _ := setupStore(t)
	ctx := context.Background()

	tx, err := bs.BeginWrite(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.True(t, errors.Is(tx.Put(ctx, "k", nil), status.ErrTxDone))
	assert.True(t, errors.Is(tx.Commit(), status.ErrTxDone))
	assert.True(t, errors.Is(tx.Rollback(nil), status.ErrTxDone))
}

func TestStaleBackupIsOverwritten(t *testing.T) {
	bs, fs := setupStore(t)
	ctx := context.Background()

	// simulate a leftover backup from an interrupted run
	require.NoError(t, afero.WriteFile(fs, testArchive+backupExt, []byte("stale"), 0600))

	putOne(t, bs, "k1", []byte("v1"))
	assert.False(t, backupExists(t, fs))

	got, err := bs.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)
}

func TestSuccessiveTransactionsAccumulate(t *testing.T) {
	bs, fs := setupStore(t)
	ctx := context.Background()

	putOne(t, bs, "a/a-20201001.json", []byte("d1"))
	putOne(t, bs, "a/a-20201002.json", []byte("d2"))
	putOne(t, bs, "a/a-20201003.json", []byte("d3"))

	reopened, err := New(fs, testArchive)
	require.NoError(t, err)
	keys, err := reopened.Keys(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, 3)
	for _, key := range keys {
		_, err = reopened.Get(ctx, key)
		require.NoError(t, err)
	}
}
