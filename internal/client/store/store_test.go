package store

import (
	"context"
	"database/sql"
	"testing"

	"shopgate/internal/client/models"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE session (key TEXT PRIMARY KEY, value BLOB NOT NULL)`)
	require.NoError(t, err)
	return New(db)
}

func TestSetGetDelete(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyToken, []byte("tok")))
	got, err := s.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.Equal(t, []byte("tok"), got)

	// overwrite
	require.NoError(t, s.Set(ctx, KeyToken, []byte("tok2")))
	got, err = s.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.Equal(t, []byte("tok2"), got)

	require.NoError(t, s.Delete(ctx, KeyToken))
	got, err = s.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestClear_RemovesAllFiveKeys(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	for _, key := range SessionKeys {
		require.NoError(t, s.Set(ctx, key, []byte("v")))
	}
	require.NoError(t, s.Clear(ctx))

	for _, key := range SessionKeys {
		got, err := s.Get(ctx, key)
		require.NoError(t, err)
		require.Nil(t, got, "key %s must be absent after Clear", key)
	}
}

func TestClear_KeepsSealKey(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetSealed(ctx, KeyCachedPassword, []byte("pw")))
	require.NoError(t, s.Clear(ctx))

	key, err := s.Get(ctx, sealKeyRow)
	require.NoError(t, err)
	require.NotNil(t, key)
}

func TestSealedRoundTrip(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetSealed(ctx, KeyCachedPassword, []byte("hunter2")))

	// raw value must not be plaintext
	raw, err := s.Get(ctx, KeyCachedPassword)
	require.NoError(t, err)
	require.NotEqual(t, []byte("hunter2"), raw)

	plain, err := s.GetSealed(ctx, KeyCachedPassword)
	require.NoError(t, err)
	require.Equal(t, []byte("hunter2"), plain)
}

func TestGetSealed_Missing(t *testing.T) {
	s := setupStore(t)
	got, err := s.GetSealed(context.Background(), KeyCachedEmail)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestAccountSnapshotRoundTrip(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	a := &models.Account{ID: "o-1", Email: "a@b.c", ShopName: "Corner Shop", Status: models.StatusActive}
	require.NoError(t, s.SaveAccount(ctx, a))

	got, err := s.LoadAccount(ctx)
	require.NoError(t, err)
	require.Equal(t, a, got)
}

func TestLoadAccount_Missing(t *testing.T) {
	s := setupStore(t)
	got, err := s.LoadAccount(context.Background())
	require.NoError(t, err)
	require.Nil(t, got)
}
