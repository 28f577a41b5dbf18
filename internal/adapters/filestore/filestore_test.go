package filestore

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopdash/shopdash-ui/internal/ports"
)

func TestStore_SaveReadClear(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shopdash")
	store := New(dir)
	ctx := context.Background()
	profile := store.Scope("default")

	_, err := profile.Read(ctx)
	require.ErrorIs(t, err, ports.ErrNoCredential)

	require.NoError(t, profile.Save(ctx, "t1", 7*24*time.Hour))
	got, err := profile.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t1", got)

	if runtime.GOOS != "windows" {
		info, statErr := os.Stat(store.Path())
		require.NoError(t, statErr)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}

	require.NoError(t, profile.Clear(ctx))
	require.NoError(t, profile.Clear(ctx))
	_, err = profile.Read(ctx)
	assert.ErrorIs(t, err, ports.ErrNoCredential)
}

func TestStore_ProfilesAreIsolated(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Scope("prod").Save(ctx, "tp", time.Hour))
	require.NoError(t, store.Scope("staging").Save(ctx, "ts", time.Hour))
	require.NoError(t, store.Scope("prod").Clear(ctx))

	got, err := store.Scope("staging").Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ts", got)
}

func TestStore_ExpiredCredentialIsAbsent(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()
	require.NoError(t, store.Scope("default").Save(ctx, "t1", time.Hour))

	store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err := store.Scope("default").Read(ctx)
	assert.ErrorIs(t, err, ports.ErrNoCredential)
}

func TestStore_CredentialExposesExpiry(t *testing.T) {
	store := New(t.TempDir())
	fixed := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	require.NoError(t, store.Scope("default").Save(context.Background(), "t1", 24*time.Hour))
	cred, err := store.Credential("default")
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(24*time.Hour), cred.ExpiresAt)
}

func TestStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("{broken"), 0o600))

	_, err := New(dir).Scope("default").Read(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrNoCredential)
}

func TestStore_EmptyProfileRejected(t *testing.T) {
	err := New(t.TempDir()).Scope("").Save(context.Background(), "t1", time.Hour)
	require.Error(t, err)
}
