package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopdash/shopdash-ui/internal/ports"
	"github.com/shopdash/shopdash-ui/internal/testutil"
)

func TestCredentialStore_SaveAndRead(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewCredentialStore(client).Scope("browser-1")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "t1", 7*24*time.Hour))

	got, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t1", got)

	ttl := client.TTL(ctx, DefaultPrefix+"browser-1").Val()
	assert.InDelta(t, (7 * 24 * time.Hour).Seconds(), ttl.Seconds(), 5)
}

func TestCredentialStore_ReadMissing(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewCredentialStore(client)
	ctx := context.Background()

	_, err := store.Scope("nobody").Read(ctx)
	assert.ErrorIs(t, err, ports.ErrNoCredential)

	_, err = store.Scope("").Read(ctx)
	assert.ErrorIs(t, err, ports.ErrNoCredential)
}

func TestCredentialStore_ScopesAreIsolated(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewCredentialStore(client)
	ctx := context.Background()

	require.NoError(t, store.Scope("a").Save(ctx, "ta", time.Hour))
	require.NoError(t, store.Scope("b").Save(ctx, "tb", time.Hour))
	require.NoError(t, store.Scope("a").Clear(ctx))

	_, err := store.Scope("a").Read(ctx)
	assert.ErrorIs(t, err, ports.ErrNoCredential)
	got, err := store.Scope("b").Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tb", got)
}

func TestCredentialStore_ClearIsIdempotent(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewCredentialStore(client).Scope("cli:default")
	ctx := context.Background()

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Save(ctx, "t1", time.Hour))
	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))

	_, err := store.Read(ctx)
	assert.ErrorIs(t, err, ports.ErrNoCredential)
}

func TestCredentialStore_TTLExpiration(t *testing.T) {
	mr, client := testutil.SetupMiniRedis(t)
	store := NewCredentialStore(client).Scope("browser-ttl")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "t1", time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := store.Read(ctx)
	assert.ErrorIs(t, err, ports.ErrNoCredential)
}

func TestCredentialStore_ExpiredPayloadIsCleaned(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	cs := NewCredentialStore(client)
	ctx := context.Background()

	require.NoError(t, cs.Scope("stale").Save(ctx, "t1", time.Hour))
	cs.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err := cs.Scope("stale").Read(ctx)
	assert.ErrorIs(t, err, ports.ErrNoCredential)
	assert.Equal(t, int64(0), client.Exists(ctx, DefaultPrefix+"stale").Val())
}

func TestCredentialStore_CustomPrefix(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewCredentialStoreWithPrefix(client, "test-prefix:")
	ctx := context.Background()

	require.NoError(t, store.Scope("p").Save(ctx, "t1", time.Hour))
	assert.Equal(t, int64(1), client.Exists(ctx, "test-prefix:p").Val())
}

func TestCredentialStore_SaveValidation(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewCredentialStore(client)
	ctx := context.Background()

	err := store.Scope("").Save(ctx, "t1", time.Hour)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scope cannot be empty")

	err = store.Scope("x").Save(ctx, "", time.Hour)
	require.Error(t, err)

	err = store.Scope("x").Save(ctx, "t1", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ttl must be positive")
}

func TestCredentialStore_CorruptPayloadIsAbsent(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewCredentialStore(client)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, DefaultPrefix+"bad", "{not json", time.Hour).Err())
	_, err := store.Scope("bad").Read(ctx)
	assert.ErrorIs(t, err, ports.ErrNoCredential)
}
