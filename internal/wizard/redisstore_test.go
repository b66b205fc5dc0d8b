package wizard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, opts ...RedisOption) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, opts...), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	sess := NewSession()
	require.NoError(t, sess.Wizard.SelectDestination("Maldives"))
	require.NoError(t, store.Save(ctx, sess))

	assert.True(t, mr.Exists("wander:wizard:"+sess.ID))
	assert.Equal(t, DefaultSessionTTL, mr.TTL("wander:wizard:"+sess.ID))

	got, err := store.Load(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.Wizard.State(), got.Wizard.State())
}

func TestRedisStoreOptions(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t, WithPrefix("test:"), WithTTL(time.Minute))

	sess := NewSession()
	require.NoError(t, store.Save(ctx, sess))
	assert.True(t, mr.Exists("test:"+sess.ID))
	assert.Equal(t, time.Minute, mr.TTL("test:"+sess.ID))
}

func TestRedisStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t, WithTTL(time.Minute))

	sess := NewSession()
	require.NoError(t, store.Save(ctx, sess))
	mr.FastForward(2 * time.Minute)

	_, err := store.Load(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStoreDelete(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)

	sess := NewSession()
	require.NoError(t, store.Save(ctx, sess))
	require.NoError(t, store.Delete(ctx, sess.ID))

	_, err := store.Load(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStoreCorruptPayload(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	require.NoError(t, mr.Set("wander:wizard:bad", `{"id":"bad"}`))
	_, err := store.Load(ctx, "bad")
	assert.ErrorIs(t, err, ErrCorruptState)

	require.NoError(t, mr.Set("wander:wizard:worse", `{"id":"worse","wizard":{"step":7}}`))
	_, err = store.Load(ctx, "worse")
	assert.ErrorIs(t, err, ErrCorruptState)

	require.NoError(t, mr.Set("wander:wizard:trunc", `{"id":"trunc","wizard":{"step":`))
	_, err = store.Load(ctx, "trunc")
	assert.ErrorIs(t, err, ErrCorruptState)

	require.NoError(t, mr.Set("wander:wizard:typed", `{"id":"typed","wizard":{"step":"two"}}`))
	_, err = store.Load(ctx, "typed")
	assert.ErrorIs(t, err, ErrCorruptState)
}
