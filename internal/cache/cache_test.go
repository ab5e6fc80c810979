package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm/internal/config"
)

func TestNew_DisabledWithoutAddr(t *testing.T) {
	assert.Nil(t, New(config.RedisConfig{}, zerolog.Nop()))
}

func TestNilClient_IsSafe(t *testing.T) {
	var c *Client
	ctx := context.Background()

	assert.Nil(t, c.Get(ctx, "k"))
	assert.NotPanics(t, func() {
		c.Set(ctx, "k", []byte("v"), time.Minute)
		c.Delete(ctx, "k")
	})
	assert.NoError(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}

func TestUnreachableRedis_FailsSafe(t *testing.T) {
	// nothing listens on port 1
	c := New(config.RedisConfig{Addr: "127.0.0.1:1"}, zerolog.Nop())
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	assert.NotPanics(t, func() {
		c.Set(ctx, "customer:1", []byte("{}"), time.Minute)
		c.Delete(ctx, "customer:1")
	})
	assert.Nil(t, c.Get(ctx, "customer:1"))
	assert.Error(t, c.Ping(ctx))
}

func TestClient_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := New(config.RedisConfig{Addr: mr.Addr()}, zerolog.Nop())
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))
	assert.Nil(t, c.Get(ctx, "customer:1"))

	c.Set(ctx, "customer:1", []byte(`{"id":"1"}`), time.Minute)
	assert.Equal(t, []byte(`{"id":"1"}`), c.Get(ctx, "customer:1"))
	assert.Equal(t, time.Minute, mr.TTL("customer:1"))

	mr.FastForward(2 * time.Minute)
	assert.Nil(t, c.Get(ctx, "customer:1"))

	c.Set(ctx, "customer:2", []byte("x"), time.Minute)
	c.Delete(ctx, "customer:2")
	assert.False(t, mr.Exists("customer:2"))
}
