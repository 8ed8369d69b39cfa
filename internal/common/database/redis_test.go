package database

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imadgeboyega/kiekky-matchmaker/internal/config"
)

func TestNewRedisClient(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		client, err := NewRedisClient(ctx, config.RedisConfig{})
		assert.ErrorIs(t, err, ErrRedisDisabled)
		assert.Nil(t, client)
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := NewRedisClient(ctx, config.RedisConfig{URL: "http://nope"})
		assert.Error(t, err)
	})

	t.Run("connected", func(t *testing.T) {
		srv := miniredis.RunT(t)
		client, err := NewRedisClient(ctx, config.RedisConfig{URL: "redis://" + srv.Addr()})
		require.NoError(t, err)
		defer client.Close()
		assert.NoError(t, client.Set(ctx, "k", "v", 0).Err())
		got, err := srv.Get("k")
		require.NoError(t, err)
		assert.Equal(t, "v", got)
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := miniredis.RunT(t)
		addr := srv.Addr()
		srv.Close()
		_, err := NewRedisClient(ctx, config.RedisConfig{URL: "redis://" + addr})
		assert.Error(t, err)
	})
}
