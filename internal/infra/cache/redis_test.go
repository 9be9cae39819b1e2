package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-tracker/backend/config"
)

func TestNewRedisClient_Disabled(t *testing.T) {
	client, err := NewRedisClient(&config.RedisConfig{Enabled: false, URL: "redis://unreachable:6379/0"})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestNewRedisClient_Connects(t *testing.T) {
	server := miniredis.RunT(t)

	client, err := NewRedisClient(&config.RedisConfig{Enabled: true, URL: "redis://" + server.Addr() + "/0"})
	require.NoError(t, err)
	require.NotNil(t, client)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	assert.True(t, server.Exists("k"))
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	_, err := NewRedisClient(&config.RedisConfig{Enabled: true, URL: "http://nope"})
	assert.Error(t, err)
}
