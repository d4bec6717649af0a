package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisCacheFailsWhenUnreachable(t *testing.T) {
	_, err := NewRedisCache(context.Background(), &RedisConfig{
		Host:        "127.0.0.1",
		Port:        1,
		DialTimeout: 100 * time.Millisecond,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping 127.0.0.1:1")
}

func TestKeysArePrefixed(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	c := NewRedisCacheFromClient(client, "gopet:")
	assert.Equal(t, "gopet:dashboard:snapshot", c.key("dashboard:snapshot"))
}

func TestDeleteWithoutKeysIsNoop(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond})
	defer client.Close()

	c := NewRedisCacheFromClient(client, "gopet:")
	assert.NoError(t, c.Delete(context.Background()))
}
