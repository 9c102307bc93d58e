package service

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 需要真实 Redis：LMS_TEST_REDIS_ADDR=127.0.0.1:6379
func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("LMS_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("LMS_TEST_REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	require.NoError(t, rdb.Ping(context.Background()).Err())
	t.Cleanup(func() {
		rdb.FlushDB(context.Background())
		rdb.Close()
	})
	return rdb
}

func TestRedisNotifierDrain(t *testing.T) {
	rdb := testRedis(t)
	n := NewRedisNotifier(rdb)
	ctx := context.Background()

	for i := 0; i < maxNotificationsUser+5; i++ {
		n.Notify(ctx, 1, NotifyInfo, "m")
	}
	n.Notify(ctx, 1, NotifyError, "last")

	ttl, err := rdb.TTL(ctx, notificationKey(1)).Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)

	items, err := n.Drain(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, maxNotificationsUser)
	assert.Equal(t, "last", items[len(items)-1].Message)

	items, err = n.Drain(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, items)
}
