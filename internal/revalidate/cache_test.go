package revalidate

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisCache_SetGetInvalidate(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	cache := NewRedisCache(client, time.Hour)
	ctx := context.Background()

	_, ok := cache.Get(ctx, "/news")
	require.False(t, ok)

	cache.Set(ctx, "/news", "<html>news</html>")
	got, ok := cache.Get(ctx, "/news")
	require.True(t, ok)
	require.Equal(t, "<html>news</html>", got)

	cache.Set(ctx, "/works", "<html>works</html>")
	cache.Invalidate(ctx, "/news", "/works")
	_, ok = cache.Get(ctx, "/news")
	require.False(t, ok)
	_, ok = cache.Get(ctx, "/works")
	require.False(t, ok)
}

func TestRedisCache_TTLExpiry(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	cache := NewRedisCache(client, time.Second)
	ctx := context.Background()

	cache.Set(ctx, "/", "<html>home</html>")
	m.FastForward(2 * time.Second)
	_, ok := cache.Get(ctx, "/")
	require.False(t, ok)
}

func TestMemoryCache(t *testing.T) {
	cache := NewMemoryCache(50 * time.Millisecond)
	ctx := context.Background()

	cache.Set(ctx, "/about", "<html>about</html>")
	got, ok := cache.Get(ctx, "/about")
	require.True(t, ok)
	require.Equal(t, "<html>about</html>", got)

	cache.Invalidate(ctx, "/about")
	_, ok = cache.Get(ctx, "/about")
	require.False(t, ok)

	cache.Set(ctx, "/contact", "x")
	time.Sleep(80 * time.Millisecond)
	_, ok = cache.Get(ctx, "/contact")
	require.False(t, ok)
}
