package cache_test

import (
	"context"
	"testing"
	"time"

	"inkwell/pkg/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestService(t *testing.T) (cache.Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return cache.NewService(client), mr
}

func TestSetAndGet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	require.NoError(t, svc.Set(ctx, "k", payload{Name: "ada", Count: 2}, time.Minute))

	var got payload
	require.NoError(t, svc.Get(ctx, "k", &got))
	assert.Equal(t, payload{Name: "ada", Count: 2}, got)
}

func TestGetMiss(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	var got payload
	err := svc.Get(ctx, "absent", &got)

	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestDeletePattern(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	require.NoError(t, svc.Set(ctx, "inkwell:posts:detail:1", payload{}, time.Minute))
	require.NoError(t, svc.Set(ctx, "inkwell:posts:featured", payload{}, time.Minute))
	require.NoError(t, svc.Set(ctx, "inkwell:other:1", payload{}, time.Minute))

	require.NoError(t, svc.DeletePattern(ctx, "inkwell:posts:*"))

	var got payload
	assert.ErrorIs(t, svc.Get(ctx, "inkwell:posts:detail:1", &got), cache.ErrCacheMiss)
	assert.ErrorIs(t, svc.Get(ctx, "inkwell:posts:featured", &got), cache.ErrCacheMiss)
	assert.NoError(t, svc.Get(ctx, "inkwell:other:1", &got))
}

func TestGetOrSet(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches once then serves from cache", func(t *testing.T) {
		svc, _ := newTestService(t)
		fetches := 0
		fetcher := func() (interface{}, error) {
			fetches++
			return payload{Name: "ada", Count: fetches}, nil
		}

		var first payload
		require.NoError(t, svc.GetOrSet(ctx, "k", time.Minute, fetcher, &first))
		var second payload
		require.NoError(t, svc.GetOrSet(ctx, "k", time.Minute, fetcher, &second))

		assert.Equal(t, 1, fetches)
		assert.Equal(t, first, second)
	})

	t.Run("redis outage degrades to the fetched value", func(t *testing.T) {
		svc, mr := newTestService(t)
		mr.Close()

		var got payload
		err := svc.GetOrSet(ctx, "k", time.Minute, func() (interface{}, error) {
			return payload{Name: "ada", Count: 7}, nil
		}, &got)

		require.NoError(t, err)
		assert.Equal(t, payload{Name: "ada", Count: 7}, got)
	})

	t.Run("fetcher errors still propagate", func(t *testing.T) {
		svc, _ := newTestService(t)

		var got payload
		err := svc.GetOrSet(ctx, "k", time.Minute, func() (interface{}, error) {
			return nil, assert.AnError
		}, &got)

		assert.ErrorIs(t, err, assert.AnError)
	})
}
