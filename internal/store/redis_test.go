package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s := NewRedisStoreWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestRedisStore_Contract(t *testing.T) {
	runContract(t, func(t *testing.T) ProfileStoreInterface {
		s, _ := newMiniredisStore(t)
		return s
	})
}

func TestRedisStore_Layout(t *testing.T) {
	s, mr := newMiniredisStore(t)
	require.NoError(t, s.Save(context.Background(), fixtureProfile("u1")))

	assert.True(t, mr.Exists("codefolio:profile:u1"))
	members, err := mr.Members("codefolio:profiles")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, members)
}

func TestRedisStore_CorruptDocument(t *testing.T) {
	s, mr := newMiniredisStore(t)
	require.NoError(t, mr.Set("codefolio:profile:u1", "{not json"))

	_, err := s.FindByUserID(context.Background(), "u1")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestNewRedisStore_BadURL(t *testing.T) {
	_, err := NewRedisStore("not-a-url")
	assert.Error(t, err)
}

func TestNewRedisStore_Connects(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := NewRedisStore("redis://" + mr.Addr())

	require.NoError(t, err)
	assert.NoError(t, s.Close())
}
