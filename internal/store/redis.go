package store

import (
	"context"
	"errors"
	"fmt"

	"codefolio/internal/models"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const (
	redisProfileKey = "codefolio:profile:%s"
	redisIndexKey   = "codefolio:profiles"
)

// RedisStore keeps one JSON document per profile plus a set of user ids.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return NewRedisStoreWithClient(client), nil
}

func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func profileKey(userID string) string {
	return fmt.Sprintf(redisProfileKey, userID)
}

func (r *RedisStore) FindByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	data, err := r.client.Get(ctx, profileKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading profile %s: %w", userID, err)
	}

	var p models.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding profile %s: %w", userID, err)
	}
	p.Normalize()
	return &p, nil
}

func (r *RedisStore) Save(ctx context.Context, profile *models.Profile) error {
	if err := validate(profile); err != nil {
		return err
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshaling profile: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, profileKey(profile.UserID), data, 0)
		pipe.SAdd(ctx, redisIndexKey, profile.UserID)
		return nil
	})
	return err
}

func (r *RedisStore) Delete(ctx context.Context, userID string) error {
	var del *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, profileKey(userID))
		pipe.SRem(ctx, redisIndexKey, userID)
		return nil
	})
	if err != nil {
		return err
	}
	if del.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RedisStore) Count(ctx context.Context) (int, error) {
	n, err := r.client.SCard(ctx, redisIndexKey).Result()
	return int(n), err
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
