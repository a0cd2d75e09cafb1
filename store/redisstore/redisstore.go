package redisstore

import (
	"context"
	"time"

	"github.com/lawbridge/go-session-core/store"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var _ store.Store = (*RedisStore)(nil)

const opTimeout = 2 * time.Second

// RedisStore keeps the session namespace in a Redis hash so multiple
// processes sharing one origin see the same persisted state. Failures are
// logged and swallowed: the store contract is best-effort and a broken
// backend must degrade to "key absent", never to an error surfaced through
// the session core.
type RedisStore struct {
	client *redis.Client
	key    string
	log    zerolog.Logger
}

// New wraps an existing client. hashKey namespaces one logical origin, e.g.
// "session:<origin>".
func New(client *redis.Client, hashKey string, log zerolog.Logger) *RedisStore {
	return &RedisStore{client: client, key: hashKey, log: log}
}

func (rs *RedisStore) Write(key, value string) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := rs.client.HSet(ctx, rs.key, key, value).Err(); err != nil {
		rs.log.Warn().Err(err).Str("key", key).Msg("redis session write failed")
	}
}

func (rs *RedisStore) Read(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	value, err := rs.client.HGet(ctx, rs.key, key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		rs.log.Warn().Err(err).Str("key", key).Msg("redis session read failed")
		return "", false
	}
	return value, true
}

func (rs *RedisStore) Remove(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := rs.client.HDel(ctx, rs.key, key).Err(); err != nil {
		rs.log.Warn().Err(err).Str("key", key).Msg("redis session remove failed")
	}
}
