package storage

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisDialTimeout  = 5 * time.Second
	defaultRedisReadTimeout  = 3 * time.Second
	defaultRedisWriteTimeout = 3 * time.Second
)

// RedisStorage stores each key as a plain redis string with no expiry.
type RedisStorage struct {
	client *redis.Client
	prefix string
}

// OpenRedis connects to the redis URL in dsn (redis://[:password@]host:port/db)
// and validates the connection with PING.
func OpenRedis(ctx context.Context, dsn, prefix string) (*RedisStorage, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		dsn = "redis://localhost:6379/0"
	}
	opts, err := redis.ParseURL(dsn)
	if err != nil {
		return nil, err
	}
	opts.DialTimeout = defaultRedisDialTimeout
	opts.ReadTimeout = defaultRedisReadTimeout
	opts.WriteTimeout = defaultRedisWriteTimeout

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, defaultRedisDialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return NewRedis(client, prefix), nil
}

// NewRedis wraps an existing client. Keys are stored as prefix+key.
func NewRedis(client *redis.Client, prefix string) *RedisStorage {
	return &RedisStorage{client: client, prefix: prefix}
}

func (s *RedisStorage) key(k string) string { return s.prefix + k }

func (s *RedisStorage) Driver() string { return "redis" }

func (s *RedisStorage) Close() error { return s.client.Close() }

func (s *RedisStorage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStorage) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisStorage) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.key(key), value, 0).Err()
}

// redisLockTTL bounds how long a crashed holder can block other replicas.
const redisLockTTL = 10 * time.Minute

var redisUnlock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

func (s *RedisStorage) TryLock(ctx context.Context, key int64) (func(context.Context) error, bool, error) {
	k := s.key("lock:" + strconv.FormatInt(key, 10))
	token := uuid.NewString()
	ok, err := s.client.SetNX(ctx, k, token, redisLockTTL).Result()
	if err != nil || !ok {
		return nil, false, err
	}
	return func(ctx context.Context) error {
		return redisUnlock.Run(ctx, s.client, []string{k}, token).Err()
	}, true, nil
}
