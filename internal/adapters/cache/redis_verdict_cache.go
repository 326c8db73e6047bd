package cache

import (
	"context"
	"deconfliction-service/internal/domain"
	"deconfliction-service/internal/platform/obs"
	"deconfliction-service/internal/ports"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	DefaultKeyPrefix = "deconflict:verdict:"
	DefaultTTL       = 10 * time.Minute
)

// RedisVerdictCache stores msgpack-encoded verdicts under a fingerprint of
// the check key.
type RedisVerdictCache struct {
	Client redis.UniversalClient
	TTL    time.Duration
	Prefix string
}

func NewRedisVerdictCache(client redis.UniversalClient, ttl time.Duration) *RedisVerdictCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisVerdictCache{Client: client, TTL: ttl, Prefix: DefaultKeyPrefix}
}

// NewRedisVerdictCacheFromURL connects to a redis:// URL and verifies the
// connection.
func NewRedisVerdictCacheFromURL(ctx context.Context, url string, ttl time.Duration) (*RedisVerdictCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("verdict cache: parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("verdict cache: ping redis: %w", err)
	}
	return NewRedisVerdictCache(client, ttl), nil
}

func (c *RedisVerdictCache) redisKey(key ports.CheckKey) (string, error) {
	fp, err := Fingerprint(key)
	if err != nil {
		return "", err
	}
	prefix := c.Prefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return prefix + strconv.FormatUint(fp, 16), nil
}

func (c *RedisVerdictCache) Get(ctx context.Context, key ports.CheckKey) (_ domain.Verdict, _ bool, err error) {
	defer obs.Time(ctx, "verdict.cache.Get")(&err)

	if c.Client == nil {
		return domain.Verdict{}, false, errors.New("verdict cache: client is nil")
	}

	k, err := c.redisKey(key)
	if err != nil {
		return domain.Verdict{}, false, fmt.Errorf("get verdict: %w", err)
	}

	b, err := c.Client.Get(ctx, k).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Verdict{}, false, nil
	}
	if err != nil {
		return domain.Verdict{}, false, fmt.Errorf("get verdict %s: %w", k, err)
	}

	var v domain.Verdict
	if err := msgpack.Unmarshal(b, &v); err != nil {
		return domain.Verdict{}, false, fmt.Errorf("get verdict %s: decode: %w", k, err)
	}
	if v.Conflicts == nil {
		v.Conflicts = []domain.Conflict{}
	}
	return v, true, nil
}

func (c *RedisVerdictCache) Put(ctx context.Context, key ports.CheckKey, v domain.Verdict) (err error) {
	defer obs.Time(ctx, "verdict.cache.Put")(&err)

	if c.Client == nil {
		return errors.New("verdict cache: client is nil")
	}

	k, err := c.redisKey(key)
	if err != nil {
		return fmt.Errorf("put verdict: %w", err)
	}

	b, err := msgpack.Marshal(v)
	if err != nil {
		return fmt.Errorf("put verdict %s: encode: %w", k, err)
	}

	ttl := c.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if err := c.Client.Set(ctx, k, b, ttl).Err(); err != nil {
		return fmt.Errorf("put verdict %s: %w", k, err)
	}
	return nil
}

func (c *RedisVerdictCache) Close() error {
	if c.Client == nil {
		return nil
	}
	return c.Client.Close()
}
