package cache

import (
	"context"
	"deconfliction-service/internal/domain"
	"deconfliction-service/internal/ports"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisVerdictCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisVerdictCache(client, time.Minute), mr
}

func sampleKey() ports.CheckKey {
	return ports.CheckKey{
		Waypoints: []domain.Waypoint{
			{X: 0, Y: 0, Z: domain.Float64(0)},
			{X: 100, Y: 0, Z: domain.Float64(20)},
		},
		Start: 1754820000,
		End:   1754820180,
		Flights: []ports.FlightKey{{
			ID: "Drone3",
			Waypoints: []domain.Waypoint{
				{X: 100, Y: -20, Z: domain.Float64(0), T: domain.Float64(1754819940)},
				{X: 150, Y: 30, Z: domain.Float64(40), T: domain.Float64(1754820180)},
			},
		}},
		SafetyRadius: 10,
		Dt:           1,
	}
}

func sampleVerdict() domain.Verdict {
	return domain.NewVerdict([]domain.Conflict{{
		Time:       1754820109,
		PrimaryPos: domain.Point{60.5, 0, 12.1},
		OtherPos:   domain.Point{62, 5, 9},
		Distance:   9.69,
		OtherID:    "Drone3",
	}})
}

func TestFingerprintStable(t *testing.T) {
	a, err := Fingerprint(sampleKey())
	require.NoError(t, err)
	b, err := Fingerprint(sampleKey())
	require.NoError(t, err)
	assert.Equal(t, a, b)

	changed := sampleKey()
	changed.SafetyRadius = 10.5
	c, err := Fingerprint(changed)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	untimed := sampleKey()
	untimed.Flights[0].Waypoints[0].T = nil
	d, err := Fingerprint(untimed)
	require.NoError(t, err)
	assert.NotEqual(t, a, d)
}

func TestRedisVerdictCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	_, ok, err := c.Get(ctx, sampleKey())
	require.NoError(t, err)
	assert.False(t, ok)

	want := sampleVerdict()
	require.NoError(t, c.Put(ctx, sampleKey(), want))

	got, ok, err := c.Get(ctx, sampleKey())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.Contains(t, keys[0], DefaultKeyPrefix)
	assert.Equal(t, time.Minute, mr.TTL(keys[0]))
}

func TestRedisVerdictCacheClearVerdict(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	require.NoError(t, c.Put(ctx, sampleKey(), domain.NewVerdict(nil)))

	got, ok, err := c.Get(ctx, sampleKey())
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Clear())
	assert.NotNil(t, got.Conflicts)
}

func TestRedisVerdictCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	require.NoError(t, c.Put(ctx, sampleKey(), sampleVerdict()))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, sampleKey())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisVerdictCacheCorruptValue(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	k, err := c.redisKey(sampleKey())
	require.NoError(t, err)
	require.NoError(t, mr.Set(k, "\xc1"))

	_, _, err = c.Get(ctx, sampleKey())
	require.ErrorContains(t, err, "decode")
}

func TestRedisVerdictCacheUnavailable(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)
	mr.Close()

	_, _, err := c.Get(ctx, sampleKey())
	require.Error(t, err)
	require.Error(t, c.Put(ctx, sampleKey(), sampleVerdict()))
}

func TestRedisVerdictCacheFromURL(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := NewRedisVerdictCacheFromURL(context.Background(), "redis://"+mr.Addr()+"/0", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	assert.Equal(t, DefaultTTL, c.TTL)

	_, err = NewRedisVerdictCacheFromURL(context.Background(), "not a url", 0)
	require.Error(t, err)
}
