package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"kbradar/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, exp time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.data[key] = string(value.([]byte))
	f.ttls[key] = exp
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Ping(context.Context) *redis.StatusCmd { return redis.NewStatusResult("PONG", nil) }
func (f *fakeRedis) Close() error                           { return nil }

func TestKey(t *testing.T) {
	require.Equal(t, "kbradar:v1:ranking:oliveyoung:KR:skincare:20",
		Key("ranking", "oliveyoung", "KR", "skincare", "20"))

	k := Key("products", "Beauty of Joseon")
	require.Regexp(t, `^kbradar:v1:products:h[0-9a-f]{16}$`, k)
	require.Equal(t, k, Key("products", " Beauty of Joseon "))
	require.NotEqual(t, k, Key("products", "beauty of joseon"))
}

func TestKeyKeepsIDCase(t *testing.T) {
	require.Equal(t, "kbradar:v1:company:ABC", Key("company", "ABC"))
	require.NotEqual(t, Key("company", "ABC"), Key("company", "abc"))
	require.NotEqual(t, Key("company", "회사A"), Key("company", "회사a"))
}

func TestGetSetRoundTrip(t *testing.T) {
	rdb := newFakeRedis()
	c := NewWithClient(rdb, time.Minute, nil)
	ctx := context.Background()

	items := []models.RankingItem{{Rank: 1, Brand: "Cosrx", WowChange: 2}}
	require.True(t, c.Set(ctx, "k", items))
	require.Equal(t, time.Minute, rdb.ttls["k"])

	var got []models.RankingItem
	require.True(t, c.Get(ctx, "k", &got))
	require.Equal(t, items, got)

	require.False(t, c.Get(ctx, "absent", &got))
}

func TestErrorsAreMisses(t *testing.T) {
	rdb := newFakeRedis()
	rdb.getErr = errors.New("connection refused")
	rdb.setErr = errors.New("connection refused")
	c := NewWithClient(rdb, time.Minute, nil)
	ctx := context.Background()

	var got []string
	require.False(t, c.Get(ctx, "k", &got))
	require.False(t, c.Set(ctx, "k", []string{"a"}))

	rdb.getErr = nil
	rdb.data["bad"] = "{not json"
	require.False(t, c.Get(ctx, "bad", &got))
}

func TestNilCacheIsDisabled(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	var got []string
	require.False(t, c.Get(ctx, "k", &got))
	require.False(t, c.Set(ctx, "k", got))
	require.Error(t, c.Ping(ctx))
	require.NoError(t, c.Close())

	disabled, err := New("", time.Minute, nil)
	require.NoError(t, err)
	require.Nil(t, disabled)
}
