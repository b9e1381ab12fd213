package quota

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, limit int) (*Service, *miniredis.Miniredis) {
	t.Helper()

	mini := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	return NewService(rdb, limit), mini
}

func TestRecordIncrementsAndExpires(t *testing.T) {
	s, mini := newService(t, 10)
	userID := uuid.New()
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, userID))
	require.NoError(t, s.Record(ctx, userID))

	used, err := s.Used(ctx, userID, func(from, to time.Time) (int64, error) {
		t.Fatal("authoritative fallback should not be consulted when the key exists")
		return 0, nil
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, used)

	// The counter must not outlive the day.
	ttl := mini.TTL(s.key(userID))
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, 24*time.Hour)
}

func TestUsedSeedsFromAuthoritativeCount(t *testing.T) {
	s, mini := newService(t, 10)
	userID := uuid.New()
	ctx := context.Background()

	calls := 0
	authoritative := func(from, to time.Time) (int64, error) {
		calls++
		assert.Equal(t, from.Add(24*time.Hour), to)
		assert.Equal(t, time.UTC, from.Location())
		return 7, nil
	}

	used, err := s.Used(ctx, userID, authoritative)
	require.NoError(t, err)
	assert.EqualValues(t, 7, used)
	assert.Equal(t, 1, calls)

	// Second read comes from the seeded counter.
	used, err = s.Used(ctx, userID, authoritative)
	require.NoError(t, err)
	assert.EqualValues(t, 7, used)
	assert.Equal(t, 1, calls)

	// After a cache flush it reseeds instead of trusting zero.
	mini.FlushAll()
	used, err = s.Used(ctx, userID, authoritative)
	require.NoError(t, err)
	assert.EqualValues(t, 7, used)
	assert.Equal(t, 2, calls)
}

func TestDayKeyChangesAtMidnight(t *testing.T) {
	s, _ := newService(t, 10)
	userID := uuid.New()

	day1 := time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC)
	day2 := time.Date(2026, 9, 1, 0, 1, 0, 0, time.UTC)

	s.WithNow(func() time.Time { return day1 })
	key1 := s.key(userID)

	s.WithNow(func() time.Time { return day2 })
	key2 := s.key(userID)

	assert.NotEqual(t, key1, key2)
}
