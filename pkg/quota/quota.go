// Package quota enforces the daily swipe cap. Redis holds a per-user counter
// keyed by UTC calendar day with a TTL to the next midnight; the database
// count is authoritative and seeds the counter when Redis is cold, so a cache
// flush can never grant extra swipes.
package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

type Service struct {
	redis *redis.Client
	limit int

	// now is swappable in tests.
	now func() time.Time
}

func NewService(rdb *redis.Client, limit int) *Service {
	return &Service{redis: rdb, limit: limit, now: time.Now}
}

func (s *Service) Limit() int {
	return s.limit
}

// Day boundaries are server-side UTC midnight.
func (s *Service) dayWindow() (time.Time, time.Time) {
	now := s.now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

func (s *Service) key(userID uuid.UUID) string {
	start, _ := s.dayWindow()
	return fmt.Sprintf("quota:%s:%s", userID, start.Format("2006-01-02"))
}

// Used returns today's swipe count, consulting Redis first and falling back
// to the authoritative counter when the key is missing.
func (s *Service) Used(ctx context.Context, userID uuid.UUID, authoritative func(from, to time.Time) (int64, error)) (int64, error) {
	used, err := s.redis.Get(ctx, s.key(userID)).Int64()
	if err == nil {
		return used, nil
	}
	if err != redis.Nil {
		return 0, err
	}

	from, to := s.dayWindow()
	used, err = authoritative(from, to)
	if err != nil {
		return 0, err
	}
	s.redis.Set(ctx, s.key(userID), used, to.Sub(s.now().UTC()))
	return used, nil
}

// Record bumps today's counter after a swipe has been persisted. Conflicting
// swipe attempts never reach here, so duplicates do not consume quota.
func (s *Service) Record(ctx context.Context, userID uuid.UUID) error {
	key := s.key(userID)
	used, err := s.redis.Incr(ctx, key).Result()
	if err != nil {
		return err
	}
	if used == 1 {
		_, to := s.dayWindow()
		s.redis.Expire(ctx, key, to.Sub(s.now().UTC()))
	}
	return nil
}

// WithNow pins the clock; test hook.
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}
