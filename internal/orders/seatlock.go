package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"studyseat/internal/shared/apperrors"
)

// SeatLocker serializes concurrent booking attempts for the same seat and day.
// The lock only narrows the race window; the schedules exclusion constraint is
// still the final guard.
type SeatLocker interface {
	// Acquire takes the per-seat lock and returns an opaque token that must be
	// presented back to Release. Returns a SlotConflict error when another
	// booking holds the lock.
	Acquire(ctx context.Context, seatID uuid.UUID, date string) (string, error)
	Release(ctx context.Context, seatID uuid.UUID, date string, token string)
}

const seatLockKeyPrefix = "studyseat:seatlock"

// releaseScript deletes the lock only when the stored token matches, so a
// holder that outlived its TTL cannot delete a lock acquired by someone else.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisSeatLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSeatLocker(client *redis.Client, ttl time.Duration) SeatLocker {
	if client == nil {
		return noopSeatLocker{}
	}
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &redisSeatLocker{client: client, ttl: ttl}
}

func seatLockKey(seatID uuid.UUID, date string) string {
	return fmt.Sprintf("%s:%s:%s", seatLockKeyPrefix, seatID, date)
}

func (l *redisSeatLocker) Acquire(ctx context.Context, seatID uuid.UUID, date string) (string, error) {
	key := seatLockKey(seatID, date)
	token := uuid.NewString()

	// One quick retry covers the common case of a competing booking finishing
	// within a few milliseconds; beyond that the caller should surface the
	// conflict rather than queue up.
	for attempt := 0; attempt < 2; attempt++ {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return "", apperrors.Persistence("acquiring seat lock", err)
		}
		if ok {
			return token, nil
		}
		select {
		case <-ctx.Done():
			return "", apperrors.Persistence("acquiring seat lock", ctx.Err())
		case <-time.After(50 * time.Millisecond):
		}
	}
	return "", apperrors.SlotConflict("seat %s is being booked by another request", seatID)
}

func (l *redisSeatLocker) Release(ctx context.Context, seatID uuid.UUID, date string, token string) {
	// Best effort; an unreleased lock expires with its TTL.
	_ = releaseScript.Run(ctx, l.client, []string{seatLockKey(seatID, date)}, token).Err()
}

// noopSeatLocker is used when Redis is not configured; the database exclusion
// constraint alone then guards against double booking.
type noopSeatLocker struct{}

func (noopSeatLocker) Acquire(ctx context.Context, seatID uuid.UUID, date string) (string, error) {
	return "", nil
}

func (noopSeatLocker) Release(ctx context.Context, seatID uuid.UUID, date string, token string) {}
