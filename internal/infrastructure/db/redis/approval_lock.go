package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultLockTTL = 2 * time.Minute

// releaseScript deletes the key only while it still holds the caller's
// token, so an expired lock re-acquired by someone else is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ApprovalLock serialises approvals of a photo across requests and instances.
// Key format: approval:<photo_id>, value: the holder's token.
type ApprovalLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewApprovalLock creates an ApprovalLock. A ttl <= 0 falls back to 2m.
func NewApprovalLock(client *redis.Client, ttl time.Duration) *ApprovalLock {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &ApprovalLock{client: client, ttl: ttl}
}

// TTL reports how long a lock survives without being released.
func (l *ApprovalLock) TTL() time.Duration {
	return l.ttl
}

// Acquire takes the lock for photoID and returns the holder token. ok is
// false when another holder owns it.
func (l *ApprovalLock) Acquire(ctx context.Context, photoID int64) (string, bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key(photoID), token, l.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("acquire approval lock: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release drops the lock if it is still held under token.
func (l *ApprovalLock) Release(ctx context.Context, photoID int64, token string) error {
	if token == "" {
		return nil
	}
	if err := releaseScript.Run(ctx, l.client, []string{l.key(photoID)}, token).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("release approval lock: %w", err)
	}
	return nil
}

func (l *ApprovalLock) key(photoID int64) string {
	return fmt.Sprintf("approval:%d", photoID)
}
