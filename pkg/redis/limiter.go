package redis

import (
	"context"
	"errors"
	"time"
)

// Throttle implements fixed-window counters on Redis. It backs the OTP
// resend cooldown and the login attempt limit.
type Throttle struct {
	client *Client
}

// NewThrottle creates a throttle backed by the given client
func NewThrottle(client *Client) *Throttle {
	return &Throttle{client: client}
}

// Cooldown returns true when the key is inside its cooldown window.
// The first caller within a window claims it.
func (t *Throttle) Cooldown(ctx context.Context, key string, window time.Duration) (bool, error) {
	ok, err := t.client.SetNX(ctx, "cooldown:"+key, 1, window)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// Allow increments the counter for key and reports whether it is still under
// the limit. The window TTL is set when the counter is first created.
func (t *Throttle) Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, error) {
	count, err := t.client.Incr(ctx, "ratelimit:"+key)
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := t.client.Expire(ctx, "ratelimit:"+key, window); err != nil {
			return false, err
		}
	}
	return count <= limit, nil
}

// Reset clears the counter for key
func (t *Throttle) Reset(ctx context.Context, key string) error {
	err := t.client.Del(ctx, "ratelimit:"+key)
	if err != nil && !errors.Is(err, Nil) {
		return err
	}
	return nil
}
