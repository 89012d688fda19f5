package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// retry/backoff applied by go-redis when the connection drops:
	// min(attempt * minRetryBackoff, maxRetryBackoff)
	maxRetries      = 5
	minRetryBackoff = 50 * time.Millisecond
	maxRetryBackoff = 2 * time.Second
)

// Nil is the sentinel returned when a key does not exist
const Nil = redis.Nil

// Client wraps a Redis connection. It is constructed once at startup and
// passed into the components that need it.
type Client struct {
	rdb *redis.Client
}

// New connects to Redis and verifies the connection with a ping
func New(url, password string) (*Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	if password != "" {
		opts.Password = password
	}
	opts.MaxRetries = maxRetries
	opts.MinRetryBackoff = minRetryBackoff
	opts.MaxRetryBackoff = maxRetryBackoff

	c := &Client{rdb: redis.NewClient(opts)}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return c, nil
}

// NewFromClient wraps an existing go-redis client (used for testing)
func NewFromClient(rdb *redis.Client) *Client {
	return &Client{rdb: rdb}
}

// Close releases the underlying connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Set stores a key-value pair with expiration
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

// Get retrieves a value by key
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	return c.rdb.Get(ctx, key).Result()
}

// Del removes a key
func (c *Client) Del(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

// SetNX sets a key only if it does not exist
func (c *Client) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return c.rdb.SetNX(ctx, key, value, expiration).Result()
}

// Incr increments a counter key
func (c *Client) Incr(ctx context.Context, key string) (int64, error) {
	return c.rdb.Incr(ctx, key).Result()
}

// Expire sets a TTL on an existing key
func (c *Client) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return c.rdb.Expire(ctx, key, ttl).Err()
}
