// Package redis wraps a process-wide Redis client. The idempotency
// middleware is its main consumer and only needs plain string keys.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

var client *redis.Client

// Init parses the connection URL, dials Redis and verifies the
// connection with a ping before the server starts taking traffic.
func Init(url, password string) error {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return err
	}
	if password != "" {
		opts.Password = password
	}

	client = redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return client.Ping(ctx).Err()
}

// SetClient swaps the underlying client. Tests point it at miniredis.
func SetClient(c *redis.Client) {
	client = c
}

// GetClient exposes the raw client for callers that need commands
// beyond the helpers below.
func GetClient() *redis.Client {
	return client
}

// Set stores a value under key for the given TTL.
func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return client.Set(ctx, key, value, expiration).Err()
}

// Get returns the value stored under key.
func Get(ctx context.Context, key string) (string, error) {
	return client.Get(ctx, key).Result()
}

// Del removes key.
func Del(ctx context.Context, key string) error {
	return client.Del(ctx, key).Err()
}

// SetNX stores the value only when key is absent. It backs the
// in-flight lock that keeps idempotent retries from racing.
func SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return client.SetNX(ctx, key, value, expiration).Result()
}
