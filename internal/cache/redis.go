package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const stockListKey = "stock:list"

var client *redis.Client

// Init initializes the Redis connection. The cache is optional: on
// failure the client stays nil and every helper degrades to a miss.
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client (nil when the cache is unavailable)
func GetClient() *redis.Client {
	return client
}

// Enabled reports whether a Redis connection was established
func Enabled() bool {
	return client != nil
}

// Ping checks the Redis connection for health reporting
func Ping(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Ping(ctx).Err()
}

// hashCredentials creates a hash of email+password for cache key
func hashCredentials(email, password string) string {
	h := sha256.New()
	h.Write([]byte(email + ":" + password))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth checks if credentials are cached and valid
func GetCachedAuth(ctx context.Context, email, password string) (int, bool) {
	if client == nil {
		return 0, false
	}
	key := hashCredentials(email, password)
	userID, err := client.Get(ctx, key).Int()
	if err != nil {
		return 0, false
	}
	return userID, true
}

// CacheAuth caches valid credentials for 15 minutes
func CacheAuth(ctx context.Context, email, password string, userID int) {
	if client == nil {
		return
	}
	client.Set(ctx, hashCredentials(email, password), userID, 15*time.Minute)
}

// InvalidateAuth removes cached auth for a credential pair (on password change)
func InvalidateAuth(ctx context.Context, email, password string) {
	if client == nil {
		return
	}
	client.Del(ctx, hashCredentials(email, password))
}

// GetCachedStockList returns the cached stock listing if available
func GetCachedStockList(ctx context.Context) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, stockListKey).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheStockList caches the stock listing for 60 seconds
func CacheStockList(ctx context.Context, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, stockListKey, data, 60*time.Second)
}

// InvalidateStockList clears the stock listing cache after any mutation
func InvalidateStockList(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, stockListKey)
}
