package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// authTokenKey builds the Redis key under which an issued token is tracked.
// Only the token's hash is stored, never the token itself.
func authTokenKey(token string) string {
	return fmt.Sprintf("auth:token:%s", HashToken(token))
}

// CacheAuthToken records an issued token so it can be checked and revoked.
func CacheAuthToken(token, profileID string, ttl time.Duration) error {
	ctx := context.Background()
	client := GetAuthCacheClient()
	if err := client.Set(ctx, authTokenKey(token), profileID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache auth token: %w", err)
	}
	return nil
}

// AuthTokenValid reports whether the token is still tracked, i.e. has not
// been revoked or expired out of the cache.
func AuthTokenValid(token string) bool {
	ctx := context.Background()
	client := GetAuthCacheClient()
	_, err := client.Get(ctx, authTokenKey(token)).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		// Cache trouble must not lock everyone out; the JWT signature and
		// expiry still stand on their own.
		GetLogger().Sugar().Warnf("auth token cache lookup failed: %v", err)
		return true
	}
	return true
}

// RevokeAuthToken drops the token from the cache, ending its session.
func RevokeAuthToken(token string) error {
	ctx := context.Background()
	client := GetAuthCacheClient()
	if err := client.Del(ctx, authTokenKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to revoke auth token: %w", err)
	}
	return nil
}
