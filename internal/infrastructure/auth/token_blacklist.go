package auth

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist revokes JWTs ahead of their natural expiry. Logout
// blacklists a single JTI; password changes and forced logouts invalidate
// every token a user holds by recording a cutoff timestamp.
type TokenBlacklist interface {
	// AddToBlacklist marks one JTI as revoked. ttl should match the
	// remaining lifetime of the token so the entry self-expires.
	AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error

	// IsBlacklisted reports whether a JTI has been revoked.
	IsBlacklisted(ctx context.Context, jti string) (bool, error)

	// AddUserTokensToBlacklist records a per-user cutoff. Tokens issued at
	// or before the cutoff are rejected.
	AddUserTokensToBlacklist(ctx context.Context, userID string, ttl time.Duration) error

	// IsUserTokenInvalidated reports whether a token issued at the given
	// time falls under the user's cutoff.
	IsUserTokenInvalidated(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error)
}

const revokedKeyPrefix = "projecthub:auth:revoked:"

// RedisTokenBlacklist is the production TokenBlacklist. Entries carry a TTL
// so Redis garbage-collects them once the underlying token would have
// expired anyway.
type RedisTokenBlacklist struct {
	client *redis.Client
}

// RedisTokenBlacklistConfig holds connection settings for the blacklist.
type RedisTokenBlacklistConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisTokenBlacklist connects to Redis and verifies the connection
// before returning. A server that cannot reach Redis should fall back to
// the in-memory implementation rather than run without revocation.
func NewRedisTokenBlacklist(cfg RedisTokenBlacklistConfig) (*RedisTokenBlacklist, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 3,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis for token blacklist: %w", err)
	}

	return &RedisTokenBlacklist{client: client}, nil
}

// NewRedisTokenBlacklistWithClient wraps an existing Redis client.
func NewRedisTokenBlacklistWithClient(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client}
}

func jtiKey(jti string) string {
	return revokedKeyPrefix + "jti:" + jti
}

func userCutoffKey(userID string) string {
	return revokedKeyPrefix + "user:" + userID
}

func (b *RedisTokenBlacklist) AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error {
	if err := b.client.Set(ctx, jtiKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to add token to blacklist: %w", err)
	}
	return nil
}

func (b *RedisTokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, jtiKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return n > 0, nil
}

func (b *RedisTokenBlacklist) AddUserTokensToBlacklist(ctx context.Context, userID string, ttl time.Duration) error {
	cutoff := time.Now().Unix()
	if err := b.client.Set(ctx, userCutoffKey(userID), cutoff, ttl).Err(); err != nil {
		return fmt.Errorf("failed to invalidate user tokens: %w", err)
	}
	return nil
}

func (b *RedisTokenBlacklist) IsUserTokenInvalidated(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	raw, err := b.client.Get(ctx, userCutoffKey(userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check user token invalidation: %w", err)
	}

	cutoff, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, fmt.Errorf("failed to parse invalidation timestamp: %w", err)
	}

	return tokenIssuedAt.Unix() <= cutoff, nil
}

// Close releases the Redis connection pool.
func (b *RedisTokenBlacklist) Close() error {
	return b.client.Close()
}

var _ TokenBlacklist = (*RedisTokenBlacklist)(nil)

// InMemoryTokenBlacklist backs tests and the single-node fallback when
// Redis is unreachable. Revocations do not survive a restart and are not
// shared between instances.
type InMemoryTokenBlacklist struct {
	mu          sync.RWMutex
	revokedJTIs map[string]time.Time // JTI -> entry expiry
	userCutoffs map[string]time.Time // userID -> cutoff
}

// NewInMemoryTokenBlacklist creates an empty in-memory blacklist.
func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{
		revokedJTIs: make(map[string]time.Time),
		userCutoffs: make(map[string]time.Time),
	}
}

func (b *InMemoryTokenBlacklist) AddToBlacklist(_ context.Context, jti string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revokedJTIs[jti] = time.Now().Add(ttl)
	return nil
}

func (b *InMemoryTokenBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	expiry, ok := b.revokedJTIs[jti]
	if !ok {
		return false, nil
	}
	// Lazily drop entries whose token has expired on its own.
	if time.Now().After(expiry) {
		delete(b.revokedJTIs, jti)
		return false, nil
	}
	return true, nil
}

func (b *InMemoryTokenBlacklist) AddUserTokensToBlacklist(_ context.Context, userID string, _ time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.userCutoffs[userID] = time.Now()
	return nil
}

func (b *InMemoryTokenBlacklist) IsUserTokenInvalidated(_ context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	cutoff, ok := b.userCutoffs[userID]
	if !ok {
		return false, nil
	}
	// Nanosecond comparison keeps sub-second test scenarios deterministic.
	return tokenIssuedAt.UnixNano() <= cutoff.UnixNano(), nil
}

var _ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
