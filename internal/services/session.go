package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// SessionDuration is 30 days.
	SessionDuration = 30 * 24 * time.Hour
	// sessionKeyPrefix is the Redis key prefix for sessions
	sessionKeyPrefix = "session:"
	// userSessionKeyPrefix is the Redis key prefix for user->session mapping
	userSessionKeyPrefix = "user_session:"
)

// Sessions maps opaque tokens to user identifiers with an expiry.
type Sessions interface {
	Create(ctx context.Context, userID int64) (string, error)
	// Get resolves a token; ok is false for missing, expired, or unknown tokens.
	Get(ctx context.Context, token string) (userID int64, ok bool, err error)
	// Destroy is idempotent; destroying an unknown token is not an error.
	Destroy(ctx context.Context, token string) error
}

// RedisSessions stores session records in Redis with a 30-day TTL.
type RedisSessions struct {
	client *redis.Client
}

var _ Sessions = (*RedisSessions)(nil)

func NewRedisSessions(client *redis.Client) *RedisSessions {
	return &RedisSessions{client: client}
}

// Create generates a new session for a user. Any existing session for
// the same user is invalidated first, so the 30-day timer resets from
// the current login.
func (s *RedisSessions) Create(ctx context.Context, userID int64) (string, error) {
	if err := s.destroyUserSession(ctx, userID); err != nil {
		return "", err
	}

	// Generate secure session token
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	userIDStr := strconv.FormatInt(userID, 10)
	if err := s.client.Set(ctx, sessionKeyPrefix+token, userIDStr, SessionDuration).Err(); err != nil {
		return "", err
	}
	// Store user->session mapping for invalidation
	if err := s.client.Set(ctx, userSessionKeyPrefix+userIDStr, token, SessionDuration).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Get checks whether a session token is valid and returns the user ID.
func (s *RedisSessions) Get(ctx context.Context, token string) (int64, bool, error) {
	if token == "" {
		return 0, false, nil
	}

	userIDStr, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return userID, true, nil
}

// Destroy removes a session. Unknown tokens are a no-op.
func (s *RedisSessions) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	// Drop the user->session mapping before the session itself
	userIDStr, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if err == nil && userIDStr != "" {
		s.client.Del(ctx, userSessionKeyPrefix+userIDStr)
	}

	return s.client.Del(ctx, sessionKeyPrefix+token).Err()
}

func (s *RedisSessions) destroyUserSession(ctx context.Context, userID int64) error {
	userIDStr := strconv.FormatInt(userID, 10)
	token, err := s.client.Get(ctx, userSessionKeyPrefix+userIDStr).Result()
	if err == nil && token != "" {
		s.client.Del(ctx, sessionKeyPrefix+token)
	} else if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return s.client.Del(ctx, userSessionKeyPrefix+userIDStr).Err()
}
