package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
	}
}

// LoggedInOwner resolves the session token to the owner id behind it.
// Returns ErrNotLoggedIn for unknown or expired tokens.
func (lc *LoginChecker) LoggedInOwner(ctx context.Context, token string) (string, error) {
	sessionKey := sessionKeyPrefix + token
	cmd := lc.redisClient.Get(ctx, sessionKey)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotLoggedIn
		}
		return "", err
	}

	var session LoginSession
	if err := json.Unmarshal([]byte(cmd.Val()), &session); err != nil {
		return "", fmt.Errorf("unmarshal session: %w", err)
	}

	if session.OwnerID == "" {
		return "", ErrNotLoggedIn
	}
	if time.Since(session.CreatedAt) > lc.ttl {
		return "", ErrNotLoggedIn
	}

	return session.OwnerID, nil
}
