package auth

import "context"

type LoginTestChecker struct {
	// token -> owner id
	LoggedSessions map[string]string
}

func NewLoginTestChecker() *LoginTestChecker {
	return &LoginTestChecker{
		LoggedSessions: map[string]string{},
	}
}

func (c *LoginTestChecker) LoggedInOwner(_ context.Context, token string) (string, error) {
	ownerID, ok := c.LoggedSessions[token]
	if !ok {
		return "", ErrNotLoggedIn
	}
	return ownerID, nil
}
