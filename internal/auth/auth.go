package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// Authenticator validates incoming requests and returns a ClientContext.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*ClientContext, error)
}

// ClientContext holds the authenticated API client's identity.
type ClientContext struct {
	ClientID string
	FailOpen bool
}

// ErrUnauthenticated is returned when no valid credentials are found.
var ErrUnauthenticated = errors.New("unauthenticated")

// ExtractBearerToken extracts a qtk_ API key from HTTP headers.
func ExtractBearerToken(h http.Header) (string, error) {
	token := h.Get("Authorization")
	if token == "" {
		return "", ErrUnauthenticated
	}
	token = strings.TrimPrefix(token, "Bearer ")
	token = strings.TrimPrefix(token, "bearer ")
	if !strings.HasPrefix(token, "qtk_") {
		return "", ErrUnauthenticated
	}
	return token, nil
}
