package auth

import (
	"context"
)

// StaticAuthenticator validates tokens against a fixed key set.
// With no keys configured it accepts every request as anonymous, which is
// the default for local single-tenant deployments.
type StaticAuthenticator struct {
	keys map[string]struct{}
}

func NewStaticAuthenticator(keys []string) *StaticAuthenticator {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return &StaticAuthenticator{keys: set}
}

func (a *StaticAuthenticator) Authenticate(_ context.Context, token string) (*ClientContext, error) {
	if len(a.keys) == 0 {
		return &ClientContext{ClientID: "anonymous", FailOpen: true}, nil
	}
	if _, ok := a.keys[token]; !ok {
		return nil, ErrUnauthenticated
	}
	// Key prefix doubles as the client id for static deployments
	id := token
	if len(id) > 12 {
		id = id[:12]
	}
	return &ClientContext{ClientID: "static-" + id}, nil
}
