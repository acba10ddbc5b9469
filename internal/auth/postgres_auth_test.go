package auth

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// fakeClientStore serves one canned client row keyed by prefix.
type fakeClientStore struct {
	rows    map[string]*clientRow
	err     error
	lookups atomic.Int32
}

func (s *fakeClientStore) LookupByPrefix(_ context.Context, prefix string) (*clientRow, error) {
	s.lookups.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	row, ok := s.rows[prefix]
	if !ok {
		return nil, errors.New("no rows")
	}
	return row, nil
}

func storeWithKey(t *testing.T, clientID, key string) *fakeClientStore {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return &fakeClientStore{rows: map[string]*clientRow{
		key[:8]: {ClientID: clientID, APIKeyHash: string(hash)},
	}}
}

func TestPostgresAuthenticator_ValidKey(t *testing.T) {
	const key = "qtk_live_abcdef123456"
	store := storeWithKey(t, "client-1", key)
	a := NewPostgresAuthenticatorWithStore(store, time.Minute, false, zap.NewNop())

	client, err := a.Authenticate(context.Background(), key)
	if err != nil {
		t.Fatal(err)
	}
	if client.ClientID != "client-1" {
		t.Fatalf("unexpected client: %+v", client)
	}
}

func TestPostgresAuthenticator_WrongKey(t *testing.T) {
	const key = "qtk_live_abcdef123456"
	store := storeWithKey(t, "client-1", key)
	a := NewPostgresAuthenticatorWithStore(store, time.Minute, false, zap.NewNop())

	_, err := a.Authenticate(context.Background(), "qtk_live_wrongwrongwrong")
	if err == nil {
		t.Fatal("expected authentication failure")
	}
}

func TestPostgresAuthenticator_ShortToken(t *testing.T) {
	store := &fakeClientStore{rows: map[string]*clientRow{}}
	a := NewPostgresAuthenticatorWithStore(store, time.Minute, false, zap.NewNop())

	if _, err := a.Authenticate(context.Background(), "qtk"); err == nil {
		t.Fatal("expected failure for token shorter than the prefix")
	}
	if got := store.lookups.Load(); got != 0 {
		t.Fatalf("short token must not reach the store, got %d lookups", got)
	}
}

func TestPostgresAuthenticator_FailOpen(t *testing.T) {
	store := &fakeClientStore{err: errors.New("connection refused")}
	a := NewPostgresAuthenticatorWithStore(store, time.Minute, true, zap.NewNop())

	client, err := a.Authenticate(context.Background(), "qtk_live_abcdef123456")
	if err != nil {
		t.Fatal(err)
	}
	if client.ClientID != "unknown" || !client.FailOpen {
		t.Fatalf("expected fail-open degradation, got %+v", client)
	}
}

func TestPostgresAuthenticator_FailClosed(t *testing.T) {
	store := &fakeClientStore{err: errors.New("connection refused")}
	a := NewPostgresAuthenticatorWithStore(store, time.Minute, false, zap.NewNop())

	if _, err := a.Authenticate(context.Background(), "qtk_live_abcdef123456"); err == nil {
		t.Fatal("expected error with fail-open disabled")
	}
}

func TestPostgresAuthenticator_CachesResult(t *testing.T) {
	const key = "qtk_live_abcdef123456"
	store := storeWithKey(t, "client-1", key)
	a := NewPostgresAuthenticatorWithStore(store, time.Minute, false, zap.NewNop())

	for i := 0; i < 5; i++ {
		if _, err := a.Authenticate(context.Background(), key); err != nil {
			t.Fatal(err)
		}
	}
	if got := store.lookups.Load(); got != 1 {
		t.Fatalf("expected a single store lookup, got %d", got)
	}
}
