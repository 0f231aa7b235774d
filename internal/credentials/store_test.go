package credentials

import (
	"context"
	"errors"
	"testing"

	"github.com/taskflow-dev/taskflow/internal/model"
)

// failingMedium wraps a MemoryMedium and fails Set for one key.
type failingMedium struct {
	*MemoryMedium
	failKey string
}

func (f *failingMedium) Set(ctx context.Context, key, value string) error {
	if key == f.failKey {
		return errors.New("disk full")
	}
	return f.MemoryMedium.Set(ctx, key, value)
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewStore(NewMemoryMedium())
	want := model.CredentialPair{AccessToken: "acc", RefreshToken: "ref"}

	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, ok, err := s.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Fatalf("Load = %+v, want %+v", got, want)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	got, ok, err = s.Load(ctx)
	if err != nil {
		t.Fatalf("Load after clear: %v", err)
	}
	if ok || got != (model.CredentialPair{}) {
		t.Fatalf("expected absent after clear, got ok=%v %+v", ok, got)
	}
}

func TestStore_NilMediumIsNoop(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	if s.Available() {
		t.Fatalf("store without medium must not be available")
	}
	if err := s.Save(ctx, model.CredentialPair{AccessToken: "a", RefreshToken: "r"}); err != nil {
		t.Fatalf("Save on nil medium: %v", err)
	}
	if _, ok, err := s.Load(ctx); ok || err != nil {
		t.Fatalf("Load on nil medium: ok=%v err=%v", ok, err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear on nil medium: %v", err)
	}
}

func TestStore_HalfPairIsAbsent(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryMedium()
	_ = m.Set(ctx, AccessTokenKey, "only-access")
	s := NewStore(m)

	if _, ok, err := s.Load(ctx); ok || err != nil {
		t.Fatalf("expected absent for half pair, got ok=%v err=%v", ok, err)
	}
}

func TestStore_SingleKeyReadersSeeHalfPair(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryMedium()
	_ = m.Set(ctx, RefreshTokenKey, "only-refresh")
	s := NewStore(m)

	if tok, ok, err := s.RefreshToken(ctx); !ok || err != nil || tok != "only-refresh" {
		t.Fatalf("RefreshToken = %q ok=%v err=%v", tok, ok, err)
	}
	if tok, ok, err := s.AccessToken(ctx); ok || err != nil || tok != "" {
		t.Fatalf("AccessToken = %q ok=%v err=%v, want absent", tok, ok, err)
	}
	if _, ok, _ := NewStore(nil).RefreshToken(ctx); ok {
		t.Fatalf("nil medium must not report a refresh token")
	}
}

func TestStore_SaveRejectsIncompletePair(t *testing.T) {
	s := NewStore(NewMemoryMedium())
	err := s.Save(context.Background(), model.CredentialPair{AccessToken: "a"})
	if !errors.Is(err, ErrIncompletePair) {
		t.Fatalf("expected ErrIncompletePair, got %v", err)
	}
}

func TestStore_SaveRollsBackAccessToken(t *testing.T) {
	ctx := context.Background()
	m := &failingMedium{MemoryMedium: NewMemoryMedium(), failKey: RefreshTokenKey}
	s := NewStore(m)

	if err := s.Save(ctx, model.CredentialPair{AccessToken: "a", RefreshToken: "r"}); err == nil {
		t.Fatalf("expected error when refresh token cannot be written")
	}
	if _, ok, _ := m.Get(ctx, AccessTokenKey); ok {
		t.Fatalf("access token should have been rolled back")
	}
	if m.Len() != 0 {
		t.Fatalf("expected empty medium, got %d keys", m.Len())
	}
}
