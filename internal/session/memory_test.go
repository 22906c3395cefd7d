package session

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreUsername(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if u, _ := s.Username(ctx, "sid"); u != "" {
		t.Fatalf("fresh session username = %q", u)
	}
	s.SetUsername(ctx, "sid", "alice")
	if u, _ := s.Username(ctx, "sid"); u != "alice" {
		t.Fatalf("username = %q, want alice", u)
	}
	s.ClearUsername(ctx, "sid")
	s.ClearUsername(ctx, "sid")
	if u, _ := s.Username(ctx, "sid"); u != "" {
		t.Fatalf("username after logout = %q", u)
	}
}

func TestMemoryStoreFlashesPopOnce(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.AddFlash(ctx, "sid", Flash{Category: FlashSuccess, Message: "one"})
	s.AddFlash(ctx, "sid", Flash{Category: FlashDanger, Message: "two"})

	got, _ := s.PopFlashes(ctx, "sid")
	if len(got) != 2 || got[0].Message != "one" || got[1].Category != FlashDanger {
		t.Fatalf("PopFlashes = %+v", got)
	}
	if again, _ := s.PopFlashes(ctx, "sid"); len(again) != 0 {
		t.Fatalf("flashes not cleared: %+v", again)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore()
	now := time.Now()
	s.now = func() time.Time { return now }
	ctx := context.Background()

	s.SetUsername(ctx, "sid", "alice")
	now = now.Add(TTL + time.Second)
	if u, _ := s.Username(ctx, "sid"); u != "" {
		t.Fatalf("expired session username = %q", u)
	}
}

func TestIdentityContext(t *testing.T) {
	if FromContext(context.Background()).Authenticated() {
		t.Fatal("empty context is authenticated")
	}
	ctx := WithIdentity(context.Background(), Identity{SessionID: "s", Username: "alice"})
	if id := FromContext(ctx); !id.Authenticated() || id.SessionID != "s" {
		t.Fatalf("identity = %+v", id)
	}
}
