package storage

import (
	"strconv"
	"testing"
	"time"

	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/models"
)

func TestSessionAppendAndHistory(t *testing.T) {
	s := NewMemorySessionStore(0, 0)

	s.Append("s1", models.Message{Role: models.RoleUser, Content: "hello"})
	s.Append("s1", models.Message{Role: models.RoleAssistant, Content: "hi there"})

	if n := s.Count("s1"); n != 2 {
		t.Fatalf("Count = %d, want 2", n)
	}

	h := s.History("s1", 0)
	if len(h) != 2 {
		t.Fatalf("History returned %d messages", len(h))
	}
	if h[0].Role != models.RoleUser || h[1].Role != models.RoleAssistant {
		t.Errorf("roles = %q, %q", h[0].Role, h[1].Role)
	}
	if h[0].CreatedAt.IsZero() {
		t.Error("Append did not stamp CreatedAt")
	}

	tail := s.History("s1", 1)
	if len(tail) != 1 || tail[0].Content != "hi there" {
		t.Errorf("History(1) = %+v, want just the newest", tail)
	}

	if n := s.Count("missing"); n != 0 {
		t.Errorf("Count(missing) = %d", n)
	}
	if h := s.History("missing", 0); len(h) != 0 {
		t.Errorf("History(missing) = %+v", h)
	}
}

func TestSessionMaxMessages(t *testing.T) {
	s := NewMemorySessionStore(time.Hour, 3)

	for i := 0; i < 5; i++ {
		s.Append("s1", models.Message{Role: models.RoleUser, Content: strconv.Itoa(i)})
	}

	h := s.History("s1", 0)
	if len(h) != 3 {
		t.Fatalf("kept %d messages, want 3", len(h))
	}
	for i, want := range []string{"2", "3", "4"} {
		if h[i].Content != want {
			t.Errorf("h[%d] = %q, want %q (oldest must go first)", i, h[i].Content, want)
		}
	}
}

func TestSessionExpiry(t *testing.T) {
	s := NewMemorySessionStore(30*time.Minute, 0)
	base := time.Now()
	s.now = func() time.Time { return base }

	s.Append("s1", models.Message{Role: models.RoleUser, Content: "hello"})
	if n := s.Count("s1"); n != 1 {
		t.Fatalf("Count = %d, want 1", n)
	}

	s.now = func() time.Time { return base.Add(30 * time.Minute) }
	if n := s.Count("s1"); n != 1 {
		t.Errorf("session expired exactly at the TTL, want it still live")
	}

	s.now = func() time.Time { return base.Add(31 * time.Minute) }
	if n := s.Count("s1"); n != 0 {
		t.Errorf("Count after expiry = %d, want 0", n)
	}

	// The id is reusable afterwards with a clean transcript.
	s.Append("s1", models.Message{Role: models.RoleUser, Content: "back again"})
	if n := s.Count("s1"); n != 1 {
		t.Errorf("Count after revival = %d, want 1", n)
	}
}

func TestSessionGetOrCreate(t *testing.T) {
	s := NewMemorySessionStore(0, 0)

	sess := s.GetOrCreate("s1")
	if sess.ID != "s1" || sess.CreatedAt.IsZero() || len(sess.Messages) != 0 {
		t.Fatalf("fresh session = %+v", sess)
	}

	s.Append("s1", models.Message{Role: models.RoleUser, Content: "original"})
	snap := s.GetOrCreate("s1")
	if len(snap.Messages) != 1 {
		t.Fatalf("snapshot has %d messages", len(snap.Messages))
	}
	snap.Messages[0].Content = "mutated"
	if got := s.History("s1", 0)[0].Content; got != "original" {
		t.Errorf("snapshot mutation leaked into the store: %q", got)
	}
}

func TestSessionContext(t *testing.T) {
	s := NewMemorySessionStore(0, 0)

	s.SetContext("s1", models.IntentProductQuery, DefaultProducts()[:2])
	got := s.LastProducts("s1")
	if len(got) != 2 {
		t.Fatalf("LastProducts returned %d items", len(got))
	}

	got[0].Name = "mutated"
	if again := s.LastProducts("s1"); again[0].Name == "mutated" {
		t.Error("LastProducts returns shared state")
	}

	if other := s.LastProducts("other"); len(other) != 0 {
		t.Errorf("LastProducts(other) = %+v", other)
	}
}

func TestSessionDelete(t *testing.T) {
	s := NewMemorySessionStore(0, 0)

	s.Append("s1", models.Message{Role: models.RoleUser, Content: "hello"})
	s.Delete("s1")
	if n := s.Count("s1"); n != 0 {
		t.Errorf("Count after delete = %d", n)
	}
	s.Delete("never-existed")
}

func TestActiveSessions(t *testing.T) {
	s := NewMemorySessionStore(30*time.Minute, 0)
	base := time.Now()
	s.now = func() time.Time { return base }

	s.Append("old", models.Message{Role: models.RoleUser, Content: "hello"})

	s.now = func() time.Time { return base.Add(20 * time.Minute) }
	s.Append("new", models.Message{Role: models.RoleUser, Content: "hello"})

	if n := s.ActiveSessions(); n != 2 {
		t.Fatalf("ActiveSessions = %d, want 2", n)
	}

	// 40 minutes in, "old" has idled past the TTL and "new" has not.
	s.now = func() time.Time { return base.Add(40 * time.Minute) }
	if n := s.ActiveSessions(); n != 1 {
		t.Errorf("ActiveSessions after idle = %d, want 1", n)
	}
	if n := s.Count("new"); n != 1 {
		t.Errorf("the fresh session was purged too")
	}
}
