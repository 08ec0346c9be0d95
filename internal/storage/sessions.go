package storage

import (
	"sync"
	"time"

	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/models"
)

const (
	DefaultSessionTTL  = 30 * time.Minute
	DefaultMaxMessages = 100
)

// SessionStore keeps per-conversation state. Sessions are process-local and
// disposable: they expire after a quiet period and cap their transcripts,
// so the store never needs an external backend.
type SessionStore interface {
	GetOrCreate(id string) models.Session
	Append(id string, msg models.Message)
	History(id string, limit int) []models.Message
	Count(id string) int
	SetContext(id string, intent models.Intent, products []models.Product)
	LastProducts(id string) []models.Product
	Delete(id string)
	ActiveSessions() int
}

type MemorySessionStore struct {
	mu          sync.Mutex
	sessions    map[string]*models.Session
	ttl         time.Duration
	maxMessages int
	now         func() time.Time
}

func NewMemorySessionStore(ttl time.Duration, maxMessages int) *MemorySessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if maxMessages <= 0 {
		maxMessages = DefaultMaxMessages
	}
	return &MemorySessionStore{
		sessions:    make(map[string]*models.Session),
		ttl:         ttl,
		maxMessages: maxMessages,
		now:         time.Now,
	}
}

// live returns the session for id, dropping it first if it has expired.
// Callers must hold mu.
func (s *MemorySessionStore) live(id string) *models.Session {
	sess, exists := s.sessions[id]
	if !exists {
		return nil
	}
	if s.now().Sub(sess.LastActiveAt) > s.ttl {
		delete(s.sessions, id)
		return nil
	}
	return sess
}

func (s *MemorySessionStore) create(id string) *models.Session {
	now := s.now()
	sess := &models.Session{
		ID:           id,
		CreatedAt:    now,
		LastActiveAt: now,
	}
	s.sessions[id] = sess
	return sess
}

func (s *MemorySessionStore) GetOrCreate(id string) models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.live(id)
	if sess == nil {
		sess = s.create(id)
	}
	return snapshot(sess)
}

func (s *MemorySessionStore) Append(id string, msg models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.live(id)
	if sess == nil {
		sess = s.create(id)
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = s.now()
	}
	sess.Messages = append(sess.Messages, msg)
	if over := len(sess.Messages) - s.maxMessages; over > 0 {
		sess.Messages = sess.Messages[over:]
	}
	sess.LastActiveAt = s.now()
}

func (s *MemorySessionStore) History(id string, limit int) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.live(id)
	if sess == nil {
		return nil
	}
	msgs := sess.Messages
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]models.Message, len(msgs))
	copy(out, msgs)
	return out
}

func (s *MemorySessionStore) Count(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess := s.live(id); sess != nil {
		return len(sess.Messages)
	}
	return 0
}

func (s *MemorySessionStore) SetContext(id string, intent models.Intent, products []models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.live(id)
	if sess == nil {
		sess = s.create(id)
	}
	sess.LastIntent = intent
	sess.LastProducts = append([]models.Product(nil), products...)
	sess.LastActiveAt = s.now()
}

func (s *MemorySessionStore) LastProducts(id string) []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.live(id)
	if sess == nil {
		return nil
	}
	return append([]models.Product(nil), sess.LastProducts...)
}

func (s *MemorySessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
}

// ActiveSessions purges expired sessions and reports how many remain.
func (s *MemorySessionStore) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sess := range s.sessions {
		if s.now().Sub(sess.LastActiveAt) > s.ttl {
			delete(s.sessions, id)
		}
	}
	return len(s.sessions)
}

func snapshot(sess *models.Session) models.Session {
	out := *sess
	out.Messages = append([]models.Message(nil), sess.Messages...)
	out.LastProducts = append([]models.Product(nil), sess.LastProducts...)
	return out
}
