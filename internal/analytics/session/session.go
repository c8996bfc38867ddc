// internal/analytics/session/session.go

// Package session keeps per-conversation state in memory: the message
// transcript and the rolling context the classifier uses to interpret
// follow-ups like "make it a line chart".
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"analytics-dashboard/internal/models"
)

var ErrNotFound = errors.New("SESSION_NOT_FOUND")

// Session is one conversation. All mutation goes through the store so the
// lock discipline stays in one place.
type Session struct {
	ID        string           `json:"id"`
	Messages  []models.Message `json:"messages"`
	Context   *models.Context  `json:"context,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// Store is an in-memory session registry. A single mutex over the map plus a
// copy-out read path keeps concurrent turns on different sessions from
// contending on each other's transcripts.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	turnMu   map[string]*sync.Mutex
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
		turnMu:   make(map[string]*sync.Mutex),
		now:      time.Now,
	}
}

// Create registers a new empty conversation and returns its snapshot.
func (s *Store) Create() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess := &Session{
		ID:        uuid.New().String(),
		Messages:  []models.Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.sessions[sess.ID] = sess
	s.turnMu[sess.ID] = &sync.Mutex{}
	return snapshot(sess)
}

// BeginTurn serializes message handling within one session: a later query
// must not advance the context before an earlier one finishes. Returns the
// release func.
func (s *Store) BeginTurn(id string) (func(), error) {
	s.mu.RLock()
	mu, ok := s.turnMu[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	mu.Lock()
	return mu.Unlock, nil
}

// Get returns a copy of the session. Mutating the returned value does not
// affect the store.
func (s *Store) Get(id string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return snapshot(sess), nil
}

// Context returns the rolling conversation context, nil when no chart has
// been resolved yet.
func (s *Store) Context(id string) (*models.Context, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if sess.Context == nil {
		return nil, nil
	}
	ctx := *sess.Context
	return &ctx, nil
}

// Append records a turn and, when the resolution produced a confident chart,
// advances the rolling context so the next turn can reference it.
func (s *Store) Append(id string, msg models.Message) (models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return models.Message{}, ErrNotFound
	}

	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = s.now()
	}
	sess.Messages = append(sess.Messages, msg)
	sess.UpdatedAt = s.now()

	if res := msg.Resolution; res != nil {
		q := res.Query
		if q.Entity != "" && q.Metric != "" && q.Confidence >= models.ConfidenceChartMinimum {
			sess.Context = &models.Context{
				Entity: q.Entity,
				Metric: q.Metric,
				Title:  res.Title,
			}
		}
	}
	return msg, nil
}

// Reset clears the transcript and the rolling context but keeps the session
// alive under the same identifier.
func (s *Store) Reset(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	sess.Messages = []models.Message{}
	sess.Context = nil
	sess.UpdatedAt = s.now()
	return nil
}

func snapshot(sess *Session) Session {
	out := *sess
	out.Messages = make([]models.Message, len(sess.Messages))
	copy(out.Messages, sess.Messages)
	if sess.Context != nil {
		ctx := *sess.Context
		out.Context = &ctx
	}
	return out
}
