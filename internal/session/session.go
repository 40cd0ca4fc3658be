package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/lostfound-backend/internal/store"
)

// Session владеет лентой объявлений одного посетителя.
// Взаимодействия внутри сессии выполняются строго по одному.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu         sync.Mutex
	reports    *store.ReportStore
	lastActive time.Time
	clock      func() time.Time
}

func newSession(clock func() time.Time) *Session {
	now := clock()
	return &Session{
		ID:         uuid.New(),
		CreatedAt:  now,
		reports:    store.NewReportStore(),
		lastActive: now,
		clock:      clock,
	}
}

// Do выполняет одно взаимодействие с хранилищем сессии.
func (s *Session) Do(fn func(reports *store.ReportStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = s.clock()
	return fn(s.reports)
}

// LastActive возвращает время последнего взаимодействия.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *Session) idleSince(now time.Time) time.Duration {
	return now.Sub(s.LastActive())
}
