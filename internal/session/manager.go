package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/lostfound-backend/internal/logger"
	"github.com/ignatzorin/lostfound-backend/internal/pkg/apperror"
	"github.com/ignatzorin/lostfound-backend/internal/store"
)

// Manager хранит активные сессии и удаляет простаивающие.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	idleTTL  time.Duration
	now      func() time.Time
	onEnd    func(uuid.UUID)
}

// NewManager создаёт реестр сессий.
func NewManager(idleTTL time.Duration) *Manager {
	if idleTTL <= 0 {
		idleTTL = 12 * time.Hour
	}
	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// Start открывает новую сессию и один раз засевает её ленту примерами.
func (m *Manager) Start() *Session {
	s := newSession(m.now)
	_ = s.Do(func(reports *store.ReportStore) error {
		reports.Initialize()
		return nil
	})

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	logger.WithSession(s.ID).Debug("session: сессия открыта")
	return s
}

// Get возвращает активную сессию.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, apperror.ErrSessionNotFound
	}
	if s.idleSince(m.now()) > m.idleTTL {
		m.End(id)
		return nil, apperror.ErrSessionNotFound
	}
	return s, nil
}

// OnEnd задаёт обработчик, вызываемый для каждой закрытой или удалённой по простою сессии.
// Обработчик вызывается вне блокировки менеджера.
func (m *Manager) OnEnd(fn func(uuid.UUID)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onEnd = fn
}

// End закрывает сессию; все её объявления теряются.
func (m *Manager) End(id uuid.UUID) {
	m.mu.Lock()
	_, existed := m.sessions[id]
	delete(m.sessions, id)
	onEnd := m.onEnd
	m.mu.Unlock()

	if existed && onEnd != nil {
		onEnd(id)
	}
}

// Count возвращает число активных сессий.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// TTL возвращает время жизни простаивающей сессии.
func (m *Manager) TTL() time.Duration {
	return m.idleTTL
}

// Sweep удаляет простаивающие сессии и возвращает их количество.
func (m *Manager) Sweep() int {
	now := m.now()

	m.mu.Lock()
	var removed []uuid.UUID
	for id, s := range m.sessions {
		if s.idleSince(now) > m.idleTTL {
			delete(m.sessions, id)
			removed = append(removed, id)
		}
	}
	onEnd := m.onEnd
	m.mu.Unlock()

	if onEnd != nil {
		for _, id := range removed {
			onEnd(id)
		}
	}
	return len(removed)
}

// RunJanitor периодически вызывает Sweep до отмены контекста.
func (m *Manager) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := m.Sweep(); removed > 0 {
				logger.Get().WithFields(logrus.Fields{
					"removed": removed,
					"active":  m.Count(),
				}).Info("session: удалены неактивные сессии")
			}
		}
	}
}
