package store

import (
	"iter"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/lostfound-backend/internal/domain/entity"
	"github.com/ignatzorin/lostfound-backend/internal/domain/repository"
	"github.com/ignatzorin/lostfound-backend/internal/domain/valueobject"
)

var _ repository.ReportStore = (*ReportStore)(nil)

// ReportStore хранит объявления сессии в памяти.
// Блокировок нет: доступ сериализует сессия, которой принадлежит хранилище.
type ReportStore struct {
	// items[0] самое свежее объявление.
	items       []entity.Report
	initialized bool
}

// NewReportStore создаёт пустое, ещё не засеянное хранилище.
func NewReportStore() *ReportStore {
	return &ReportStore{}
}

// Initialize заполняет хранилище примерами при первом вызове.
// Повторные вызовы ничего не делают и возвращают false.
func (s *ReportStore) Initialize() bool {
	if s.initialized {
		return false
	}
	s.initialized = true
	s.items = append(s.items, SeedReports()...)
	return true
}

// Prepend вставляет объявление в начало ленты.
func (s *ReportStore) Prepend(report entity.Report) {
	s.items = slices.Insert(s.items, 0, report)
}

// FilteredView возвращает ленивую выборку в порядке хранилища.
// Каждый проход читает текущее состояние, а не снимок на момент вызова.
func (s *ReportStore) FilteredView(filter valueobject.FeedFilter) iter.Seq[entity.Report] {
	return func(yield func(entity.Report) bool) {
		for _, item := range s.items {
			if !filter.Matches(item.Type) {
				continue
			}
			if !yield(item) {
				return
			}
		}
	}
}

// Len возвращает количество объявлений.
func (s *ReportStore) Len() int {
	return len(s.items)
}

// SeedReports возвращает стартовые примеры ленты: одно Lost и одно Found.
func SeedReports() []entity.Report {
	return []entity.Report{
		{
			ID:          uuid.New(),
			Type:        valueobject.ReportTypeLost,
			Name:        "Orange cat",
			Location:    "Front of the village",
			Description: "Red collar",
			Contact:     "081-234-5678",
			Timestamp:   "10 minutes ago",
			CreatedAt:   time.Now().Add(-10 * time.Minute),
		},
		{
			ID:          uuid.New(),
			Type:        valueobject.ReportTypeFound,
			Name:        "Wallet",
			Location:    "Cafeteria",
			Description: "Cartoon print",
			Contact:     "Teacher on duty",
			Timestamp:   "1 hour ago",
			CreatedAt:   time.Now().Add(-time.Hour),
		},
	}
}
