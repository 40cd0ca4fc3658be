package repository

import (
	"iter"

	"github.com/ignatzorin/lostfound-backend/internal/domain/entity"
	"github.com/ignatzorin/lostfound-backend/internal/domain/valueobject"
)

// ReportStore хранит упорядоченные объявления одной сессии,
// новые объявления всегда первыми.
type ReportStore interface {
	Initialize() bool
	Prepend(report entity.Report)
	FilteredView(filter valueobject.FeedFilter) iter.Seq[entity.Report]
	Len() int
}
