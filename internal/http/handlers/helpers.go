package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/lostfound-backend/internal/domain/entity"
	"github.com/ignatzorin/lostfound-backend/internal/domain/repository"
	"github.com/ignatzorin/lostfound-backend/internal/usecase/report"
)

// ReportSubmitter выполняет подачу объявления.
type ReportSubmitter interface {
	Execute(ctx context.Context, reports repository.ReportStore, input report.SubmitReportInput) (*entity.Report, error)
}

// Broadcaster рассылает события ленты открытым вкладкам сессии.
type Broadcaster interface {
	BroadcastToSession(sessionID uuid.UUID, event string, data any) error
}
