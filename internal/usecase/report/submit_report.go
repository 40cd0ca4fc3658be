package report

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/lostfound-backend/internal/domain/entity"
	"github.com/ignatzorin/lostfound-backend/internal/domain/repository"
	"github.com/ignatzorin/lostfound-backend/internal/domain/valueobject"
	"github.com/ignatzorin/lostfound-backend/internal/logger"
	"github.com/ignatzorin/lostfound-backend/internal/pkg/apperror"
)

// ImageProcessor превращает загруженный файл в хранимую миниатюру.
type ImageProcessor interface {
	Thumbnail(r io.Reader) (string, error)
}

// SubmitReportInput содержит поля формы подачи объявления.
// Image == nil означает, что фото не прикреплено.
type SubmitReportInput struct {
	IsLost      bool
	IsFound     bool
	Name        string
	Location    string
	Description string
	Contact     string
	Image       io.Reader
}

type SubmitReportUseCase struct {
	images ImageProcessor
	now    func() time.Time
}

func NewSubmitReportUseCase(images ImageProcessor, now func() time.Time) *SubmitReportUseCase {
	if now == nil {
		now = time.Now
	}
	return &SubmitReportUseCase{images: images, now: now}
}

// Execute проверяет форму, обрабатывает фото и добавляет объявление в начало ленты.
// Либо объявление целиком попадает в хранилище, либо хранилище не меняется.
func (uc *SubmitReportUseCase) Execute(ctx context.Context, reports repository.ReportStore, input SubmitReportInput) (*entity.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reportType := valueobject.DeriveReportType(input.IsLost, input.IsFound)

	draft, err := entity.NewReportDraft(reportType, input.Name, input.Location, input.Description, input.Contact)
	if err != nil {
		return nil, err
	}

	createdAt := uc.now()

	var image string
	if input.Image != nil {
		if uc.images == nil {
			return nil, apperror.New(apperror.ErrCodeImageDecode, "обработка изображений недоступна")
		}
		image, err = uc.images.Thumbnail(input.Image)
		if err != nil {
			logger.Get().WithFields(logrus.Fields{
				"error": err.Error(),
				"name":  draft.Name,
			}).Warn("report: изображение отклонено")
			return nil, apperror.Wrap(err, apperror.ErrCodeImageDecode, apperror.ErrImageDecode.Message)
		}
	}

	report := entity.NewReport(draft, createdAt, image)
	reports.Prepend(report)

	return &report, nil
}
