package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/lostfound-backend/internal/domain/entity"
	"github.com/ignatzorin/lostfound-backend/internal/dto"
	"github.com/ignatzorin/lostfound-backend/internal/feed"
	"github.com/ignatzorin/lostfound-backend/internal/http/handlers/common"
	"github.com/ignatzorin/lostfound-backend/internal/logger"
	"github.com/ignatzorin/lostfound-backend/internal/pkg/apperror"
	"github.com/ignatzorin/lostfound-backend/internal/store"
	"github.com/ignatzorin/lostfound-backend/internal/usecase/report"
	"github.com/ignatzorin/lostfound-backend/internal/validation"
	"github.com/ignatzorin/lostfound-backend/internal/ws"
)

// ReportHandler принимает новые объявления.
type ReportHandler struct {
	submit ReportSubmitter
	hub    Broadcaster
}

// NewReportHandler создаёт хэндлер. hub может быть nil.
func NewReportHandler(submit ReportSubmitter, hub Broadcaster) *ReportHandler {
	return &ReportHandler{submit: submit, hub: hub}
}

// SubmitReport POST /api/reports
func (h *ReportHandler) SubmitReport(c *gin.Context) {
	s, err := common.CurrentSession(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	input, closeImage, err := bindSubmitInput(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	defer closeImage()

	var created *entity.Report
	err = s.Do(func(reports *store.ReportStore) error {
		var execErr error
		created, execErr = h.submit.Execute(c.Request.Context(), reports, input)
		return execErr
	})
	if err != nil {
		if !apperror.IsValidation(err) && !apperror.IsImageDecode(err) {
			logger.WithSession(s.ID).WithError(err).Error("report: ошибка подачи объявления")
		}
		common.RespondAppError(c, err)
		return
	}

	card := feed.Card(*created)

	if h.hub != nil {
		if err := h.hub.BroadcastToSession(s.ID, ws.EventReportCreated, card); err != nil {
			logger.WithSession(s.ID).WithError(err).Warn("report: не удалось разослать событие")
		}
	}

	logger.WithSession(s.ID).WithField("type", created.Type).Info("report: объявление опубликовано")
	c.JSON(http.StatusCreated, card)
}

// bindSubmitInput разбирает multipart форму или JSON тело.
func bindSubmitInput(c *gin.Context) (report.SubmitReportInput, func(), error) {
	noop := func() {}

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") || c.ContentType() == "application/x-www-form-urlencoded" {
		input := report.SubmitReportInput{
			IsLost:      validation.ParseFlag(c.PostForm("is_lost")),
			IsFound:     validation.ParseFlag(c.PostForm("is_found")),
			Name:        c.PostForm("name"),
			Location:    c.PostForm("location"),
			Description: c.PostForm("description"),
			Contact:     c.PostForm("contact"),
		}

		file, err := c.FormFile("image")
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
				return input, noop, nil
			}
			return input, noop, apperror.Wrap(err, apperror.ErrCodeBadRequest, "не удалось прочитать форму")
		}
		// Браузер присылает пустую часть без имени, если файл не выбран
		if file.Filename == "" && file.Size == 0 {
			return input, noop, nil
		}

		src, err := file.Open()
		if err != nil {
			return input, noop, apperror.Wrap(err, apperror.ErrCodeImageDecode, apperror.ErrImageDecode.Message)
		}
		input.Image = src
		return input, func() { _ = src.Close() }, nil
	}

	var req dto.SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return report.SubmitReportInput{}, noop, apperror.Wrap(err, apperror.ErrCodeBadRequest, "некорректное тело запроса")
	}

	input := report.SubmitReportInput{
		IsLost:      req.IsLost,
		IsFound:     req.IsFound,
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
		Contact:     req.Contact,
	}
	if req.ImageBase64 != "" {
		// Ошибки base64 всплывут при чтении внутри конвейера, уже после валидации полей
		input.Image = base64.NewDecoder(base64.StdEncoding, strings.NewReader(req.ImageBase64))
	}
	return input, noop, nil
}
