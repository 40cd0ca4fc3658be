package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/lostfound-backend/internal/domain/valueobject"
	"github.com/ignatzorin/lostfound-backend/internal/dto"
	"github.com/ignatzorin/lostfound-backend/internal/feed"
	"github.com/ignatzorin/lostfound-backend/internal/http/handlers/common"
	"github.com/ignatzorin/lostfound-backend/internal/store"
)

// FeedHandler отдаёт ленту объявлений сессии.
type FeedHandler struct{}

// NewFeedHandler создаёт хэндлер.
func NewFeedHandler() *FeedHandler {
	return &FeedHandler{}
}

// GetFeed GET /api/feed?filter=all|lost|found
func (h *FeedHandler) GetFeed(c *gin.Context) {
	s, err := common.CurrentSession(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var query dto.FeedQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	filter, err := valueobject.ParseFeedFilter(query.Filter)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	// Каждый запрос заново проходит по хранилищу, кэша между отрисовками нет
	var resp dto.FeedResponse
	_ = s.Do(func(reports *store.ReportStore) error {
		resp = feed.Render(reports, filter)
		return nil
	})

	c.JSON(http.StatusOK, resp)
}
