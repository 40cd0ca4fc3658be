package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/lostfound-backend/internal/dto"
	"github.com/ignatzorin/lostfound-backend/internal/logger"
	"github.com/ignatzorin/lostfound-backend/internal/pkg/apperror"
)

// ErrorHandler обрабатывает ошибки, добавленные через c.Error, централизованно.
// Маскирует внутренние ошибки и возвращает понятные сообщения клиенту.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Проверяем, не был ли уже отправлен ответ
		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		logger.Get().WithFields(logrus.Fields{
			"error":  err.Error(),
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		}).Error("Request error")

		WriteError(c, err)
	}
}

// WriteError пишет JSON ответ для ошибки приложения.
func WriteError(c *gin.Context, err error) {
	if vErr, ok := apperror.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{
			Error:         vErr.Error(),
			Code:          string(apperror.ErrCodeValidation),
			MissingFields: vErr.MissingFields,
			InvalidFields: vErr.InvalidFields,
		})
		return
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		message := appErr.Message
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			message = "внутренняя ошибка сервера"
		}
		c.JSON(appErr.HTTPStatus, dto.ErrorResponse{Error: message, Code: string(appErr.Code)})
		return
	}

	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "внутренняя ошибка сервера",
		Code:  string(apperror.ErrCodeInternal),
	})
}

func abortWithAppError(c *gin.Context, err error) {
	WriteError(c, err)
	c.Abort()
}
