package apperror

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"
)

type ErrorCode string

const (
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeBadRequest      ErrorCode = "BAD_REQUEST"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation      ErrorCode = "VALIDATION_ERROR"
	ErrCodeImageDecode     ErrorCode = "IMAGE_DECODE_ERROR"
	ErrCodeTooManyRequests ErrorCode = "TOO_MANY_REQUESTS"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is сравнивает ошибки по коду, чтобы errors.Is(err, ErrImageDecode)
// срабатывал и для обёрнутых копий с причиной.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeBadRequest, ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeImageDecode:
		return http.StatusUnprocessableEntity
	case ErrCodeTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// ValidationError описывает отклонённую отправку объявления.
// MissingFields перечисляет незаполненные обязательные поля, InvalidFields поля,
// не прошедшие прочие проверки (например, длину).
type ValidationError struct {
	MissingFields []string
	InvalidFields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 2)
	if len(e.MissingFields) > 0 {
		parts = append(parts, "не заполнены обязательные поля: "+strings.Join(e.MissingFields, ", "))
	}
	for _, field := range slices.Sorted(maps.Keys(e.InvalidFields)) {
		parts = append(parts, field+": "+e.InvalidFields[field])
	}
	if len(parts) == 0 {
		return "ошибка валидации"
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// HasErrors сообщает, накоплена ли хоть одна ошибка.
func (e *ValidationError) HasErrors() bool {
	return len(e.MissingFields) > 0 || len(e.InvalidFields) > 0
}

// AddMissing отмечает обязательное поле как незаполненное.
func (e *ValidationError) AddMissing(field string) {
	e.MissingFields = append(e.MissingFields, field)
}

// AddInvalid отмечает поле как некорректное.
func (e *ValidationError) AddInvalid(field, reason string) {
	if e.InvalidFields == nil {
		e.InvalidFields = make(map[string]string)
	}
	e.InvalidFields[field] = reason
}

func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeValidation
}

func IsImageDecode(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeImageDecode
}

// AsValidation извлекает ValidationError со списком полей, если он есть в цепочке.
func AsValidation(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

var (
	ErrValidation      = New(ErrCodeValidation, "ошибка валидации")
	ErrImageDecode     = New(ErrCodeImageDecode, "не удалось обработать изображение")
	ErrSessionNotFound = New(ErrCodeUnauthorized, "сессия не найдена или истекла")
	ErrUnauthorized    = New(ErrCodeUnauthorized, "требуется сессия")
	ErrUnknownFilter   = New(ErrCodeBadRequest, "неизвестный фильтр ленты")
	ErrTooManyRequests = New(ErrCodeTooManyRequests, "слишком много запросов, попробуйте позже")
)
