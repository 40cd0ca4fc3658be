package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("session: токен невалиден")

// Token описывает выданный токен сессии.
type Token struct {
	SessionID uuid.UUID `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenManager отвечает за выпуск и проверку JWT сессий.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager создаёт менеджер токенов.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue выпускает токен для сессии.
func (m *TokenManager) Issue(sessionID uuid.UUID) (*Token, error) {
	now := time.Now()
	exp := now.Add(m.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   sessionID.String(),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, err
	}

	return &Token{SessionID: sessionID, Token: signed, ExpiresAt: exp}, nil
}

// Parse проверяет токен и возвращает идентификатор сессии.
func (m *TokenManager) Parse(token string) (uuid.UUID, error) {
	sessionID, _, err := m.ParseWithExpiry(token)
	return sessionID, err
}

// ParseWithExpiry проверяет токен и дополнительно возвращает момент его истечения.
func (m *TokenManager) ParseWithExpiry(token string) (uuid.UUID, time.Time, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return uuid.Nil, time.Time{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.ExpiresAt == nil {
		return uuid.Nil, time.Time{}, ErrInvalidToken
	}

	sessionID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, time.Time{}, ErrInvalidToken
	}
	return sessionID, claims.ExpiresAt.Time, nil
}

// ShouldRefresh сообщает, что токену осталось жить меньше половины срока.
// Активная сессия получает новый токен раньше, чем старый истечёт.
func (m *TokenManager) ShouldRefresh(expiresAt time.Time) bool {
	return time.Until(expiresAt) < m.ttl/2
}
