package dto

import (
	"time"

	"github.com/google/uuid"
)

// FeedCard represents one report rendered for the feed
type FeedCard struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	BadgeClass  string    `json:"badge_class"`
	BadgeText   string    `json:"badge_text"`
	HasImage    bool      `json:"has_image"`
	ImageURL    string    `json:"image_url,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Contact     string    `json:"contact"`
	Timestamp   string    `json:"timestamp"`
}

// FeedResponse represents a filtered feed render pass
type FeedResponse struct {
	Filter      string     `json:"filter"`
	FilterLabel string     `json:"filter_label"`
	Count       int        `json:"count"`
	Items       []FeedCard `json:"items"`
}

// SessionResponse represents a freshly started session
type SessionResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Seeded    int       `json:"seeded"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ValidationErrorResponse represents a rejected submission
type ValidationErrorResponse struct {
	Error         string            `json:"error"`
	Code          string            `json:"code"`
	MissingFields []string          `json:"missing_fields,omitempty"`
	InvalidFields map[string]string `json:"invalid_fields,omitempty"`
}
