package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/lostfound-backend/internal/domain/valueobject"
	"github.com/ignatzorin/lostfound-backend/internal/pkg/apperror"
	"github.com/ignatzorin/lostfound-backend/internal/validation"
)

// TimestampLayout задаёт формат времени объявления: день/месяц час:минута.
const TimestampLayout = "02/01 15:04"

// Report описывает объявление о потерянной или найденной вещи.
// Хранится и передаётся по значению, после создания не меняется.
type Report struct {
	ID          uuid.UUID
	Type        valueobject.ReportType
	Name        string
	Location    string
	Description string
	Contact     string
	Timestamp   string
	CreatedAt   time.Time
	// Image хранит миниатюру JPEG в base64, пустая строка если фото нет.
	Image string
}

// ReportDraft содержит проверенные текстовые поля будущего объявления.
type ReportDraft struct {
	Type        valueobject.ReportType
	Name        string
	Location    string
	Description string
	Contact     string
}

// NewReportDraft чистит и проверяет поля формы.
// Ошибка всегда *apperror.ValidationError со списком полей.
func NewReportDraft(t valueobject.ReportType, name, location, description, contact string) (ReportDraft, error) {
	draft := ReportDraft{
		Type:        t,
		Name:        validation.SanitizeText(name),
		Location:    validation.SanitizeText(location),
		Description: validation.SanitizeText(description),
		Contact:     validation.SanitizeText(contact),
	}

	vErr := &apperror.ValidationError{}
	if draft.Name == "" {
		vErr.AddMissing("name")
	}
	if draft.Contact == "" {
		vErr.AddMissing("contact")
	}
	if !t.IsValid() {
		vErr.AddInvalid("type", "некорректный тип объявления")
	}

	limits := []struct {
		field string
		value string
		max   int
	}{
		{"name", draft.Name, validation.MaxItemNameLength},
		{"location", draft.Location, validation.MaxLocationLength},
		{"description", draft.Description, validation.MaxDescriptionLength},
		{"contact", draft.Contact, validation.MaxContactLength},
	}
	for _, l := range limits {
		if err := validation.ValidateLength(l.field, l.value, 0, l.max); err != nil {
			vErr.AddInvalid(l.field, err.Error())
		}
	}

	if vErr.HasErrors() {
		return ReportDraft{}, vErr
	}
	return draft, nil
}

// NewReport собирает объявление из проверенного черновика.
func NewReport(draft ReportDraft, createdAt time.Time, image string) Report {
	return Report{
		ID:          uuid.New(),
		Type:        draft.Type,
		Name:        draft.Name,
		Location:    draft.Location,
		Description: draft.Description,
		Contact:     draft.Contact,
		Timestamp:   createdAt.Format(TimestampLayout),
		CreatedAt:   createdAt,
		Image:       image,
	}
}

func (r Report) HasImage() bool {
	return r.Image != ""
}

func (r Report) IsLost() bool {
	return r.Type == valueobject.ReportTypeLost
}
