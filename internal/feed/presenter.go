package feed

import (
	"github.com/ignatzorin/lostfound-backend/internal/domain/entity"
	"github.com/ignatzorin/lostfound-backend/internal/domain/repository"
	"github.com/ignatzorin/lostfound-backend/internal/domain/valueobject"
	"github.com/ignatzorin/lostfound-backend/internal/dto"
)

const (
	BadgeClassLost  = "badge-lost"
	BadgeClassFound = "badge-found"
	BadgeTextLost   = "😭 ของหาย"
	BadgeTextFound  = "🥰 เก็บได้"
	NoImageText     = "ไม่มีรูป"

	imageDataPrefix = "data:image/jpeg;base64,"
)

// Render проходит по выборке хранилища и собирает карточки ленты.
func Render(reports repository.ReportStore, filter valueobject.FeedFilter) dto.FeedResponse {
	items := make([]dto.FeedCard, 0, reports.Len())
	for report := range reports.FilteredView(filter) {
		items = append(items, Card(report))
	}

	return dto.FeedResponse{
		Filter:      string(filter),
		FilterLabel: filter.Label(),
		Count:       len(items),
		Items:       items,
	}
}

// Card переводит объявление в карточку для отображения.
func Card(r entity.Report) dto.FeedCard {
	card := dto.FeedCard{
		ID:          r.ID,
		Type:        r.Type.String(),
		Title:       r.Name,
		BadgeClass:  BadgeClassFound,
		BadgeText:   BadgeTextFound,
		Location:    r.Location,
		Description: r.Description,
		Contact:     r.Contact,
		Timestamp:   r.Timestamp,
	}

	if r.IsLost() {
		card.BadgeClass = BadgeClassLost
		card.BadgeText = BadgeTextLost
	}

	if r.HasImage() {
		card.HasImage = true
		card.ImageURL = imageDataPrefix + r.Image
	} else {
		card.Placeholder = NoImageText
	}

	return card
}
