package valueobject

import (
	"strings"

	"github.com/ignatzorin/lostfound-backend/internal/pkg/apperror"
)

type ReportType string

const (
	ReportTypeLost  ReportType = "Lost"
	ReportTypeFound ReportType = "Found"
)

func (t ReportType) IsValid() bool {
	switch t {
	case ReportTypeLost, ReportTypeFound:
		return true
	}
	return false
}

func (t ReportType) String() string {
	return string(t)
}

// DeriveReportType выбирает тип объявления по двум флажкам формы.
// Found только если отмечен один «нашёл»; любая другая комбинация,
// включая обе отметки и ни одной, даёт Lost.
func DeriveReportType(isLost, isFound bool) ReportType {
	if isFound && !isLost {
		return ReportTypeFound
	}
	return ReportTypeLost
}

type FeedFilter string

const (
	FeedFilterAll       FeedFilter = "all"
	FeedFilterLostOnly  FeedFilter = "lost"
	FeedFilterFoundOnly FeedFilter = "found"
)

// Подписи переключателя ленты в интерфейсе.
const (
	FeedLabelAll   = "ทั้งหมด"
	FeedLabelLost  = "ของหาย (Lost)"
	FeedLabelFound = "เก็บได้ (Found)"
)

var feedFilterLabels = map[string]FeedFilter{
	"":             FeedFilterAll,
	"all":          FeedFilterAll,
	"lost":         FeedFilterLostOnly,
	"lostonly":     FeedFilterLostOnly,
	"found":        FeedFilterFoundOnly,
	"foundonly":    FeedFilterFoundOnly,
	FeedLabelAll:   FeedFilterAll,
	FeedLabelLost:  FeedFilterLostOnly,
	FeedLabelFound: FeedFilterFoundOnly,
}

func (f FeedFilter) IsValid() bool {
	switch f {
	case FeedFilterAll, FeedFilterLostOnly, FeedFilterFoundOnly:
		return true
	}
	return false
}

// Matches сообщает, проходит ли объявление данного типа через фильтр.
func (f FeedFilter) Matches(t ReportType) bool {
	switch f {
	case FeedFilterLostOnly:
		return t == ReportTypeLost
	case FeedFilterFoundOnly:
		return t == ReportTypeFound
	default:
		return true
	}
}

// Label возвращает подпись переключателя для фильтра.
func (f FeedFilter) Label() string {
	switch f {
	case FeedFilterLostOnly:
		return FeedLabelLost
	case FeedFilterFoundOnly:
		return FeedLabelFound
	default:
		return FeedLabelAll
	}
}

// ParseFeedFilter переводит подпись или код фильтра в критерий выборки.
func ParseFeedFilter(label string) (FeedFilter, error) {
	label = strings.TrimSpace(label)
	if f, ok := feedFilterLabels[label]; ok {
		return f, nil
	}
	if f, ok := feedFilterLabels[strings.ToLower(label)]; ok {
		return f, nil
	}
	return "", apperror.ErrUnknownFilter
}
