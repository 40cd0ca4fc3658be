package report_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"io"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/lostfound-backend/internal/domain/valueobject"
	"github.com/ignatzorin/lostfound-backend/internal/imaging"
	"github.com/ignatzorin/lostfound-backend/internal/pkg/apperror"
	"github.com/ignatzorin/lostfound-backend/internal/store"
	"github.com/ignatzorin/lostfound-backend/internal/usecase/report"
)

type mockImageProcessor struct {
	mock.Mock
}

func (m *mockImageProcessor) Thumbnail(r io.Reader) (string, error) {
	args := m.Called(r)
	return args.String(0), args.Error(1)
}

var fixedNow = time.Date(2024, time.July, 9, 8, 30, 0, 0, time.UTC)

func newUseCase(images report.ImageProcessor) *report.SubmitReportUseCase {
	return report.NewSubmitReportUseCase(images, func() time.Time { return fixedNow })
}

func seededStore() *store.ReportStore {
	s := store.NewReportStore()
	s.Initialize()
	return s
}

func TestSubmitReport_WithoutImage(t *testing.T) {
	images := new(mockImageProcessor)
	uc := newUseCase(images)
	reports := seededStore()

	created, err := uc.Execute(context.Background(), reports, report.SubmitReportInput{
		IsFound:  true,
		Name:     "Umbrella",
		Location: "Bus stop",
		Contact:  "Noi",
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, valueobject.ReportTypeFound, created.Type)
	assert.Equal(t, "09/07 08:30", created.Timestamp)
	assert.Empty(t, created.Image)
	assert.Equal(t, 3, reports.Len())

	first := slices.Collect(reports.FilteredView(valueobject.FeedFilterAll))[0]
	assert.Equal(t, created.ID, first.ID)

	images.AssertNotCalled(t, "Thumbnail", mock.Anything)
}

func TestSubmitReport_BothFlagsIsLost(t *testing.T) {
	uc := newUseCase(nil)
	reports := seededStore()

	created, err := uc.Execute(context.Background(), reports, report.SubmitReportInput{
		IsLost:  true,
		IsFound: true,
		Name:    "Dog",
		Contact: "Ann",
	})
	require.NoError(t, err)
	assert.Equal(t, valueobject.ReportTypeLost, created.Type)
}

func TestSubmitReport_WithImage(t *testing.T) {
	images := new(mockImageProcessor)
	upload := strings.NewReader("fake-image-bytes")
	images.On("Thumbnail", upload).Return("dGh1bWI=", nil).Once()

	uc := newUseCase(images)
	reports := seededStore()

	created, err := uc.Execute(context.Background(), reports, report.SubmitReportInput{
		IsLost:  true,
		Name:    "Keys",
		Contact: "Ann",
		Image:   upload,
	})
	require.NoError(t, err)
	assert.Equal(t, "dGh1bWI=", created.Image)
	assert.True(t, created.HasImage())

	images.AssertExpectations(t)
}

func TestSubmitReport_ValidationLeavesStoreUntouched(t *testing.T) {
	images := new(mockImageProcessor)
	uc := newUseCase(images)
	reports := seededStore()

	created, err := uc.Execute(context.Background(), reports, report.SubmitReportInput{
		IsLost:   true,
		Location: "Market",
		Image:    strings.NewReader("whatever"),
	})
	require.Error(t, err)
	assert.Nil(t, created)

	vErr, ok := apperror.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{"name", "contact"}, vErr.MissingFields)
	assert.Equal(t, 2, reports.Len())

	// Фото не обрабатывается, пока поля не прошли проверку
	images.AssertNotCalled(t, "Thumbnail", mock.Anything)
}

func TestSubmitReport_ImageDecodeFailure(t *testing.T) {
	images := new(mockImageProcessor)
	images.On("Thumbnail", mock.Anything).Return("", errors.New("not an image"))

	uc := newUseCase(images)
	reports := seededStore()

	created, err := uc.Execute(context.Background(), reports, report.SubmitReportInput{
		IsFound: true,
		Name:    "Wallet",
		Contact: "Guard",
		Image:   strings.NewReader("%PDF"),
	})
	require.Error(t, err)
	assert.Nil(t, created)
	assert.True(t, apperror.IsImageDecode(err))
	assert.ErrorIs(t, err, apperror.ErrImageDecode)
	assert.Equal(t, 2, reports.Len())
}

// hugePNGHeader объявляет width×height пикселей, занимая несколько десятков байт.
func hugePNGHeader(width, height uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], width)
	binary.BigEndian.PutUint32(ihdr[4:8], height)
	ihdr[8] = 8

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestSubmitReport_OversizedDimensionsRejected(t *testing.T) {
	thumbnailer := imaging.NewThumbnailer(imaging.NewJPEGCodec(75, imaging.DefaultMaxPixels), 300, 10)
	uc := newUseCase(thumbnailer)
	reports := seededStore()

	created, err := uc.Execute(context.Background(), reports, report.SubmitReportInput{
		IsLost:  true,
		Name:    "Poster",
		Contact: "Ann",
		Image:   bytes.NewReader(hugePNGHeader(16_000, 16_000)),
	})
	require.Error(t, err)
	assert.Nil(t, created)
	assert.True(t, apperror.IsImageDecode(err))
	assert.ErrorIs(t, err, imaging.ErrTooManyPixels)
	assert.Equal(t, 2, reports.Len())
}

func TestSubmitReport_NoImageProcessor(t *testing.T) {
	uc := newUseCase(nil)
	reports := seededStore()

	_, err := uc.Execute(context.Background(), reports, report.SubmitReportInput{
		Name:    "Phone",
		Contact: "Ann",
		Image:   strings.NewReader("x"),
	})
	assert.True(t, apperror.IsImageDecode(err))
	assert.Equal(t, 2, reports.Len())
}

func TestSubmitReport_CanceledContext(t *testing.T) {
	uc := newUseCase(nil)
	reports := seededStore()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uc.Execute(ctx, reports, report.SubmitReportInput{Name: "Phone", Contact: "Ann"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, reports.Len())
}
