package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"math"

	// Декодеры форматов, которые принимает форма загрузки.
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/h2non/filetype"
	"golang.org/x/image/draw"
)

var (
	ErrEmptyImage       = errors.New("imaging: пустой файл")
	ErrUnsupportedImage = errors.New("imaging: файл не является поддерживаемым изображением")
	ErrImageTooLarge    = errors.New("imaging: размер файла превышает лимит")
	ErrTooManyPixels    = errors.New("imaging: изображение превышает лимит по числу пикселей")
)

// DefaultMaxPixels ограничивает площадь декодируемого изображения (40 Мп).
const DefaultMaxPixels int64 = 40_000_000

// Разрешённые MIME типы (по магическим байтам).
var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/bmp":  true,
}

// Codec описывает операции с изображением, нужные конвейеру.
type Codec interface {
	Decode(data []byte) (image.Image, error)
	Resize(img image.Image, maxDim int) image.Image
	Encode(w io.Writer, img image.Image) error
}

// JPEGCodec декодирует jpeg/png/gif/webp/bmp и кодирует результат в JPEG.
type JPEGCodec struct {
	Quality int
	// MaxPixels ограничивает ширину×высоту до декодирования пикселей.
	MaxPixels int64
}

// NewJPEGCodec создаёт кодек с заданным качеством JPEG (1..100) и лимитом пикселей.
func NewJPEGCodec(quality int, maxPixels int64) *JPEGCodec {
	if quality < 1 || quality > 100 {
		quality = jpeg.DefaultQuality
	}
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	return &JPEGCodec{Quality: quality, MaxPixels: maxPixels}
}

// Decode проверяет магические байты и декодирует изображение.
func (c *JPEGCodec) Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}

	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown || !allowedMimeTypes[kind.MIME.Value] {
		return nil, ErrUnsupportedImage
	}

	// Размер читается из заголовка: маленький файл может объявить гигапиксели
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imaging: не удалось прочитать заголовок %s: %w", kind.MIME.Value, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > c.MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imaging: не удалось декодировать %s: %w", kind.MIME.Value, err)
	}
	return img, nil
}

// Resize вписывает изображение в квадрат maxDim×maxDim с сохранением пропорций.
// Увеличения не бывает. Прозрачность заливается белым: в JPEG альфа-канала нет.
func (c *JPEGCodec) Resize(img image.Image, maxDim int) image.Image {
	src := img.Bounds()
	w, h := FitWithin(src.Dx(), src.Dy(), maxDim)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	if w == src.Dx() && h == src.Dy() {
		draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Over)
		return dst
	}

	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Over, nil)
	return dst
}

// Encode пишет изображение в JPEG.
func (c *JPEGCodec) Encode(w io.Writer, img image.Image) error {
	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: c.Quality}); err != nil {
		return fmt.Errorf("imaging: ошибка кодирования JPEG: %w", err)
	}
	return nil
}

// FitWithin считает размер миниатюры, вписанной в maxDim×maxDim.
// Если исходник уже помещается, размер не меняется.
func FitWithin(width, height, maxDim int) (int, int) {
	if maxDim <= 0 || width <= 0 || height <= 0 {
		return width, height
	}
	if width <= maxDim && height <= maxDim {
		return width, height
	}

	aspect := float64(width) / float64(height)
	x, y := maxDim, maxDim
	if float64(x)/float64(y) >= aspect {
		fy := float64(y)
		x = roundAspect(fy*aspect, func(n float64) float64 { return math.Abs(aspect - n/fy) })
	} else {
		fx := float64(x)
		y = roundAspect(fx/aspect, func(n float64) float64 {
			if n == 0 {
				return 0
			}
			return math.Abs(aspect - fx/n)
		})
	}
	return min(x, width), min(y, height)
}

// roundAspect выбирает floor или ceil, смотря что точнее сохраняет пропорции. Результат не меньше 1.
func roundAspect(v float64, deviation func(float64) float64) int {
	lo, hi := math.Floor(v), math.Ceil(v)
	best := lo
	if deviation(hi) < deviation(lo) {
		best = hi
	}
	return max(int(best), 1)
}
