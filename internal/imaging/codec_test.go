package imaging

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestFitWithin(t *testing.T) {
	tests := []struct {
		name         string
		w, h, maxDim int
		wantW, wantH int
	}{
		{"landscape", 600, 400, 300, 300, 200},
		{"portrait", 400, 600, 300, 200, 300},
		{"square", 1000, 1000, 300, 300, 300},
		{"already small", 120, 80, 300, 120, 80},
		{"exact fit", 300, 300, 300, 300, 300},
		{"one side over", 301, 10, 300, 300, 10},
		{"extreme panorama", 3000, 1, 300, 300, 1},
		{"odd ratio", 1024, 768, 300, 300, 225},
		{"rounding", 1000, 333, 300, 300, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := FitWithin(tt.w, tt.h, tt.maxDim)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
			assert.LessOrEqual(t, w, tt.maxDim)
			assert.LessOrEqual(t, h, tt.maxDim)
		})
	}
}

func TestJPEGCodec_DecodeRejectsNonImage(t *testing.T) {
	codec := NewJPEGCodec(75, DefaultMaxPixels)

	_, err := codec.Decode(nil)
	assert.ErrorIs(t, err, ErrEmptyImage)

	_, err = codec.Decode([]byte("definitely not a picture"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	// PDF распознаётся по сигнатуре, но в список не входит
	_, err = codec.Decode([]byte("%PDF-1.4\n%âãÏÓ\n"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestJPEGCodec_DecodeTruncatedPNG(t *testing.T) {
	data := encodePNG(t, solid(10, 10, color.Black))

	_, err := NewJPEGCodec(75, DefaultMaxPixels).Decode(data[:len(data)/2])
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupportedImage)
}

// pngHeaderOnly собирает PNG из сигнатуры и IHDR с заявленными размерами, без данных.
func pngHeaderOnly(width, height uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], width)
	binary.BigEndian.PutUint32(ihdr[4:8], height)
	ihdr[8] = 8 // глубина цвета
	ihdr[9] = 0 // grayscale

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestJPEGCodec_DecodeRejectsPixelBomb(t *testing.T) {
	data := pngHeaderOnly(100_000, 100_000)
	require.Less(t, len(data), 64)

	_, err := NewJPEGCodec(75, DefaultMaxPixels).Decode(data)
	assert.ErrorIs(t, err, ErrTooManyPixels)
}

func TestJPEGCodec_PixelBudgetBoundary(t *testing.T) {
	data := encodePNG(t, solid(20, 10, color.Black))

	_, err := NewJPEGCodec(75, 199).Decode(data)
	assert.ErrorIs(t, err, ErrTooManyPixels)

	img, err := NewJPEGCodec(75, 200).Decode(data)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 10), img.Bounds())
}

func TestNewJPEGCodec_DefaultPixelBudget(t *testing.T) {
	assert.Equal(t, DefaultMaxPixels, NewJPEGCodec(75, 0).MaxPixels)
	assert.Equal(t, int64(1000), NewJPEGCodec(75, 1000).MaxPixels)
}

func TestJPEGCodec_DecodeGIF(t *testing.T) {
	pal := image.NewPaletted(image.Rect(0, 0, 4, 4), []color.Color{color.Black, color.White})
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, pal, nil))

	img, err := NewJPEGCodec(75, DefaultMaxPixels).Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
}

func TestJPEGCodec_ResizeNeverUpscales(t *testing.T) {
	codec := NewJPEGCodec(75, DefaultMaxPixels)

	small := codec.Resize(solid(40, 20, color.Black), 300)
	assert.Equal(t, image.Rect(0, 0, 40, 20), small.Bounds())

	big := codec.Resize(solid(900, 300, color.Black), 300)
	assert.Equal(t, image.Rect(0, 0, 300, 100), big.Bounds())
}

func TestJPEGCodec_ResizeFlattensAlpha(t *testing.T) {
	codec := NewJPEGCodec(75, DefaultMaxPixels)

	out := codec.Resize(solid(10, 10, color.NRGBA{R: 0, G: 0, B: 0, A: 0}), 300)
	r, g, b, a := out.At(5, 5).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), b)
	assert.Equal(t, uint32(0xffff), a)
}

func TestNewJPEGCodec_QualityBounds(t *testing.T) {
	assert.Equal(t, 75, NewJPEGCodec(75, DefaultMaxPixels).Quality)
	assert.Equal(t, 100, NewJPEGCodec(100, DefaultMaxPixels).Quality)
	assert.NotEqual(t, 0, NewJPEGCodec(0, DefaultMaxPixels).Quality)
	assert.NotEqual(t, 500, NewJPEGCodec(500, DefaultMaxPixels).Quality)
}
