package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
)

// DefaultMaxDim ограничивает каждую сторону миниатюры.
const DefaultMaxDim = 300

// Thumbnailer превращает загруженный файл в base64 JPEG миниатюру.
type Thumbnailer struct {
	codec          Codec
	maxDim         int
	maxUploadBytes int64
}

// NewThumbnailer создаёт обработчик изображений.
func NewThumbnailer(codec Codec, maxDim int, maxUploadMB int64) *Thumbnailer {
	if maxDim <= 0 {
		maxDim = DefaultMaxDim
	}
	return &Thumbnailer{
		codec:          codec,
		maxDim:         maxDim,
		maxUploadBytes: maxUploadMB * 1024 * 1024,
	}
}

// Thumbnail читает поток, уменьшает изображение и возвращает base64 строку.
func (t *Thumbnailer) Thumbnail(r io.Reader) (string, error) {
	data, err := t.readLimited(r)
	if err != nil {
		return "", err
	}

	img, err := t.codec.Decode(data)
	if err != nil {
		return "", err
	}

	thumb := t.codec.Resize(img, t.maxDim)

	var buf bytes.Buffer
	if err := t.codec.Encode(&buf, thumb); err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func (t *Thumbnailer) readLimited(r io.Reader) ([]byte, error) {
	if t.maxUploadBytes <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("imaging: ошибка чтения файла: %w", err)
		}
		return data, nil
	}

	limitedReader := io.LimitedReader{R: r, N: t.maxUploadBytes + 1}
	data, err := io.ReadAll(&limitedReader)
	if err != nil {
		return nil, fmt.Errorf("imaging: ошибка чтения файла: %w", err)
	}
	if int64(len(data)) > t.maxUploadBytes {
		return nil, fmt.Errorf("%w: %d байт", ErrImageTooLarge, t.maxUploadBytes)
	}
	return data, nil
}
