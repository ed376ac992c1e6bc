// Package qr encodes text as QR code PNGs and reads text back out of
// uploaded images.
package qr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/makiuchi-d/gozxing"
	zxingqr "github.com/makiuchi-d/gozxing/qrcode"
	qrencode "github.com/skip2/go-qrcode"
)

const (
	// MaxTextLength is the byte capacity of a version 40 symbol at the
	// lowest error correction level.
	MaxTextLength = 2953

	// mediumCapacity is the byte capacity at the medium level.
	mediumCapacity = 2331

	DefaultSize = 256
	MinSize     = 64
	MaxSize     = 2048
)

var (
	ErrEmptyText   = errors.New("text is empty")
	ErrTextTooLong = fmt.Errorf("text exceeds %d bytes", MaxTextLength)
	ErrNoCode      = errors.New("no QR code found in image")
	ErrNotAnImage  = errors.New("not a PNG, JPEG or GIF image")
	ErrInvalidSize = fmt.Errorf("size must be between %d and %d", MinSize, MaxSize)
)

// Encode renders text as a size x size PNG. Medium error correction is
// used when the text fits, low otherwise.
func Encode(text string, size int) ([]byte, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	if len(text) > MaxTextLength {
		return nil, ErrTextTooLong
	}
	if size == 0 {
		size = DefaultSize
	}
	if size < MinSize || size > MaxSize {
		return nil, ErrInvalidSize
	}

	level := qrencode.Medium
	if len(text) > mediumCapacity {
		level = qrencode.Low
	}
	png, err := qrencode.Encode(text, level, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return png, nil
}

// Decode reads a PNG, JPEG or GIF image and returns the text of the first
// QR code found.
func Decode(r io.Reader) (string, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("failed to prepare image: %w", err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	result, err := zxingqr.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoCode, err)
	}
	return result.GetText(), nil
}

// DecodeBytes is Decode over an in-memory image.
func DecodeBytes(data []byte) (string, error) {
	return Decode(bytes.NewReader(data))
}
