package qr

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, text := range []string{
		"https://go.dev/doc/effective_go",
		"WIFI:T:WPA;S:home;P:hunter2;;",
	} {
		data, err := Encode(text, 0)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

		got, err := DecodeBytes(data)
		require.NoError(t, err)
		assert.Equal(t, text, got)
	}
}

func TestEncodeLimits(t *testing.T) {
	_, err := Encode("", 0)
	assert.ErrorIs(t, err, ErrEmptyText)

	_, err = Encode(strings.Repeat("a", MaxTextLength+1), 0)
	assert.ErrorIs(t, err, ErrTextTooLong)

	_, err = Encode("hello", 10)
	assert.Error(t, err)
}

func TestDecodeBlankImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	_, err := Decode(&buf)
	assert.ErrorIs(t, err, ErrNoCode)
}

func TestDecodeNotAnImage(t *testing.T) {
	_, err := Decode(strings.NewReader("plain text"))
	assert.ErrorIs(t, err, ErrNotAnImage)
	assert.NotErrorIs(t, err, ErrNoCode)
}
