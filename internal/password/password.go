// Package password derives reproducible site passwords from seed material.
// Nothing is stored: the same inputs always give the same password.
package password

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultCharset is the base64 alphabet.
	DefaultCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	// DefaultAlgorithm is used when Input.Algorithm is empty.
	DefaultAlgorithm = BLAKE3
	// DefaultLength is the body length suggested to callers.
	DefaultLength = 16
	// MinLength is the shortest accepted body.
	MinLength = 8
	// MaxLength is the longest accepted body.
	MaxLength = 1024

	// Separator is spliced into the body.
	Separator = '-'

	defaultSite = "defaultSite"
)

var ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

// ValidationError reports an input rejected before any hashing.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Input is the seed material for Derive. Any string may be empty.
type Input struct {
	Seed      string
	Salt      string
	Email     string
	Site      string
	Charset   string // empty means DefaultCharset
	Length    int    // body length, MinLength..MaxLength
	Algorithm string // empty means DefaultAlgorithm
}

// Derive returns a password of Length+1 characters: Length symbols drawn
// from Charset plus one Separator, never at index 0.
func Derive(in Input) (string, error) {
	if in.Charset == "" {
		in.Charset = DefaultCharset
	}
	if in.Algorithm == "" {
		in.Algorithm = DefaultAlgorithm
	}
	if in.Length < MinLength {
		return "", &ValidationError{Field: "length", Reason: fmt.Sprintf("must be at least %d", MinLength)}
	}
	if in.Length > MaxLength {
		return "", &ValidationError{Field: "length", Reason: fmt.Sprintf("must be at most %d", MaxLength)}
	}

	h, ok := algorithms[strings.ToLower(in.Algorithm)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, in.Algorithm)
	}

	site := in.Site
	if site == "" {
		site = defaultSite
	}

	combined := in.Seed + ":" + in.Salt + ":" + in.Email + ":" + in.Site
	hash1 := h([]byte(combined))
	hash2 := h([]byte(hash1 + site))

	stream, err := byteStream(h, hash2, in.Length+1)
	if err != nil {
		return "", err
	}

	charset := []rune(in.Charset)
	body := make([]rune, 0, in.Length+1)
	for _, b := range stream[:in.Length] {
		body = append(body, charset[int(b)%len(charset)])
	}

	pos := int(stream[in.Length])%(in.Length-1) + 1
	body = append(body, 0)
	copy(body[pos+1:], body[pos:])
	body[pos] = Separator

	return string(body), nil
}

// byteStream decodes digest and, while it is shorter than n bytes, appends
// the hash of the previous hex digest. Short digests (crc32, crc64) and long
// passwords need the extension.
func byteStream(h hexHash, digest string, n int) ([]byte, error) {
	stream, err := hex.DecodeString(digest)
	if err != nil {
		return nil, fmt.Errorf("failed to decode digest: %w", err)
	}
	prev := digest
	for len(stream) < n {
		prev = h([]byte(prev))
		more, err := hex.DecodeString(prev)
		if err != nil {
			return nil, fmt.Errorf("failed to decode digest: %w", err)
		}
		stream = append(stream, more...)
	}
	return stream, nil
}
