// Package generator produces random test inputs: strings, permutations,
// arrays, graphs and trees. Every function takes its random source so
// callers (and tests) control seeding.
package generator

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"unicode/utf8"
)

const (
	DefaultCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	DefaultLength  = 16

	MaxStringLength = 10_000
	MaxPermutation  = 100_000
	MaxArrayCells   = 100_000

	// MaxMagnitude bounds every numeric option so spans fit in an int64
	// and whole floats convert exactly.
	MaxMagnitude = 1 << 52
)

var ErrInvalidOptions = errors.New("invalid generator options")

// NewRand returns a source seeded from the runtime's entropy.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Seeded returns a deterministic source.
func Seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// String draws length characters from charset.
func String(r *rand.Rand, charset string, length int) (string, error) {
	if charset == "" {
		charset = DefaultCharset
	}
	if length < 1 || length > MaxStringLength {
		return "", fmt.Errorf("%w: length must be between 1 and %d", ErrInvalidOptions, MaxStringLength)
	}
	if !utf8.ValidString(charset) {
		return "", fmt.Errorf("%w: charset is not valid UTF-8", ErrInvalidOptions)
	}

	chars := []rune(charset)
	out := make([]rune, length)
	for i := range out {
		out[i] = chars[r.IntN(len(chars))]
	}
	return string(out), nil
}

// Permutation shuffles start..start+size-1 with Fisher-Yates.
func Permutation(r *rand.Rand, size, start int) ([]int, error) {
	if size < 1 || size > MaxPermutation {
		return nil, fmt.Errorf("%w: size must be between 1 and %d", ErrInvalidOptions, MaxPermutation)
	}
	out := make([]int, size)
	for i := range out {
		out[i] = start + i
	}
	for i := size - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// ArrayOptions describes a random array. Cols == 0 yields a flat array of
// Rows values.
type ArrayOptions struct {
	Rows int     `json:"rows"`
	Cols int     `json:"cols"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// Array returns []int / [][]int when both bounds are whole numbers (values
// drawn from [Min, Max]), otherwise []float64 / [][]float64 drawn from
// [Min, Max).
func Array(r *rand.Rand, opts ArrayOptions) (any, error) {
	if opts.Rows < 1 || opts.Cols < 0 {
		return nil, fmt.Errorf("%w: rows must be >= 1 and cols >= 0", ErrInvalidOptions)
	}
	if opts.Rows > MaxArrayCells || opts.Cols > MaxArrayCells || opts.Rows*max(opts.Cols, 1) > MaxArrayCells {
		return nil, fmt.Errorf("%w: at most %d values", ErrInvalidOptions, MaxArrayCells)
	}
	if opts.Max < opts.Min {
		return nil, fmt.Errorf("%w: max must be >= min", ErrInvalidOptions)
	}
	if !inRange(opts.Min) || !inRange(opts.Max) {
		return nil, fmt.Errorf("%w: bounds must be within ±%d", ErrInvalidOptions, MaxMagnitude)
	}

	if isWhole(opts.Min) && isWhole(opts.Max) {
		lo, hi := int(opts.Min), int(opts.Max)
		next := func() int { return intBetween(r, lo, hi) }
		return fill(opts.Rows, opts.Cols, next), nil
	}
	next := func() float64 { return opts.Min + r.Float64()*(opts.Max-opts.Min) }
	return fill(opts.Rows, opts.Cols, next), nil
}

func fill[T any](rows, cols int, next func() T) any {
	if cols == 0 {
		out := make([]T, rows)
		for i := range out {
			out[i] = next()
		}
		return out
	}
	out := make([][]T, rows)
	for i := range out {
		out[i] = make([]T, cols)
		for j := range out[i] {
			out[i][j] = next()
		}
	}
	return out
}

func isWhole(f float64) bool {
	return f == math.Trunc(f) && !math.IsInf(f, 0)
}

// inRange reports whether f is a number within ±MaxMagnitude. NaN is not.
func inRange(f float64) bool {
	return f >= -MaxMagnitude && f <= MaxMagnitude
}

// checkBounds validates an integer [lo, hi] range for intBetween.
func checkBounds(what string, lo, hi int) error {
	if hi < lo {
		return fmt.Errorf("%w: max %s must be >= min %s", ErrInvalidOptions, what, what)
	}
	if int64(lo) < -MaxMagnitude || int64(hi) > MaxMagnitude {
		return fmt.Errorf("%w: %s must be within ±%d", ErrInvalidOptions, what, MaxMagnitude)
	}
	return nil
}

// intBetween draws from [lo, hi]. Callers keep both within ±MaxMagnitude.
func intBetween(r *rand.Rand, lo, hi int) int {
	return lo + int(r.Int64N(int64(hi)-int64(lo)+1))
}
