package password

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash/crc32"
	"hash/crc64"
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"lukechampine.com/blake3"
)

// Algorithm names accepted by Derive.
const (
	BLAKE3  = "blake3"
	BLAKE2s = "blake2s"
	BLAKE2b = "blake2b"
	SHA256  = "sha256"
	SHA384  = "sha384"
	SHA512  = "sha512"
	CRC32   = "crc32"
	CRC64   = "crc64"
)

// hexHash hashes data and returns the lowercase hex digest.
type hexHash func(data []byte) string

var crc64Table = crc64.MakeTable(crc64.ECMA)

var algorithms = map[string]hexHash{
	BLAKE3: func(b []byte) string {
		sum := blake3.Sum256(b)
		return hex.EncodeToString(sum[:])
	},
	BLAKE2s: func(b []byte) string {
		sum := blake2s.Sum256(b)
		return hex.EncodeToString(sum[:])
	},
	BLAKE2b: func(b []byte) string {
		sum := blake2b.Sum512(b)
		return hex.EncodeToString(sum[:])
	},
	SHA256: func(b []byte) string {
		sum := sha256.Sum256(b)
		return hex.EncodeToString(sum[:])
	},
	SHA384: func(b []byte) string {
		sum := sha512.Sum384(b)
		return hex.EncodeToString(sum[:])
	},
	SHA512: func(b []byte) string {
		sum := sha512.Sum512(b)
		return hex.EncodeToString(sum[:])
	},
	CRC32: func(b []byte) string {
		return fmt.Sprintf("%08x", crc32.ChecksumIEEE(b))
	},
	CRC64: func(b []byte) string {
		return fmt.Sprintf("%016x", crc64.Checksum(b, crc64Table))
	},
}

// Algorithms lists the supported algorithm names, sorted.
func Algorithms() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Supported reports whether name is a known algorithm.
func Supported(name string) bool {
	_, ok := algorithms[strings.ToLower(name)]
	return ok
}
