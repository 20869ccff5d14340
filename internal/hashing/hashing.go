// Package hashing resolves named one-way functions used to test candidates.
package hashing

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"sort"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/md4"
	"golang.org/x/crypto/sha3"
)

// Algorithm names.
const (
	MD5        = "md5"
	SHA1       = "sha1"
	SHA256     = "sha256"
	SHA512     = "sha512"
	MD4        = "md4"
	NTLM       = "ntlm"
	SHA3_256   = "sha3-256"
	SHA3_512   = "sha3-512"
	Blake2b256 = "blake2b-256"
	Blake2b512 = "blake2b-512"

	// Unknown is reported by Detect for digests of no recognised length.
	Unknown = "unknown"
)

var (
	// ErrUnsupportedAlgorithm is returned for names missing from the registry.
	ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")
	// ErrHashCandidate is returned when a single candidate cannot be hashed.
	ErrHashCandidate = errors.New("failed to hash candidate")
)

// Func hashes a candidate and returns its lower-case hex digest.
type Func func(candidate string) (string, error)

var registry = map[string]Func{
	MD5:        digest(md5.New),
	SHA1:       digest(sha1.New),
	SHA256:     digest(sha256.New),
	SHA512:     digest(sha512.New),
	MD4:        digest(md4.New),
	NTLM:       ntlm,
	SHA3_256:   digest(sha3.New256),
	SHA3_512:   digest(sha3.New512),
	Blake2b256: digest(newBlake2b256),
	Blake2b512: digest(newBlake2b512),
}

// detectByLength maps hex digest lengths to the algorithm assumed for them.
var detectByLength = map[int]string{
	32:  MD5,
	40:  SHA1,
	64:  SHA256,
	128: SHA512,
}

// Lookup returns the hash function registered under name (case-insensitive).
func Lookup(name string) (Func, error) {
	fn, ok := registry[normalize(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
	}
	return fn, nil
}

// Resolve returns the algorithm to use for digest. An explicit name must be
// supported; an empty name is detected from the digest length and falls
// back to MD5.
func Resolve(name, digest string) (string, Func, error) {
	if strings.TrimSpace(name) == "" {
		name = Detect(digest)
		if name == Unknown {
			name = MD5
		}
	}
	fn, err := Lookup(name)
	if err != nil {
		return "", nil, err
	}
	return normalize(name), fn, nil
}

// Detect guesses the algorithm from the hex digest length.
func Detect(digest string) string {
	if name, ok := detectByLength[len(strings.TrimSpace(digest))]; ok {
		return name
	}
	return Unknown
}

// Hash hashes candidate with the named algorithm.
func Hash(candidate, name string) (string, error) {
	fn, err := Lookup(name)
	if err != nil {
		return "", err
	}
	return fn(candidate)
}

// Algorithms lists the supported names in sorted order.
func Algorithms() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Equal compares two hex digests ignoring case and surrounding space.
func Equal(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func digest(newHash func() hash.Hash) Func {
	return func(candidate string) (string, error) {
		h := newHash()
		if _, err := h.Write([]byte(candidate)); err != nil {
			return "", fmt.Errorf("%w: %v", ErrHashCandidate, err)
		}
		return hex.EncodeToString(h.Sum(nil)), nil
	}
}

// ntlm is MD4 over the UTF-16LE encoding of the candidate.
func ntlm(candidate string) (string, error) {
	if !utf8.ValidString(candidate) {
		return "", fmt.Errorf("%w: ntlm requires valid UTF-8", ErrHashCandidate)
	}
	units := utf16.Encode([]rune(candidate))
	buf := make([]byte, 2*len(units))
	for i, u := range units {
		binary.LittleEndian.PutUint16(buf[2*i:], u)
	}
	h := md4.New()
	h.Write(buf)
	return hex.EncodeToString(h.Sum(nil)), nil
}

func newBlake2b256() hash.Hash {
	h, _ := blake2b.New256(nil)
	return h
}

func newBlake2b512() hash.Hash {
	h, _ := blake2b.New512(nil)
	return h
}
