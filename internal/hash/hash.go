// Package hash fingerprints timetable files.
//
// A state store remembers the fingerprint of the bytes it loaded and
// compares it with the file on disk before saving, so two slotwise
// processes editing the same timetable cannot silently overwrite each
// other. The package provides a SHA-256 implementation and a fake for tests.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hasher computes content fingerprints.
type Hasher interface {
	// Sum returns the fingerprint of data.
	Sum(data []byte) string
}

// SHA256Hasher implements Hasher using SHA-256.
type SHA256Hasher struct{}

// NewSHA256Hasher creates a new SHA256Hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// Sum returns the hex-encoded SHA-256 of data.
func (h *SHA256Hasher) Sum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// FakeHasher returns the content itself, which keeps test failures readable.
type FakeHasher struct{}

// Sum returns data as a string.
func (FakeHasher) Sum(data []byte) string {
	return string(data)
}
