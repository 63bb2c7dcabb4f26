package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// hashVersion is the format version byte prepended to every hash blob.
	hashVersion = 0x00
	// saltLength is the number of random salt bytes per hash.
	saltLength = 16
	// keyLength is the derived key length in bytes.
	keyLength = 32
	// pbkdf2Iterations is the PBKDF2 iteration count.
	pbkdf2Iterations = 100_000
)

// PasswordHasher provides password hashing and verification using
// PBKDF2-SHA256. Hashes are encoded as base64(version || salt || key),
// so every hash carries its own salt.
type PasswordHasher struct {
	iterations int
}

// NewPasswordHasher creates a new PasswordHasher with the default
// iteration count.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{
		iterations: pbkdf2Iterations,
	}
}

// Hash derives a salted hash of the given password. Two calls with the
// same password produce different blobs because the salt is random.
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, h.iterations, keyLength, sha256.New)

	blob := make([]byte, 0, 1+saltLength+keyLength)
	blob = append(blob, hashVersion)
	blob = append(blob, salt...)
	blob = append(blob, key...)
	return base64.StdEncoding.EncodeToString(blob), nil
}

// Verify checks if the provided password matches the stored hash.
// A malformed hash verifies as false rather than returning an error.
func (h *PasswordHasher) Verify(password, hash string) bool {
	blob, err := base64.StdEncoding.DecodeString(hash)
	if err != nil {
		return false
	}
	if len(blob) != 1+saltLength+keyLength || blob[0] != hashVersion {
		return false
	}

	salt := blob[1 : 1+saltLength]
	stored := blob[1+saltLength:]

	key := pbkdf2.Key([]byte(password), salt, h.iterations, keyLength, sha256.New)
	return subtle.ConstantTimeCompare(key, stored) == 1
}
