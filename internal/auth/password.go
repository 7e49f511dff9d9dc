package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	SchemeSHA256 = "sha256"
	SchemeBcrypt = "bcrypt"
)

// Hasher produces password digests for new accounts.
type Hasher struct {
	scheme string
}

func NewHasher(scheme string) *Hasher {
	if scheme != SchemeBcrypt {
		scheme = SchemeSHA256
	}
	return &Hasher{scheme: scheme}
}

// Hash returns the digest stored for password. The sha256 scheme is the unsalted hex digest
// used by existing data files, so equal passwords give equal digests.
func (h *Hasher) Hash(password string) (string, error) {
	if h.scheme == SchemeBcrypt {
		b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return "", fmt.Errorf("failed to hash password: %w", err)
		}
		return string(b), nil
	}
	return DigestSHA256(password), nil
}

func DigestSHA256(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword checks password against a stored digest of either scheme.
func VerifyPassword(stored, password string) bool {
	if isBcrypt(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(DigestSHA256(password))) == 1
}

func isBcrypt(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$")
}
