package cryptox

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor. 12 keeps hashing around tens of
// milliseconds on current hardware, slow enough to blunt offline attacks.
const DefaultCost = 12

// MaxPasswordBytes is bcrypt's input limit. Anything longer must be
// rejected by request validation before it reaches the hasher.
const MaxPasswordBytes = 72

// HashPassword generates a bcrypt hash of the password. The digest is
// self-describing: algorithm, cost and salt are embedded, so no external
// salt storage is needed. Surrounding whitespace is trimmed before hashing
// so VerifyPassword can normalize identically.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(password)), DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// VerifyPassword reports whether the password matches the encoded bcrypt
// hash. Malformed hashes never panic or error out of this function; they
// simply fail verification.
func VerifyPassword(password, encodedHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(strings.TrimSpace(password)))
	return err == nil
}
