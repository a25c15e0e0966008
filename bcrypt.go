package auth

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword will generate a password hash. Each call salts independently,
// so hashing the same password twice yields different outputs.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword(truncateForBcrypt(password), passwordHashCost())
	return string(h), err
}

// ComparePasswordAndHash will validate the given cleartext password matches
// the hashed password. The algorithm is taken from the hash's own prefix;
// hashes carrying the deprecated $2y$ identifier (passlib, PHP) are accepted
// as $2b$ equivalents.
func ComparePasswordAndHash(password, hash string) error {
	hash = normalizeHashVersion(hash)
	if err := bcrypt.CompareHashAndPassword([]byte(hash), truncateForBcrypt(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return err
	}
	return nil
}

// truncateForBcrypt caps the input at the 72 bytes bcrypt actually reads.
// Passwords hashed elsewhere with passlib were truncated the same way.
func truncateForBcrypt(password string) []byte {
	b := []byte(password)
	if len(b) > 72 {
		b = b[:72]
	}
	return b
}

// normalizeHashVersion maps the deprecated $2y$ version tag onto $2b$. The
// two identifiers describe the same algorithm.
func normalizeHashVersion(hash string) string {
	if strings.HasPrefix(hash, "$2y$") {
		return "$2b$" + hash[len("$2y$"):]
	}
	return hash
}

// RandomPasswordHash is a temporary password
func RandomPasswordHash() string {
	pwd := uuid.New()

	h, err := HashPassword(pwd.String())
	if err != nil {
		return RandomPasswordHash()
	}

	return h
}
