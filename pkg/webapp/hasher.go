package webapp

import (
	"encoding/hex"

	"golang.org/x/crypto/scrypt"
)

// Hasher derives deterministic password hashes. The users service matches
// credentials with an equality filter on password_hash, so the same
// password must always hash to the same value; a per-deployment pepper
// replaces per-user salts.
type Hasher struct {
	pepper []byte
}

// NewHasher creates a hasher with the given pepper.
func NewHasher(pepper string) *Hasher {
	return &Hasher{pepper: []byte(pepper)}
}

// Hash derives the hex-encoded hash of password.
func (h *Hasher) Hash(password string) (string, error) {
	key, err := scrypt.Key([]byte(password), h.pepper, 1<<15, 8, 1, 32)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(key), nil
}
