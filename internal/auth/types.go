package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// ErrMissingCredentials is returned when a username or password is empty.
var ErrMissingCredentials = errors.New("username and password are required")

// Credentials represents the merchant username/password used to log in to Al-Waseet.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks both fields are present.
func (c Credentials) Validate() error {
	if c.Username == "" || c.Password == "" {
		return ErrMissingCredentials
	}
	return nil
}

// Key derives a stable, non-reversible cache key for the credential pair.
// Two credentials share a key only if both username and password match.
func (c Credentials) Key() string {
	h := sha256.New()
	h.Write([]byte(c.Username))
	h.Write([]byte{0})
	h.Write([]byte(c.Password))
	return hex.EncodeToString(h.Sum(nil))
}
