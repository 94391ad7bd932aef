package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// ErrNoSecret is returned when a Signer is constructed without a secret.
// Signing must fail closed rather than run with an empty key.
var ErrNoSecret = errors.New("booking token secret is not configured")

// Signer issues and checks the HMAC tokens carried by accept/deny links.
// The signature covers the booking id and its creation time, so a token is
// only ever valid for one specific record.
type Signer struct {
	secret []byte
}

func NewSigner(secret string) (*Signer, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	return &Signer{secret: []byte(secret)}, nil
}

// Sign returns the hex HMAC-SHA256 of "id|createdAt".
func (s *Signer) Sign(id, createdAt string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(id + "|" + createdAt))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify recomputes the expected token and compares in constant time.
func (s *Signer) Verify(id, createdAt, candidate string) bool {
	expected := s.Sign(id, createdAt)
	return hmac.Equal([]byte(expected), []byte(candidate))
}
