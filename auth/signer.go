package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

type Signer struct {
	secret []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

func (s *Signer) Sign(data []byte) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(data)
	sum := mac.Sum(nil)
	return base64.RawURLEncoding.EncodeToString(sum)
}

func (s *Signer) Verify(data []byte, signature string) bool {
	expected := s.Sign(data)
	return hmac.Equal([]byte(expected), []byte(signature))
}
