package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
)

// claims is the signed payload of a login token. ExpiresAt is kept as unix
// milliseconds so the serialized form is deterministic.
type claims struct {
	Email     string `json:"email"`
	ExpiresAt int64  `json:"expires_at"`
}

// EncodeToken serializes the claims, signs the encoded payload segment and
// returns the transportable "payload.signature" string. Both segments are
// raw base64url, so the token can ride in a query parameter unescaped.
func EncodeToken(signer *Signer, email string, expiresAt time.Time) (string, error) {
	c := claims{Email: email, ExpiresAt: expiresAt.UnixMilli()}
	raw, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(raw)
	signature := signer.Sign([]byte(payload))
	return payload + "." + signature, nil
}

// splitToken breaks a token into its payload and signature segments.
// Anything other than exactly two non-empty parts is malformed.
func splitToken(token string) (payload, signature string, err error) {
	parts := strings.Split(token, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", ErrMalformedToken
	}
	return parts[0], parts[1], nil
}

func decodeClaims(payload string) (claims, error) {
	var c claims
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return c, ErrMalformedToken
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return c, ErrMalformedToken
	}
	return c, nil
}
