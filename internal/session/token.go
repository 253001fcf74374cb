package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"stockguard/internal/common"
)

// recordClaims is the durable session record: standard claims plus the
// identity fields. The identity id travels in the Subject claim.
type recordClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
	Plan  string `json:"plan"`
}

// EncodeRecord signs the identity into the serialized session record
// (HS256). The same string is what gets persisted and what the HTTP layer
// hands to the browser.
func EncodeRecord(identity *Identity, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, recordClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Email: identity.Email,
		Name:  identity.Name,
		Plan:  identity.Plan,
	})

	return token.SignedString(secretKey)
}

// DecodeRecord verifies the serialized record and reconstructs the Identity.
// Tampered, garbled or expired records come back as common.ErrInvalidToken;
// callers treat that the same as "no session".
func DecodeRecord(record string, secretKey []byte) (*Identity, error) {
	claims := &recordClaims{}

	token, err := jwt.ParseWithClaims(record, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	return &Identity{
		ID:    claims.Subject,
		Email: claims.Email,
		Name:  claims.Name,
		Plan:  claims.Plan,
	}, nil
}
