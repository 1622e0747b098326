package utils

import (
	"fmt"
	"time"

	"agenda-api/core/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims is the JWT payload carried by every authenticated request.
type TokenClaims struct {
	PrincipalID uuid.UUID `json:"principal_id"`
	Kind        string    `json:"kind"` // "client" or "owner"
	jwt.RegisteredClaims
}

// GenerateToken issues a signed bearer token for the principal.
func GenerateToken(principalID uuid.UUID, kind string) (string, time.Time, error) {
	cfg := config.Get()
	expiresAt := time.Now().Add(time.Duration(cfg.JWT.ExpiryHours) * time.Hour)

	claims := &TokenClaims{
		PrincipalID: principalID,
		Kind:        kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.JWT.Issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Subject:   principalID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWT.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateAndParseToken verifies the signature and expiry and returns the
// embedded claims.
func ValidateAndParseToken(tokenString string) (*TokenClaims, error) {
	cfg := config.Get()

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
