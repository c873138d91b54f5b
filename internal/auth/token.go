package auth

import (
	"errors"

	jwt "github.com/golang-jwt/jwt/v5"
)

// TokenManager verifies bearer tokens issued by the external party service.
// This service never issues tokens itself.
type TokenManager struct {
	secret []byte
}

// NewTokenManager builds a verifier for the shared signing secret.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Claims describes the JWT payload of an authenticated party.
type Claims struct {
	PartyID string `json:"sub"`
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// ParseToken validates the signature and expiry and returns the claims.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.PartyID == "" && claims.Subject != "" {
		claims.PartyID = claims.Subject
	}
	return claims, nil
}
