package core

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the payload carried by an access token.
type TokenClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// TokenIssuer signs and verifies stateless access tokens. The same secret is
// used on both sides; validity is fully determined by signature and expiry.
type TokenIssuer struct {
	secret   []byte
	lifetime time.Duration
}

func NewTokenIssuer(secret []byte, lifetime time.Duration) *TokenIssuer {
	if lifetime <= 0 {
		lifetime = time.Hour
	}
	return &TokenIssuer{secret: secret, lifetime: lifetime}
}

// Issue produces an HS256 token for a verified identity, expiring after the
// configured lifetime.
func (i *TokenIssuer) Issue(username string) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.lifetime)),
		},
		Username: username,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Parse verifies signature and expiry and extracts the username. Every
// failure mode collapses into ErrInvalidToken; callers never learn which
// check rejected the token.
func (i *TokenIssuer) Parse(tokenString string) (string, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid || claims.Username == "" {
		return "", ErrInvalidToken
	}
	return claims.Username, nil
}
