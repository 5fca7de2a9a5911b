// Package auth issues and validates the bearer tokens accepted by the HTTP
// transport. This is a leaf package with no domain dependencies.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yaojiwei520/snack-price-api/pkg/uuid"
)

// DefaultTokenExpiry is the token lifetime when the configuration does not
// set one.
const DefaultTokenExpiry = 24 * time.Hour

// Claims are the JWT claims carried by a service token. Client names the
// consumer the token was minted for; the rest are standard claims.
type Claims struct {
	Client string `json:"client"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed HS256 token for client, valid for ttl.
// A zero ttl falls back to DefaultTokenExpiry. Each token carries a unique
// jti so individual tokens can be identified in logs or denylisted.
func GenerateToken(secret []byte, client string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", fmt.Errorf("auth.GenerateToken: empty secret")
	}
	if ttl == 0 {
		ttl = DefaultTokenExpiry
	}

	now := time.Now()
	claims := &Claims{
		Client: client,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("auth.GenerateToken: sign: %w", err)
	}

	return signed, nil
}

// ParseToken validates tokenString against secret and returns its claims.
func ParseToken(secret []byte, tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("auth.ParseToken: token is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Reject anything but HMAC to prevent algorithm substitution.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("auth.ParseToken: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("auth.ParseToken: invalid claims or signature")
	}

	return claims, nil
}
