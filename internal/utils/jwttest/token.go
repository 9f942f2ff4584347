// Package jwttest signs bearer tokens for tests. Tokens are issued by the
// identity provider in production.
package jwttest

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/huangang/boardmaster/internal/utils"
)

// Token signs an HS256 token for userID with secret that expires after ttl.
func Token(t testing.TB, secret, userID, email string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := utils.Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "boardmaster",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}
