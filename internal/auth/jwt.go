package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims embeds the authenticated user id in the signed token.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// JWTer signs and verifies HS256 tokens. Logout is stateless: an issued token
// stays valid until natural expiry, there is no server-side revocation.
type JWTer struct {
	Secret []byte
	TTL    time.Duration
}

// ErrExpired marks a structurally valid token past its expiry, distinguished
// from malformed/forged tokens for client messaging.
var ErrExpired = errors.New("token expired")

// Issue creates a signed token embedding the user id.
func (j *JWTer) Issue(userID uint64) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: strconv.FormatUint(userID, 10),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

// Parse verifies signature and expiry and returns the embedded user id.
func (j *JWTer) Parse(tokenStr string) (uint64, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg")
		}
		return j.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpired
		}
		return 0, err
	}

	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return 0, errors.New("invalid token")
	}
	uid, err := strconv.ParseUint(claims.UserID, 10, 64)
	if err != nil {
		return 0, errors.New("invalid token")
	}
	return uid, nil
}
