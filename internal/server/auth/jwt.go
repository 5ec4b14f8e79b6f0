// Package auth issues and verifies the HS256 session tokens handed out at
// login.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fadhilmh/fadhil-app-api/internal/common"
)

// Claims is the default (minimal) claim set: registered claims plus the
// username.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// GenerateToken signs a minimal claim set (sub = userID, username, iat, exp)
// with HS256.
func GenerateToken(userID, username string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Username: username,
	})

	return token.SignedString(secretKey)
}

// GenerateLegacyToken signs the entire user document as the claim set, the
// way the first deployment of this API did. Kept behind a configuration
// flag so tokens issued by older deployments keep the same payload shape.
func GenerateLegacyToken(doc map[string]any, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	claims := make(jwt.MapClaims, len(doc)+2)
	for k, v := range doc {
		claims[k] = v
	}
	claims["iat"] = jwt.NewNumericDate(now)
	claims["exp"] = jwt.NewNumericDate(now.Add(validityDuration))

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey)
}

// GetUserIDFromToken verifies a token and returns the user id it was issued
// for. Both claim shapes are accepted: "sub" from minimal tokens, "_id"
// from legacy full-document tokens.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := jwt.MapClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}
	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	if sub, ok := claims["sub"].(string); ok && sub != "" {
		return sub, nil
	}
	if id, ok := claims["_id"].(string); ok && id != "" {
		return id, nil
	}
	return "", common.ErrInvalidToken
}
