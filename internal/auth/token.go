package auth

import (
	"fmt"
	"strconv"
	"time"

	"ecommerce/internal/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// Claims is the payload of an access token.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.StandardClaims
}

// IssueToken signs an HS256 token for user and returns it with its expiry.
func (c Config) IssueToken(user *models.User) (string, time.Time, error) {
	if len(c.SigningKey) < MinKeyBytes {
		return "", time.Time{}, fmt.Errorf("signing key must be at least %d bytes", MinKeyBytes)
	}
	now := jwt.TimeFunc()
	expiresAt := now.Add(c.TokenTTL)
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.New().String(),
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    c.Issuer,
			IssuedAt:  now.Unix(),
			ExpiresAt: expiresAt.Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.SigningKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseToken verifies signature and expiry. Every failure wraps models.ErrTokenInvalid.
func (c Config) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Only HMAC; this also rejects "none".
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.SigningKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, models.ErrTokenInvalid
	}
	if claims.ExpiresAt == 0 {
		return nil, fmt.Errorf("%w: missing exp claim", models.ErrTokenInvalid)
	}
	if c.Issuer != "" && !claims.VerifyIssuer(c.Issuer, true) {
		return nil, fmt.Errorf("%w: unexpected issuer %q", models.ErrTokenInvalid, claims.Issuer)
	}
	return claims, nil
}
