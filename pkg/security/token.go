package security

import (
	"bitwise74/review-api/internal/model"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid = errors.New("authorization token invalid")
	ErrTokenExpired = errors.New("authorization token expired")
)

// TokenIssuer mints and verifies stateless HS256 access tokens
type TokenIssuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	key, err := DeriveKey(secret, "access-token")
	if err != nil {
		return nil, err
	}

	return &TokenIssuer{
		key: key,
		ttl: ttl,
		now: time.Now,
	}, nil
}

func (t *TokenIssuer) Issue(u *model.User) (string, error) {
	now := t.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": strconv.FormatUint(uint64(u.ID), 10),
		"type":    "access",
		"iat":     now.Unix(),
		"exp":     now.Add(t.ttl).Unix(),
	})

	s, err := token.SignedString(t.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token, %w", err)
	}

	return s, nil
}

// Parse verifies tokenStr and returns the ID of the user it was issued for
func (t *TokenIssuer) Parse(tokenStr string) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(*jwt.Token) (any, error) {
		return t.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["type"] != "access" {
		return 0, ErrTokenInvalid
	}

	rawID, ok := claims["user_id"].(string)
	if !ok {
		return 0, ErrTokenInvalid
	}

	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrTokenInvalid
	}

	return uint(id), nil
}
