// Package auth mints and verifies the signed session tokens carried in the
// session cookie.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type Claims struct {
	CustomerID string `json:"customerId"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

type Sessions struct {
	secret []byte
	ttl    time.Duration
}

func NewSessions(secret string, ttl time.Duration) (*Sessions, error) {
	if secret == "" {
		return nil, fmt.Errorf("secret is empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("ttl must be positive")
	}

	return &Sessions{secret: []byte(secret), ttl: ttl}, nil
}

func (s *Sessions) Issue(actor domain.Actor) (string, error) {
	if actor.CustomerID == uuid.Nil {
		return "", fmt.Errorf("actor has no customer id")
	}

	now := time.Now()
	claims := Claims{
		CustomerID: actor.CustomerID.String(),
		Role:       string(actor.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("token.SignedString: %w", err)
	}

	return token, nil
}

func (s *Sessions) Verify(token string) (domain.Actor, error) {
	var claims Claims

	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return domain.Actor{}, fmt.Errorf("jwt.ParseWithClaims: %w", err)
	}
	if !parsed.Valid {
		return domain.Actor{}, fmt.Errorf("token is not valid")
	}

	customerID, err := uuid.Parse(claims.CustomerID)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("uuid.Parse: %w", err)
	}

	return domain.Actor{CustomerID: customerID, Role: domain.Role(claims.Role)}, nil
}
