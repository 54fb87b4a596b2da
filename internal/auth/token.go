package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spacecal/spacecal/internal/config"
	"github.com/spacecal/spacecal/internal/utils"
	"github.com/spacecal/spacecal/pkg/user"
)

// TokenService issues and validates the app's own session tokens. The
// identity provider is only consulted during the OAuth callback; after
// that the bearer token is the session.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	clock  utils.Clock
}

func NewTokenService(cfg config.Auth, clock utils.Clock) *TokenService {
	return &TokenService{
		secret: []byte(cfg.TokenSecret),
		ttl:    time.Duration(cfg.TokenTTL) * time.Hour,
		clock:  clock,
	}
}

func (t *TokenService) Issue(u user.User) (string, error) {
	now := t.clock.Now()
	claims := jwt.MapClaims{
		"sub":  u.Uid,
		"name": u.DisplayName,
		"iat":  now.Unix(),
		"exp":  now.Add(t.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate checks signature and expiry and returns the subject uid.
func (t *TokenService) Validate(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.clock.Now))
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token claims")
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return sub, nil
}
