package services

import (
	"fmt"
	"time"

	storefront_errors "storefront-events/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
)

// AuthService verifies the HS256 bearer tokens the storefront presents when
// calling the notification endpoints. An empty secret disables verification.
type AuthService struct {
	jwtSecret []byte
	clock     func() time.Time
}

type AccessClaims struct {
	jwt.RegisteredClaims
}

func NewAuthService(secret string) *AuthService {
	return &AuthService{jwtSecret: []byte(secret), clock: time.Now}
}

func (s *AuthService) Enabled() bool {
	return s != nil && len(s.jwtSecret) > 0
}

func (s *AuthService) ParseAccessToken(tokenString string) (AccessClaims, error) {
	if tokenString == "" {
		return AccessClaims{}, storefront_errors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, storefront_errors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.clock))
	if err != nil {
		return AccessClaims{}, storefront_errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid {
		return AccessClaims{}, storefront_errors.ErrUnauthorized
	}
	return *claims, nil
}

// IssueToken signs a token for subject. Used by operators and tests to mint
// credentials for a producer.
func (s *AuthService) IssueToken(subject string, ttl time.Duration) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("%w: jwt secret", storefront_errors.ErrNotConfigured)
	}
	now := s.clock()
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
