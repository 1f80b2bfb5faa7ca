package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidSignature indicates the token is malformed or its signature
	// does not verify against the configured secret.
	ErrInvalidSignature = errors.New("invalid token signature")
	// ErrTokenExpired indicates the token verified but its expiry has passed.
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the verified content of a token. Nothing in here is trusted
// until the signature has been checked.
type Claims struct {
	Username  string
	ExpiresAt time.Time
}

// TokenService issues and validates HS256-signed JWTs carrying a username
// and expiry. It holds no mutable state and is safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService decodes the base64-encoded signing secret and returns a
// service issuing tokens valid for ttl.
func NewTokenService(base64Secret string, ttl time.Duration) (*TokenService, error) {
	secret, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return nil, fmt.Errorf("decode jwt secret: %w", err)
	}
	if len(secret) == 0 {
		return nil, errors.New("jwt secret is empty")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &TokenService{secret: secret, ttl: ttl}, nil
}

// Issue creates a signed token with subject username, issued now and
// expiring after the configured TTL.
func (s *TokenService) Issue(username string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate verifies the signature and expiry of tokenString and returns its
// claims. The signature is checked before any claim is read; unverified
// claims are never returned.
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if !token.Valid {
		return nil, ErrInvalidSignature
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidSignature)
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return &Claims{Username: claims.Subject, ExpiresAt: expiresAt}, nil
}

// IsValid reports whether tokenString verifies, is unexpired and was issued
// for expectedUsername. The signing secret is shared across all users, so
// this subject check is what binds a token to a single identity.
func (s *TokenService) IsValid(tokenString, expectedUsername string) bool {
	claims, err := s.Validate(tokenString)
	if err != nil {
		return false
	}
	return claims.Username == expectedUsername
}
