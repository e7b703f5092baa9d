package crypto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jlbarros/tasko/core"
)

// DefaultTokenTTL is the lifetime of issued access tokens unless the
// codec is configured otherwise.
const DefaultTokenTTL = 30 * time.Minute

// accessClaims is the wire shape of the token payload. The subject is
// the user ID; email and name ride along so the client can render a
// profile without another round trip.
type accessClaims struct {
	Email string `json:"user_email"`
	Name  string `json:"user_name,omitempty"`
	jwt.RegisteredClaims
}

// Ensure JWTCodec implements core.TokenCodec
var _ core.TokenCodec = (*JWTCodec)(nil)

// JWTCodec issues and verifies HS256-signed access tokens with a
// single shared secret. The secret is passed at construction, never
// read from ambient configuration.
type JWTCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTCodec(secret string, ttl time.Duration) *JWTCodec {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTCodec{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (c *JWTCodec) TTL() time.Duration {
	return c.ttl
}

func (c *JWTCodec) Issue(user *core.User, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(c.ttl)

	claims := accessClaims{
		Email: user.Email,
		Name:  user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// Verify parses and validates a token string. Every failure mode
// (forged signature, malformed structure, missing claims, expiry in
// the past) collapses to core.ErrInvalidToken so callers cannot
// distinguish them.
func (c *JWTCodec) Verify(tokenStr string, now time.Time) (*core.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &accessClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, core.ErrInvalidToken
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))
	if err != nil || !parsed.Valid {
		return nil, core.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*accessClaims)
	if !ok || claims.Subject == "" || claims.Email == "" || claims.ExpiresAt == nil {
		return nil, core.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, core.ErrInvalidToken
	}

	return &core.TokenClaims{
		UserID:    userID,
		Email:     claims.Email,
		Name:      claims.Name,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
