// Package token issues and verifies the signed identity tokens carried by
// every authenticated request.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/schoolshots/photo-intake/internal/core/domain"
)

const DefaultTTL = 24 * time.Hour

// ErrInvalidToken covers every verification failure: bad signature, wrong
// algorithm, malformed payload or expiry.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the JWT payload.
type Claims struct {
	UserID     int64  `json:"uid"`
	UserCode   string `json:"code"`
	Role       string `json:"role"`
	SchoolCode string `json:"school,omitempty"`
	Email      string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Codec signs and verifies HS256 tokens with a shared secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token for p and the moment it stops being valid.
func (c *Codec) Issue(p domain.Principal) (string, time.Time, error) {
	now := c.now()
	exp := now.Add(c.ttl)

	claims := Claims{
		UserID:     p.UserID,
		UserCode:   p.UserCode,
		Role:       p.Role,
		SchoolCode: p.SchoolCode,
		Email:      p.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(p.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Verify parses raw and returns the principal it carries.
func (c *Codec) Verify(raw string) (*domain.Principal, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	if !domain.ValidRole(claims.Role) {
		return nil, ErrInvalidToken
	}

	return &domain.Principal{
		UserID:     claims.UserID,
		UserCode:   claims.UserCode,
		SchoolCode: claims.SchoolCode,
		Role:       claims.Role,
		Email:      claims.Email,
	}, nil
}
