// Package auth issues and verifies the bearer tokens that identify the
// requesting user.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTTL = 24 * time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims carries the user identity. Subject is the owner id stamped on records.
type Claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the token subject.
func (c *Claims) UserID() string {
	return c.Subject
}

type JWT struct {
	secret []byte
	now    func() time.Time
}

func NewJWT(secret string) *JWT {
	return &JWT{secret: []byte(secret), now: time.Now}
}

// Generate signs an HS256 token for userID valid for ttl. A non-positive ttl
// falls back to DefaultTTL.
func (j *JWT) Generate(userID, name string, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("generate token: empty user id")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	now := j.now()
	claims := Claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func (j *JWT) Validate(token string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return j.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return &claims, nil
}
