// Package jwtoken issues and decodes the signed identity tokens that every
// authenticated response carries. Tokens are stateless: nothing is persisted,
// verification needs only the signing secret.
package jwtoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const TTL = 10 * time.Minute

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

type Claims struct {
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type Manager struct {
	secret []byte
}

func New(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// Issue signs a token for userID with iat = now and exp = now + TTL.
func (m *Manager) Issue(userID string) (string, error) {
	return m.issueAt(userID, time.Now())
}

// Refresh signs a replacement token whose issued-at strictly exceeds the
// presented token's issued-at, even when both fall inside the same second
// (JWT numeric dates have second precision).
func (m *Manager) Refresh(userID string, after time.Time) (string, error) {
	now := time.Now()
	if !now.After(after.Add(time.Second)) {
		now = after.Add(time.Second)
	}
	return m.issueAt(userID, now)
}

func (m *Manager) issueAt(userID string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Decode verifies the signature and expiry and returns the token's claims.
// Callers get ErrExpiredToken for a well-formed but stale token and
// ErrInvalidToken for everything else.
func (m *Manager) Decode(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(
		tokenStr,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid || claims.Subject == "" || claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}

	return &Claims{
		UserID:    claims.Subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
