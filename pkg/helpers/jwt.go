package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single error surfaced for any session token
// verification failure. Callers never learn which part of validation
// failed.
var ErrInvalidToken = errors.New("invalid token")

// JWTManager issues and verifies signed session tokens. Tokens are
// time-boxed with no refresh mechanism; expiry forces re-authentication.
type JWTManager struct {
	Secret []byte
	TTL    time.Duration
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{Secret: []byte(secret), TTL: ttl}
}

type Claims struct {
	AccountID string `json:"uid"`
	jwt.RegisteredClaims
}

// GenerateToken signs a session token encoding the account identity.
func (m *JWTManager) GenerateToken(accountID string) (string, time.Time, error) {
	exp := time.Now().Add(m.TTL)
	claims := &Claims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

// ParseToken validates signature and expiry and returns the claims.
func (m *JWTManager) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.Secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	if claims.AccountID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
