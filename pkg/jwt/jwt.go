// Package jwt firma y verifica los tokens de acceso (HS256) con la identidad del usuario.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrEmptySecret  = errors.New("jwt: secret vacío")
	ErrInvalidToken = errors.New("jwt: token inválido")
)

// Principal identidad que viaja en el token. Role permite autorizar sin ir a la base.
type Principal struct {
	UserID    string
	CompanyID string
	Role      string
}

type claims struct {
	jwt.RegisteredClaims
	CompanyID string `json:"company_id"`
	Role      string `json:"role,omitempty"`
}

// Sign emite un token para p válido durante ttl.
func Sign(secret string, p Principal, issuer string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		CompanyID: p.CompanyID,
		Role:      p.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}

// Verify valida firma y expiración y devuelve la identidad. Un token sin usuario o sin
// empresa es inválido; el rol puede venir vacío y lo decide quien autoriza.
func Verify(secret, token string) (Principal, error) {
	if secret == "" {
		return Principal{}, ErrEmptySecret
	}
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.Subject == "" || c.CompanyID == "" {
		return Principal{}, fmt.Errorf("%w: faltan sub o company_id", ErrInvalidToken)
	}
	return Principal{UserID: c.Subject, CompanyID: c.CompanyID, Role: c.Role}, nil
}
