// Package auth signs and verifies the short-lived tokens the web layer hands
// to browsers: CSRF form tokens and one-shot flash notices. Both are HS256
// JWTs keyed by the server secret.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/userbook/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// CSRFClaims binds a form token to the per-browser nonce cookie.
type CSRFClaims struct {
	jwt.RegisteredClaims
	Nonce string
}

// Flash kinds, used as CSS classes by the templates.
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
)

// Flash is a one-shot status message shown after a redirect.
type Flash struct {
	Kind    string
	Message string
}

// FlashClaims carries a Flash through a cookie.
type FlashClaims struct {
	jwt.RegisteredClaims
	Kind    string
	Message string
}

func GenerateCSRFToken(nonce string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, CSRFClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Nonce: nonce,
	})

	return token.SignedString(secretKey)
}

// VerifyCSRFToken checks the signature and expiry of tokenString and that it
// was issued for nonce.
func VerifyCSRFToken(tokenString, nonce string, secretKey []byte) error {
	claims := &CSRFClaims{}
	if err := parse(tokenString, claims, secretKey); err != nil {
		return err
	}
	if nonce == "" || claims.Nonce != nonce {
		return common.ErrInvalidToken
	}
	return nil
}

func GenerateFlashToken(f Flash, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, FlashClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Kind:    f.Kind,
		Message: f.Message,
	})

	return token.SignedString(secretKey)
}

func ParseFlashToken(tokenString string, secretKey []byte) (*Flash, error) {
	claims := &FlashClaims{}
	if err := parse(tokenString, claims, secretKey); err != nil {
		return nil, err
	}
	return &Flash{Kind: claims.Kind, Message: claims.Message}, nil
}

func parse(tokenString string, claims jwt.Claims, secretKey []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return common.ErrTokenExpired
		}
		return common.ErrInvalidToken
	}

	if !token.Valid {
		return common.ErrInvalidToken
	}
	return nil
}
