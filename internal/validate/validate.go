// Package validate holds the checks every lifecycle request passes before it
// touches storage or the backend.
package validate

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"net/netip"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidInput is the only error callers outside this package see for a
// rejected token or host; the detail is kept for logs.
var ErrInvalidInput = errors.New("invalid input")

const maxTokenLen = 8192

// Credentials is implemented by every request that carries the common fields.
type Credentials interface {
	GetAccessToken() string
	GetHostIp() string
}

// Claims are the access token claims the service relies on.
type Claims struct {
	UserID      string   `json:"userId"`
	UserName    string   `json:"userName,omitempty"`
	Authorities []string `json:"authorities,omitempty"`
	jwt.RegisteredClaims
}

// Validator checks access tokens. With a public key the RS256 signature is
// verified; without one only the token format and expiry are checked.
type Validator struct {
	key *rsa.PublicKey
	now func() time.Time
}

// NewValidator parses an optional PEM encoded RSA public key.
func NewValidator(publicKeyPEM []byte) (*Validator, error) {
	v := &Validator{now: time.Now}
	if len(publicKeyPEM) == 0 {
		return v, nil
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("parse token public key: %w", err)
	}
	v.key = key
	return v, nil
}

// Verifies reports whether signatures are checked.
func (v *Validator) Verifies() bool {
	return v.key != nil
}

// AccessToken validates a bearer token and returns its claims.
func (v *Validator) AccessToken(token string) (*Claims, error) {
	if token == "" || len(token) > maxTokenLen {
		return nil, errors.New("token missing or oversized")
	}
	claims := &Claims{}
	if v.key != nil {
		_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
			return v.key, nil
		},
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(v.now),
		)
		if err != nil {
			return nil, err
		}
	} else {
		tok, parts, err := jwt.NewParser().ParseUnverified(token, claims)
		if err != nil {
			return nil, err
		}
		if len(parts) != 3 || parts[2] == "" || tok.Method == nil || tok.Method.Alg() == "none" {
			return nil, errors.New("token is not signed")
		}
		exp, err := claims.GetExpirationTime()
		if err != nil || exp == nil {
			return nil, errors.New("token has no expiry")
		}
		if !v.now().Before(exp.Time) {
			return nil, jwt.ErrTokenExpired
		}
	}
	if claims.UserID == "" {
		return nil, errors.New("token has no userId claim")
	}
	return claims, nil
}

// HostAddress checks that host is a literal IPv4 or IPv6 address without a zone.
func HostAddress(host string) error {
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return err
	}
	if addr.Zone() != "" {
		return errors.New("zoned addresses are not accepted")
	}
	if addr.IsUnspecified() {
		return errors.New("unspecified address")
	}
	return nil
}

// Request validates the common fields and returns the host. Any failure is
// reported as ErrInvalidInput wrapping the detail.
func (v *Validator) Request(c Credentials) (string, error) {
	if _, err := v.AccessToken(c.GetAccessToken()); err != nil {
		return "", fmt.Errorf("%w: access token: %v", ErrInvalidInput, err)
	}
	host := c.GetHostIp()
	if err := HostAddress(host); err != nil {
		return "", fmt.Errorf("%w: host: %v", ErrInvalidInput, err)
	}
	return host, nil
}
