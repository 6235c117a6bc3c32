package validate

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type request struct{ token, host string }

func (r request) GetAccessToken() string { return r.token }
func (r request) GetHostIp() string      { return r.host }

func signed(t *testing.T, method jwt.SigningMethod, key any, claims Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func validClaims(exp time.Duration) Claims {
	return Claims{
		UserID:      "7269638e-5637-4b8c-8178-b5112ba7b69b",
		Authorities: []string{"ROLE_MECM_TENANT"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(exp)),
		},
	}
}

func TestAccessTokenWithoutKey(t *testing.T) {
	v, err := NewValidator(nil)
	require.NoError(t, err)
	assert.False(t, v.Verifies())

	hmacKey := []byte("test-secret")
	good := signed(t, jwt.SigningMethodHS256, hmacKey, validClaims(time.Hour))
	claims, err := v.AccessToken(good)
	require.NoError(t, err)
	assert.Equal(t, "7269638e-5637-4b8c-8178-b5112ba7b69b", claims.UserID)

	tests := map[string]string{
		"empty":       "",
		"header only": "eyJhbGciOiJSUzI1NiIsInR5cCI6IkpXVCJ9",
		"unsigned":    "eyJhbGciOiJIUzI1NiJ9.eyJ1c2VySWQiOiJ4IiwiZXhwIjo0MTAyNDQ0ODAwfQ.",
		"expired":     signed(t, jwt.SigningMethodHS256, hmacKey, validClaims(-time.Minute)),
		"no user": signed(t, jwt.SigningMethodHS256, hmacKey, Claims{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		}),
		"no expiry": signed(t, jwt.SigningMethodHS256, hmacKey, Claims{UserID: "u"}),
	}
	for name, token := range tests {
		_, err := v.AccessToken(token)
		assert.Error(t, err, name)
	}
}

func TestAccessTokenWithKey(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	v, err := NewValidator(pubPEM)
	require.NoError(t, err)
	assert.True(t, v.Verifies())

	_, err = v.AccessToken(signed(t, jwt.SigningMethodRS256, priv, validClaims(time.Hour)))
	assert.NoError(t, err)

	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	_, err = v.AccessToken(signed(t, jwt.SigningMethodRS256, other, validClaims(time.Hour)))
	assert.Error(t, err, "foreign signature")

	_, err = v.AccessToken(signed(t, jwt.SigningMethodHS256, []byte("k"), validClaims(time.Hour)))
	assert.Error(t, err, "algorithm not allowed")

	_, err = NewValidator([]byte("not pem"))
	assert.Error(t, err)
}

func TestHostAddress(t *testing.T) {
	for _, ok := range []string{"1.2.3.4", "19.3.44.22", "fd00::1"} {
		assert.NoError(t, HostAddress(ok), ok)
	}
	for _, bad := range []string{"", "1.2.3", "256.1.1.1", "01.2.3.4", "host.example", "fe80::1%eth0", "0.0.0.0", "1.2.3.4:80"} {
		assert.Error(t, HostAddress(bad), bad)
	}
}

func TestRequestCollapsesFailures(t *testing.T) {
	v, err := NewValidator(nil)
	require.NoError(t, err)
	token := signed(t, jwt.SigningMethodHS256, []byte("k"), validClaims(time.Hour))

	host, err := v.Request(request{token: token, host: "10.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", host)

	_, errToken := v.Request(request{token: "bad", host: "10.0.0.1"})
	_, errHost := v.Request(request{token: token, host: "bad"})
	assert.ErrorIs(t, errToken, ErrInvalidInput)
	assert.ErrorIs(t, errHost, ErrInvalidInput)
}
