package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bodeguero = Principal{UserID: "u-1", CompanyID: "c-1", Role: "bodeguero"}

func TestSignAndVerify(t *testing.T) {
	token, err := Sign("secreto", bodeguero, "atp-api", 5*time.Minute)
	require.NoError(t, err)

	got, err := Verify("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, bodeguero, got)
}

func TestVerify_Rechazos(t *testing.T) {
	valid, err := Sign("secreto", bodeguero, "atp-api", 5*time.Minute)
	require.NoError(t, err)
	expired, err := Sign("secreto", bodeguero, "atp-api", -time.Minute)
	require.NoError(t, err)
	noCompany, err := Sign("secreto", Principal{UserID: "u-1"}, "atp-api", time.Minute)
	require.NoError(t, err)
	hs512, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, gojwt.MapClaims{
		"sub": "u-1", "company_id": "c-1", "exp": time.Now().Add(time.Minute).Unix(),
	}).SignedString([]byte("secreto"))
	require.NoError(t, err)

	cases := map[string]struct{ secret, token string }{
		"firma incorrecta":   {"otro", valid},
		"expirado":           {"secreto", expired},
		"sin empresa":        {"secreto", noCompany},
		"algoritmo distinto": {"secreto", hs512},
		"malformado":         {"secreto", "a.b.c"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Verify(tc.secret, tc.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestSecretVacio(t *testing.T) {
	_, err := Sign("", bodeguero, "atp-api", time.Minute)
	assert.ErrorIs(t, err, ErrEmptySecret)
	_, err = Verify("", "x")
	assert.ErrorIs(t, err, ErrEmptySecret)
}
