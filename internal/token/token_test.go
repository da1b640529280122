package token

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims Claims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func TestDecodeProvisionedToken(t *testing.T) {
	raw := signedToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user_1"},
		Role:             "owner",
		AccountRef:       "acc_1",
	})

	claims, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "user_1", claims.Subject)
	assert.Equal(t, "owner", claims.Role)
	assert.Equal(t, "acc_1", claims.AccountRef)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode("not.a.token")
	assert.Error(t, err)
}

func TestAuthenticationFromFreshSignup(t *testing.T) {
	raw := signedToken(t, Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user_1"}})

	auth, err := AuthenticationFrom(raw)
	require.NoError(t, err)
	assert.Equal(t, "user_1", auth.UserID)
	assert.Equal(t, raw, auth.Token)
	assert.False(t, auth.Provisioned())
}

func TestAuthenticationFromProvisionedAccount(t *testing.T) {
	raw := signedToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user_1"},
		Role:             "cashier",
		AccountRef:       "acc_9",
	})

	auth, err := AuthenticationFrom(raw)
	require.NoError(t, err)
	assert.True(t, auth.Provisioned())
	assert.Equal(t, "cashier", auth.Role)
	assert.Equal(t, "acc_9", auth.AccountRef)
}
