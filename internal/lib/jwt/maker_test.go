package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	maker := NewJWTMaker(secretKey, 0)

	tests := []struct {
		name   string
		claims map[string]any
	}{
		{
			name:   "email only",
			claims: map[string]any{"email": "a@x.com"},
		},
		{
			name:   "email with profile fields",
			claims: map[string]any{"email": "trainer@vigor.com", "name": "Sam", "photoURL": "https://img/1.png"},
		},
		{
			name:   "client supplied exp is overwritten",
			claims: map[string]any{"email": "user@domain.com", "exp": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken(tt.claims)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.claims["email"], claims.Email)
			exp, err := claims.Fields.GetExpirationTime()
			require.NoError(t, err)
			iat, err := claims.Fields.GetIssuedAt()
			require.NoError(t, err)
			assert.WithinDuration(t, time.Now(), iat.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp.Time, time.Second)
			if name, ok := tt.claims["name"]; ok {
				assert.Equal(t, name, claims.Fields["name"])
			}
		})
	}
}

func TestJWTMaker_GenerateToken_MissingEmail(t *testing.T) {
	maker := NewJWTMaker("secret", time.Hour)

	for _, claims := range []map[string]any{
		{},
		{"email": ""},
		{"email": "   "},
		{"email": 42},
		{"name": "no email"},
	} {
		token, err := maker.GenerateToken(claims)
		assert.ErrorIs(t, err, ErrMissingEmail)
		assert.Empty(t, token)
	}
}

func TestJWTMaker_ParseToken_InvalidTokens(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	maker := NewJWTMaker(secretKey, 15*time.Minute)

	validToken, err := maker.GenerateToken(map[string]any{"email": "a@x.com"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "malformed token", token: "invalid.token.here"},
		{name: "expired token", token: createExpiredToken(t, secretKey)},
		{name: "wrong secret key", token: createTokenWithWrongSecret(t)},
		{name: "tampered token", token: validToken + "tampered"},
		{name: "none algorithm", token: createUnsignedToken(t)},
		{name: "token without email", token: createTokenWithoutEmail(t, secretKey)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTMaker_DifferentSecretKeys(t *testing.T) {
	maker1 := NewJWTMaker("first_secret_key", 15*time.Minute)
	maker2 := NewJWTMaker("different_secret_key", 15*time.Minute)

	token, err := maker1.GenerateToken(map[string]any{"email": "a@x.com"})
	require.NoError(t, err)

	claims, err := maker2.ParseToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)

	claims, err = maker1.ParseToken(token)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
}

func TestJWTMaker_TokenExpiration(t *testing.T) {
	maker := NewJWTMaker("test_secret_key", 24*time.Hour)
	issued := time.Now()
	maker.now = func() time.Time { return issued }

	token, err := maker.GenerateToken(map[string]any{"email": "a@x.com"})
	require.NoError(t, err)

	maker.now = func() time.Time { return issued.Add(23 * time.Hour) }
	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.NotNil(t, claims)

	maker.now = func() time.Time { return issued.Add(25 * time.Hour) }
	_, err = maker.ParseToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func createExpiredToken(t *testing.T, secretKey string) string {
	maker := NewJWTMaker(secretKey, -time.Hour)
	token, err := maker.GenerateToken(map[string]any{"email": "a@x.com"})
	require.NoError(t, err)
	return token
}

func createTokenWithWrongSecret(t *testing.T) string {
	wrongMaker := NewJWTMaker("wrong_secret_key", 15*time.Minute)
	token, err := wrongMaker.GenerateToken(map[string]any{"email": "a@x.com"})
	require.NoError(t, err)
	return token
}

func createUnsignedToken(t *testing.T) string {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"email": "a@x.com",
		"exp":   jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	return signed
}

func createTokenWithoutEmail(t *testing.T, secretKey string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"name": "anonymous",
		"exp":  jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(secretKey))
	require.NoError(t, err)
	return signed
}

func TestJWTMaker_ParseToken_NormalizesEmail(t *testing.T) {
	maker := NewJWTMaker("secret", time.Hour)

	token, err := maker.GenerateToken(map[string]any{"email": " Trainer@Vigor.com "})
	require.NoError(t, err)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "trainer@vigor.com", claims.Email)
	assert.Equal(t, " Trainer@Vigor.com ", claims.Fields["email"])
}
