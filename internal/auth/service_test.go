package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sammk21/ecommerce-admin/internal/config"
)

func testConfig(env string) *config.Config {
	return &config.Config{
		AppEnv:        env,
		JWTSecret:     "test-secret",
		AdminEmail:    "admin@example.com",
		AdminPassword: "hunter2",
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc := NewService(testConfig("development"))

	token, err := svc.Login("admin@example.com", "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.NoError(t, svc.Verify(token))

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "admin@example.com", claims["email"])
	assert.Equal(t, "admin", claims["role"])
	assert.NotEmpty(t, claims["jti"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), exp.Time, time.Minute)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewService(testConfig("development"))

	_, err := svc.Login("admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidLogin)

	_, err = svc.Login("intruder@example.com", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidLogin)
}

func TestVerifyRejectsForgedTokens(t *testing.T) {
	svc := NewService(testConfig("development"))

	assert.Error(t, svc.Verify("not-a-token"))

	// Signed with the wrong key.
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin@example.com",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	s, err := forged.SignedString([]byte("other-secret"))
	require.NoError(t, err)
	assert.Error(t, svc.Verify(s))
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := NewService(testConfig("development"))

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin@example.com",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	s, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	assert.Error(t, svc.Verify(s))
}

func TestSessionCookieAttributes(t *testing.T) {
	dev := NewService(testConfig("development")).SessionCookie("tok")
	assert.Equal(t, CookieName, dev.Name)
	assert.Equal(t, "tok", dev.Value)
	assert.Equal(t, "/", dev.Path)
	assert.True(t, dev.HttpOnly)
	assert.False(t, dev.Secure)
	assert.Equal(t, int(30*24*time.Hour/time.Second), dev.MaxAge)

	prod := NewService(testConfig("production")).SessionCookie("tok")
	assert.True(t, prod.Secure)

	cleared := NewService(testConfig("production")).ExpiredCookie()
	assert.Less(t, cleared.MaxAge, 0)
	assert.Empty(t, cleared.Value)
	assert.Equal(t, http.SameSiteLaxMode, cleared.SameSite)
}

func TestCredentialContextRoundTrip(t *testing.T) {
	ctx := WithCredential(context.Background(), Credential("abc"))

	cred, ok := CredentialFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, Credential("abc"), cred)
	assert.Equal(t, "Bearer abc", cred.Header())

	_, ok = CredentialFrom(context.Background())
	assert.False(t, ok)
}
