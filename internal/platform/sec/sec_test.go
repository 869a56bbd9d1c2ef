// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tellnab/tellnab/internal/platform/sec"
)

func newTestTokenService(t *testing.T, issuer string) *sec.TokenService {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privatePEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER})

	service, err := sec.NewTokenServiceFromPEM(privatePEM, publicPEM, issuer)
	require.NoError(t, err)
	return service
}

/*
TestTokenService_RoundTrip verifies that generated tokens verify and keep their claims.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTestTokenService(t, "tellnab.com")

	token, err := service.GenerateAccessToken("user-1", "ada", "Ada L.", "support", time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ada", claims.Username)
	assert.Equal(t, "Ada L.", claims.Name())
	assert.Equal(t, "support", claims.Role)
}

/*
TestTokenService_Rejects covers expired tokens, foreign issuers and garbage input.
*/
func TestTokenService_Rejects(t *testing.T) {
	service := newTestTokenService(t, "tellnab.com")

	expired, err := service.GenerateAccessToken("user-1", "ada", "", "member", -2*time.Minute)
	require.NoError(t, err)
	_, err = service.VerifyToken(expired)
	assert.Error(t, err)

	_, err = service.VerifyToken("not-a-jwt")
	assert.Error(t, err)

	other := newTestTokenService(t, "tellnab.com")
	foreign, err := other.GenerateAccessToken("user-1", "ada", "", "member", time.Minute)
	require.NoError(t, err)
	_, err = service.VerifyToken(foreign)
	assert.Error(t, err, "token signed by a different key must fail")
}

func TestTokenService_KeyMismatch(t *testing.T) {
	first, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	second, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privatePEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(first)})
	publicDER, err := x509.MarshalPKIXPublicKey(&second.PublicKey)
	require.NoError(t, err)
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER})

	_, err = sec.NewTokenServiceFromPEM(privatePEM, publicPEM, "tellnab.com")
	assert.ErrorIs(t, err, sec.ErrKeyMismatch)
}

/*
TestSecureToken checks entropy-backed tokens and their hashes.
*/
func TestSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Len(t, sec.HashToken(first), 64)
	assert.Equal(t, sec.HashToken(first), sec.HashToken(first))
}

func TestParseUserRole(t *testing.T) {
	assert.Equal(t, sec.RoleAdmin, sec.ParseUserRole(" SuperAdmin "))
	assert.Equal(t, sec.RoleSupport, sec.ParseUserRole("Agent"))
	assert.Equal(t, sec.RoleModerator, sec.ParseUserRole("moderator"))
	assert.True(t, sec.ParseUserRole("MEMBER").Valid())
	assert.False(t, sec.ParseUserRole("guest").Valid())
}

/*
TestPasswordHash verifies bcrypt hashing round trips.
*/
func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, sec.CheckPasswordHash("wrong", hash))
}

func TestPasswordHash_Limits(t *testing.T) {
	_, err := sec.HashPassword(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, sec.ErrPasswordTooLong)

	assert.False(t, sec.BurnPasswordCheck("anything"))
}
