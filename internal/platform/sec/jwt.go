// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec holds the credential primitives: RS256 access tokens, bcrypt
// password hashes, opaque refresh tokens and account role labels.
package sec

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tellnab/tellnab/pkg/uuid"
)

// clockSkew tolerates small clock drift between API replicas.
const clockSkew = 30 * time.Second

// ErrKeyMismatch is returned when the configured public key does not belong
// to the private key, which would make every issued token unverifiable.
var ErrKeyMismatch = errors.New("sec: public key does not match private key")

// AuthClaims is the access token payload. It carries enough identity for
// HTTP handlers and the realtime handshake to build an actor without a
// database round trip.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID      string `json:"uid"`
	Username    string `json:"unm"`
	DisplayName string `json:"dnm,omitempty"`
	Role        string `json:"rol"`
}

// Name is the label shown to other participants: display name, else username.
func (claims *AuthClaims) Name() string {
	if claims.DisplayName != "" {
		return claims.DisplayName
	}
	return claims.Username
}

// TokenService signs and verifies RS256 access tokens for one issuer.
type TokenService struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
	parser     *jwt.Parser
}

// NewTokenService loads the PEM key pair from disk.
func NewTokenService(privateKeyPath, publicKeyPath, issuer string) (*TokenService, error) {
	privateKeyData, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sec: read private key %s: %w", privateKeyPath, err)
	}
	publicKeyData, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sec: read public key %s: %w", publicKeyPath, err)
	}
	return NewTokenServiceFromPEM(privateKeyData, publicKeyData, issuer)
}

// NewTokenServiceFromPEM builds a TokenService from in-memory PEM blocks.
func NewTokenServiceFromPEM(privateKeyData, publicKeyData []byte, issuer string) (*TokenService, error) {
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyData)
	if err != nil {
		return nil, fmt.Errorf("sec: parse private key: %w", err)
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyData)
	if err != nil {
		return nil, fmt.Errorf("sec: parse public key: %w", err)
	}
	if !privateKey.PublicKey.Equal(publicKey) {
		return nil, ErrKeyMismatch
	}

	return &TokenService{
		privateKey: privateKey,
		publicKey:  publicKey,
		issuer:     issuer,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
			jwt.WithLeeway(clockSkew),
		),
	}, nil
}

// GenerateAccessToken signs a token for the account, valid for timeToLive.
func (service *TokenService) GenerateAccessToken(userID, username, displayName, role string, timeToLive time.Duration) (string, error) {
	issuedAt := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New(),
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(timeToLive)),
		},
		UserID:      userID,
		Username:    username,
		DisplayName: displayName,
		Role:        role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(service.privateKey)
	if err != nil {
		return "", fmt.Errorf("sec: sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates signature, issuer and expiry, then returns the claims.
// Tokens whose subject and uid disagree are rejected.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	_, err := service.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return service.publicKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}
	if claims.UserID == "" || claims.Subject != claims.UserID {
		return nil, errors.New("sec: token subject mismatch")
	}
	return claims, nil
}
