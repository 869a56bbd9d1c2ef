// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for account passwords.
const PasswordCost = 11

// ErrPasswordTooLong is returned for passwords bcrypt would silently truncate.
var ErrPasswordTooLong = errors.New("sec: password exceeds 72 bytes")

// decoyHash is compared against when a login names an unknown account so
// both paths spend the same bcrypt time.
var decoyHash = sync.OnceValue(func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("tellnab-decoy-password"), PasswordCost)
	return hash
})

// HashPassword hashes an account password with bcrypt.
func HashPassword(plainTextPassword string) (string, error) {
	if len(plainTextPassword) > 72 {
		return "", ErrPasswordTooLong
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash reports whether the password matches the stored hash.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword)) == nil
}

// BurnPasswordCheck runs a comparison against a throwaway hash and always fails.
func BurnPasswordCheck(plainTextPassword string) bool {
	_ = bcrypt.CompareHashAndPassword(decoyHash(), []byte(plainTextPassword))
	return false
}
