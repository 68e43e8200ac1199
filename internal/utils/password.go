package utils

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// DefaultPasswordCost is the bcrypt cost used when none is configured.
const DefaultPasswordCost = 10

// HashPassword hashes a plaintext password using bcrypt with the given cost.
// Costs outside bcrypt's accepted range fall back to DefaultPasswordCost.
// Any length is accepted: bcrypt only ever sees the 44 byte digest.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultPasswordCost
	}
	hash, err := bcrypt.GenerateFromPassword(passwordDigest(password), cost)
	return string(hash), err
}

// CheckPasswordHash compares a plaintext password with a hash from HashPassword.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), passwordDigest(password)) == nil
}

// passwordDigest keeps bcrypt input under its 72 byte limit without
// truncating. Base64 keeps NUL bytes out of the input.
func passwordDigest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	digest := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(digest, sum[:])
	return digest
}
