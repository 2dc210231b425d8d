package utils

import (
	"crypto/rand"
	"math/big"
)

const deleteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateDeleteCode generates a random uppercase alphanumeric delete code.
// Codes guard service deletion, so they come from crypto/rand rather than a
// seeded PRNG.
func GenerateDeleteCode(length int) (string, error) {
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(deleteCodeAlphabet))))
		if err != nil {
			return "", err
		}
		code[i] = deleteCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}
