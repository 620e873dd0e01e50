package testutil

import (
	"crypto/rand"
	"fmt"
	"math/big"

	sdkmath "cosmossdk.io/math"
	"github.com/brianvoe/gofakeit/v7"
)

// RandomAlphaNum generates random alphanumeric string
// in case length <= 0 it returns an error
func RandomAlphaNum(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	if length <= 0 {
		return "", fmt.Errorf("length must be greater than 0")
	}

	randomString := make([]byte, length)
	for i := range randomString {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		randomString[i] = charset[num.Int64()]
	}

	return string(randomString), nil
}

// RandomParticipant returns a participant identity unlikely to collide with
// any other generated in the same test run.
func RandomParticipant() string {
	return "participant-" + gofakeit.UUID()
}

// RandomAmount returns a non zero amount in [1, upper].
func RandomAmount(upper uint64) sdkmath.Uint {
	return sdkmath.NewUint(gofakeit.Uint64()%upper + 1)
}
