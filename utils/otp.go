package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateJobOTP returns a 4-digit one-time code used to gate the start of
// work: the customer reads it to the worker in person, binding physical
// presence to the IN_PROGRESS transition.
func GenerateJobOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}
