package helpers

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// OTP helpers

var otpSpace = big.NewInt(1000000)

// GenOTPCode generates a secure random 6-digit OTP code as a zero-padded string
func GenOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, otpSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
