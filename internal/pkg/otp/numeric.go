package otp

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// CodeGenerator defines an interface for generating delivered one-time
// codes (email/SMS), as opposed to TOTP codes derived from a secret.
type CodeGenerator interface {
	// Generate returns a code of n digits or an error if the random
	// source fails.
	Generate(n int) (string, error)
}

// digits is the character set used for delivered codes.
//
// Zero is excluded so codes never start with a dropped digit when users
// read them back, and every position stays uniform over nine symbols.
const digits = "123456789"

// DefaultCodeDigits is used when Generate receives a non-positive length.
const DefaultCodeDigits = 6

// NumericCode generates cryptographically secure numeric codes.
type NumericCode struct{}

// NewNumericCode returns a new NumericCode generator.
func NewNumericCode() *NumericCode {
	return &NumericCode{}
}

// Generate produces an n-digit code, each digit selected uniformly at
// random from 1-9 using crypto/rand.
func (nc *NumericCode) Generate(n int) (string, error) {
	if n <= 0 {
		n = DefaultCodeDigits
	}

	var sb strings.Builder
	sb.Grow(n)

	for i := 0; i < n; i++ {
		idx, err := nc.randIntStrict(len(digits))
		if err != nil {
			return "", err
		}
		sb.WriteByte(digits[idx])
	}

	return sb.String(), nil
}

func (nc *NumericCode) randIntStrict(max int) (int, error) {
	num, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0, err
	}
	return int(num.Int64()), nil
}
