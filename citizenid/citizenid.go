// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package citizenid

import (
	"crypto/rand"
	"errors"
	"fmt"
)

// Length is the number of digits in a citizen identifier.
const Length = 13

var ErrInvalidCitizenID = errors.New("invalid citizen id")

// Validate checks that id is a well-formed citizen identifier: exactly 13
// digits, with the last digit a mod-11 checksum over the first 12.
// Digit i (0-based) is weighted 13-i; the check digit is (11 - sum%11) % 10.
func Validate(id string) error {
	if len(id) != Length {
		return ErrInvalidCitizenID
	}

	sum := 0
	for i := 0; i < Length-1; i++ {
		c := id[i]
		if c < '0' || c > '9' {
			return ErrInvalidCitizenID
		}
		sum += int(c-'0') * (Length - i)
	}

	last := id[Length-1]
	if last < '0' || last > '9' {
		return ErrInvalidCitizenID
	}

	check := (11 - sum%11) % 10
	if int(last-'0') != check {
		return ErrInvalidCitizenID
	}

	return nil
}

// Generate creates a random valid citizen identifier. Intended for test
// fixtures and seed data, not for issuing real identifiers.
func Generate() (string, error) {
	b := make([]byte, Length-1)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate citizen id: %w", err)
	}

	digits := make([]byte, Length)
	sum := 0
	for i := 0; i < Length-1; i++ {
		d := int(b[i]) % 10
		digits[i] = byte('0' + d)
		sum += d * (Length - i)
	}
	digits[Length-1] = byte('0' + (11-sum%11)%10)

	return string(digits), nil
}
