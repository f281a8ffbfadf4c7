// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package validation holds the input rules applied to console entries.
//
// Every check returns an oops error carrying one of the Code* constants so
// callers can pick the user-facing message without string matching.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/oops"
)

// Error codes returned by the validators.
const (
	CodeNotANumber           = "INPUT_NOT_A_NUMBER"
	CodeOutOfRange           = "INPUT_OUT_OF_RANGE"
	CodeEmpty                = "INPUT_EMPTY"
	CodeAccountInvalid       = "ACCOUNT_INVALID"
	CodePasswordLength       = "PASSWORD_LENGTH"
	CodePasswordAlphanumeric = "PASSWORD_ALPHANUMERIC"
)

// Password length bounds, inclusive, counted in runes.
const (
	PasswordMinLength = 8
	PasswordMaxLength = 31
)

// AccountDigits is the exact number of digits in an account number.
const AccountDigits = 10

// accountPattern accepts exactly ten ASCII digits.
var accountPattern = regexp.MustCompile(`^\d{10}$`)

// AccountNumber is a parsed account number. The widest ten-digit value
// (9,999,999,999) does not fit in 32 bits, so it is held as an int64.
type AccountNumber int64

// String renders the account number zero-padded to its ten digits.
func (a AccountNumber) String() string {
	return fmt.Sprintf("%0*d", AccountDigits, int64(a))
}

// ParseBoundedInt parses s as a base-10 integer within [lo, hi].
func ParseBoundedInt(s string, lo, hi int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, oops.Code(CodeNotANumber).
			With("input", s).
			Wrapf(err, "not an integer")
	}
	if v < lo || v > hi {
		return 0, oops.Code(CodeOutOfRange).
			With("value", v).
			With("min", lo).
			With("max", hi).
			Errorf("value %d outside [%d, %d]", v, lo, hi)
	}
	return v, nil
}

// NonEmpty trims s and rejects the result if nothing is left.
func NonEmpty(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", oops.Code(CodeEmpty).Errorf("input cannot be empty")
	}
	return trimmed, nil
}

// ParseAccountNumber accepts exactly ten decimal digits, leading zeros
// included.
func ParseAccountNumber(s string) (AccountNumber, error) {
	trimmed := strings.TrimSpace(s)
	if !accountPattern.MatchString(trimmed) {
		return 0, oops.Code(CodeAccountInvalid).
			With("length", len(trimmed)).
			Errorf("account number must be exactly %d digits", AccountDigits)
	}
	v, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		// Unreachable for ten digits; kept so a pattern change cannot truncate silently.
		return 0, oops.Code(CodeAccountInvalid).Wrapf(err, "parse account number")
	}
	return AccountNumber(v), nil
}

// ValidatePassword checks length first, then that at least one digit and one
// letter are present. No other character classes are required.
func ValidatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < PasswordMinLength || n > PasswordMaxLength {
		return oops.Code(CodePasswordLength).
			With("length", n).
			Errorf("password must be %d-%d characters", PasswordMinLength, PasswordMaxLength)
	}

	var hasDigit, hasLetter bool
	for _, r := range password {
		if unicode.IsDigit(r) {
			hasDigit = true
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
		if hasDigit && hasLetter {
			return nil
		}
	}
	return oops.Code(CodePasswordAlphanumeric).
		With("has_digit", hasDigit).
		With("has_letter", hasLetter).
		Errorf("password must contain at least one digit and one letter")
}
