package block

import (
	"strconv"
)

// SeedDigits is the number of leading hex characters that make up a seed.
const SeedDigits = 16

// Seed converts the first 16 hex characters of a digest into an integer
// seed. An optional 0x prefix is skipped. Anything after the 16th digit is
// ignored.
func Seed(hash string) (uint64, error) {
	s := hash
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if len(s) < SeedDigits {
		return 0, &MalformedHashError{Input: hash, Reason: "fewer than 16 hex digits"}
	}
	prefix := s[:SeedDigits]
	for i := 0; i < len(prefix); i++ {
		if !isHex(prefix[i]) {
			return 0, &MalformedHashError{Input: hash, Reason: "invalid hex digit " + strconv.QuoteRune(rune(prefix[i]))}
		}
	}
	v, err := strconv.ParseUint(prefix, 16, 64)
	if err != nil {
		return 0, &MalformedHashError{Input: hash, Reason: err.Error()}
	}
	return v, nil
}

func isHex(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'f':
		return true
	case c >= 'A' && c <= 'F':
		return true
	}
	return false
}
