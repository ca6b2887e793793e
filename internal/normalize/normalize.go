package normalize

import (
	"fmt"
	"github.com/gostonefire/parcelmap/errs"
	"strings"
	"unicode/utf8"
)

// MaxCountryLength - Longest country name accepted from interactive input
const MaxCountryLength = 20

// Key - Returns the case folded form of s. Only ASCII upper case letters are folded, every other byte is kept
// as is, so the result always has the same length as s.
// This is the one place destinations are normalized, it must be used before hashing, before storing and
// before comparing.
func Key(s string) string {
	i := 0
	for ; i < len(s); i++ {
		if 'A' <= s[i] && s[i] <= 'Z' {
			break
		}
	}
	if i == len(s) {
		return s
	}

	b := []byte(s)
	for ; i < len(b); i++ {
		b[i] = Fold(b[i])
	}

	return string(b)
}

// Fold - Folds a single byte the same way Key does
func Fold(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

// Equal - Returns true if a and b are the same destination once normalized
func Equal(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if Fold(a[i]) != Fold(b[i]) {
			return false
		}
	}

	return true
}

// Country - Validates a country name given by a user and returns it trimmed.
// Empty names and names longer than maxLen characters are rejected with errs.InvalidUserInput, nothing is
// truncated. A maxLen of zero or less means MaxCountryLength.
func Country(s string, maxLen int) (country string, err error) {
	if maxLen <= 0 {
		maxLen = MaxCountryLength
	}

	country = strings.TrimSpace(s)
	if country == "" {
		err = errs.InvalidUserInput{Msg: "country name can not be empty"}
		return
	}
	if n := utf8.RuneCountInString(country); n > maxLen {
		err = errs.InvalidUserInput{Msg: fmt.Sprintf("country name is %d characters, at most %d allowed", n, maxLen)}
		country = ""
		return
	}

	return
}
