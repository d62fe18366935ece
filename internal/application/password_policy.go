package application

import (
	"regexp"
	"unicode/utf8"
)

// The policy mirrors ^(?=.*[A-Z])(?=.*[!@#$%^&*]).{8,}$ without lookaheads:
// at least 8 characters on a single line, one ASCII uppercase letter and one of !@#$%^&*.
var (
	pwdUpper     = regexp.MustCompile(`[A-Z]`)
	pwdSymbol    = regexp.MustCompile(`[!@#$%^&*]`)
	pwdLineBreak = regexp.MustCompile(`[\n\r\x{0085}\x{2028}\x{2029}]`)
)

// IsPasswordValid reports whether the password satisfies the registration policy.
func IsPasswordValid(password string) bool {
	if utf8.RuneCountInString(password) < 8 {
		return false
	}
	if pwdLineBreak.MatchString(password) {
		return false
	}
	return pwdUpper.MatchString(password) && pwdSymbol.MatchString(password)
}
