package normalize

import (
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

var thaiDigits = runes.Map(func(r rune) rune {
	if r >= '๐' && r <= '๙' {
		return '0' + (r - '๐')
	}
	return r
})

// WesternDigits rewrites Thai digits (๐-๙) as ASCII digits. Every other
// rune passes through unchanged.
func WesternDigits(s string) string {
	out, _, err := transform.String(thaiDigits, s)
	if err != nil {
		return s
	}
	return out
}
