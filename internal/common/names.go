package common

import (
	"go/token"
	"unicode"
	"unicode/utf8"
)

// UpperFirst returns s with its first rune upper-cased.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return ""
	}

	return string(unicode.ToUpper(r)) + s[size:]
}

// LowerFirst returns s with its first rune lower-cased.
func LowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return ""
	}

	return string(unicode.ToLower(r)) + s[size:]
}

// IsExported reports whether name starts with an upper-case letter.
func IsExported(name string) bool {
	return token.IsExported(name)
}
