package grammar

import (
	"unicode"
	"unicode/utf8"
)

func isSpace(c rune) bool {
	return c == ' ' || c == '\t'
}

func isNewline(c rune) bool {
	return c == '\n' || c == '\r'
}

func isBlank(c rune) bool {
	return isSpace(c) || isNewline(c)
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func hexValue(c rune) (rune, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func isIdentStart(c rune) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_' ||
		(c >= utf8.RuneSelf && unicode.IsLetter(c))
}

func isIdentChar(c rune) bool {
	return isIdentStart(c) || isDigit(c) || c == '-'
}

// IsIdentifier reports whether s can be written as a bare identifier.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		if i == 0 && !isIdentStart(c) {
			return false
		}
		if !isIdentChar(c) {
			return false
		}
	}
	return true
}

// isStringChar reports whether c may appear unescaped in a quoted string.
func isStringChar(c rune) bool {
	return (c >= 0x20 || c == '\t') && c != '"' && c != '\\'
}

// isBlockChar reports whether c may appear unescaped in a text block.
func isBlockChar(c rune) bool {
	return isStringChar(c) || c == '\n' || c == '\r'
}

// isMarkupText reports whether c continues a run of markup text.
func isMarkupText(c rune) bool {
	switch c {
	case '<', '>', '@', '\\', '{':
		return false
	}
	return c >= 0x20 || c == '\t' || c == '\n' || c == '\r'
}

// unescape returns the code point denoted by the escape character c, or
// false when c starts no single-character escape.
func unescape(c rune) (rune, bool) {
	switch c {
	case '"', '\'', '/', '<', '>', '@', '[', '\\', ']', '{', '}':
		return c, true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	}
	return 0, false
}
