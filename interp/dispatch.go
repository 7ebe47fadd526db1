package interp

import (
	"bytes"
	"encoding/base64"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	lowerCaser = cases.Lower(language.Und)
	upperCaser = cases.Upper(language.Und)
)

const defaultDelimiter = ":-"

// splitDefault scans inner left-to-right for the first occurrence of `:-`.
// value is the prefix before it (or all of inner if absent); def is the
// suffix after it (or empty). Only the first occurrence splits.
func splitDefault(inner []byte) (value, def []byte) {
	idx := bytes.Index(inner, []byte(defaultDelimiter))
	if idx < 0 {
		return inner, nil
	}
	return inner[:idx], inner[idx+len(defaultDelimiter):]
}

// stripASCIIPrefix matches prefix against the start of input, folding ASCII
// letters only; bytes outside A-Z/a-z are compared strictly. This is
// intentional: unicode case folding must never leak into prefix matching,
// or an attacker could craft a prefix that matches in one encoding but not
// another (spec.md §9).
func stripASCIIPrefix(input, prefix []byte) ([]byte, bool) {
	if len(input) < len(prefix) {
		return nil, false
	}
	for i, p := range prefix {
		c := input[i]
		if asciiLower(c) != asciiLower(p) {
			return nil, false
		}
	}
	return input[len(prefix):], true
}

func asciiLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// dispatch classifies the already-recursively-expanded inner bytes of one
// `${...}` region by case-insensitive prefix and applies the matching
// handler. ok is false when no prefix matched (the bare default-value
// fallback, which dispatches no handler and sets no finding).
func dispatch(inner []byte) (output []byte, tag Tag, ok bool) {
	value, def := splitDefault(inner)

	if arg, matched := stripASCIIPrefix(value, []byte("lower:")); matched {
		if !utf8.Valid(arg) {
			return []byte(errLowerInvalidUTF8), 0, false
		}
		return []byte(lowerCaser.String(string(arg))), TagLower, true
	}

	if arg, matched := stripASCIIPrefix(value, []byte("upper:")); matched {
		if !utf8.Valid(arg) {
			return []byte(errUpperInvalidUTF8), 0, false
		}
		return []byte(upperCaser.String(string(arg))), TagUpper, true
	}

	if arg, matched := stripASCIIPrefix(value, []byte("base64:")); matched {
		// StdEncoding uses the standard `+`/`/` alphabet and rejects the
		// URL-safe alphabet outright, matching the model being defended
		// against (spec.md §9).
		decoded, err := base64.StdEncoding.DecodeString(string(arg))
		if err != nil {
			return []byte(errBase64DecodeInvalid), 0, false
		}
		return decoded, TagBase64, true
	}

	if _, matched := stripASCIIPrefix(value, []byte("jndi:")); matched {
		return value, TagJndi, true
	}

	if _, matched := stripASCIIPrefix(value, []byte("env:")); matched {
		return def, TagEnv, true
	}

	if _, matched := stripASCIIPrefix(value, []byte("main:")); matched {
		return def, TagMain, true
	}

	if arg, matched := stripASCIIPrefix(value, []byte("date:")); matched {
		return substituteDate(arg), TagDate, true
	}

	return def, 0, false
}
