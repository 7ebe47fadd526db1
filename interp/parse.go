package interp

import (
	"bytes"
	"unicode/utf8"
)

// MaxRecursion is a sentinel recursion limit callers can pass to Parse to
// effectively disable the limit (spec.md §6: "callers pass a large sentinel
// (maximum representable)").
const MaxRecursion = ^uint64(0)

// Parse drives input to a fixed point: it repeatedly tokenizes the previous
// pass's output until a pass produces a buffer identical to its input, and
// returns that buffer along with the Findings accumulated across every pass
// and every nested sub-parse along the way.
//
// A single pass is insufficient on its own: `hello ${lower:${::-$}{jndi:}}`
// expands in one pass to `hello ${jndi:}`, which still contains a live
// lookup. Re-driving the output to a fixed point is what lets this and
// other self-assembling payloads get recognized.
func Parse(input []byte, recursionLimit uint64) ([]byte, Findings) {
	findings := NewFindings()
	current := input

	for {
		next := tokenizePass(current, recursionLimit, &findings)
		if bytes.Equal(next, current) {
			return next, findings
		}
		current = next
	}
}

// ParseText is a convenience wrapper around Parse that decodes the result
// as UTF-8, failing with DecodeError if the *final* output is not valid
// text. Intermediate passes need not be valid UTF-8.
func ParseText(input string, recursionLimit uint64) (string, Findings, error) {
	output, findings := Parse([]byte(input), recursionLimit)
	if !utf8.Valid(output) {
		return "", findings, DecodeError{Offset: firstInvalidUTF8(output)}
	}
	return string(output), findings, nil
}

func firstInvalidUTF8(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(b)
}
