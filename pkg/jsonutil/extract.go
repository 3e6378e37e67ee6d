package jsonutil

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoObject is returned when no JSON object can be located in the input.
var ErrNoObject = errors.New("jsonutil: no JSON object found")

// ErrUnbalanced is returned when the located object is never closed.
var ErrUnbalanced = errors.New("jsonutil: unbalanced braces in JSON object")

var (
	fenceRe        = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	trailingComma  = regexp.MustCompile(`,\s*([}\]])`)
	unquotedKeyRe  = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_\-]*)\s*:`)
	preambleMarker = []string{"Here is", "Here's", "Sure,", "Certainly"}
)

// ExtractObject performs a best-effort extraction of a single well-formed
// JSON object from free-form text, typically an LLM completion. It strips
// code fences and prose preambles, locates the first '{', scans forward
// with a brace-depth counter (string- and escape-aware) to its matching
// '}', repairs common defects, and validates the result.
//
// The returned bytes are guaranteed to pass Valid. Callers still need to
// unmarshal into their schema and validate shape.
func ExtractObject(text string) ([]byte, error) {
	// Prefer fenced content when present.
	if m := fenceRe.FindStringSubmatch(text); m != nil {
		text = m[1]
	}
	text = strings.TrimSpace(text)

	start := strings.IndexByte(text, '{')
	if start < 0 {
		return nil, ErrNoObject
	}

	depth := 0
	inString := false
	escaped := false
	end := -1
scan:
	for i := start; i < len(text); i++ {
		c := text[i]
		switch {
		case escaped:
			escaped = false
		case inString:
			if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				end = i
				break scan
			}
		}
	}
	if end < 0 {
		return nil, ErrUnbalanced
	}

	candidate := Repair(text[start : end+1])
	if !Valid([]byte(candidate)) {
		return nil, ErrNoObject
	}
	return []byte(candidate), nil
}

// Repair applies light grammar fixes for defects LLMs commonly produce:
// trailing commas before a closing bracket and unquoted object keys.
// It is heuristic and may alter string contents that look like bare keys;
// callers treat the output as a candidate, not a guarantee.
func Repair(s string) string {
	s = trailingComma.ReplaceAllString(s, "$1")
	s = unquotedKeyRe.ReplaceAllString(s, `$1"$2":`)
	return s
}

// HasPreamble reports whether text starts with conversational filler
// rather than data. Used only for diagnostics.
func HasPreamble(text string) bool {
	t := strings.TrimSpace(text)
	for _, m := range preambleMarker {
		if strings.HasPrefix(t, m) {
			return true
		}
	}
	return false
}
