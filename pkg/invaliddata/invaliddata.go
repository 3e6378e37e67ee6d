// Package invaliddata produces deliberately invalid replacement values
// for single payload fields. Each value violates exactly one constraint
// (format, length, type, or sign) so a rejection can be attributed to the
// corrupted field alone.
package invaliddata

import (
	"strings"

	"github.com/apiprobe/apiprobe/pkg/defaults"
)

// Fixed malformed literals. Kept stable so expected failures are
// reproducible across runs.
const (
	BadEmail    = "not-an-email"
	BadPhone    = "12"
	BadURL      = "htp:/broken..url"
	BadPassword = "x"
	BadBoolean  = "not-a-boolean"
	BadNumber   = -999999999
)

// oversized returns a string of repeated 'A's at the standard oversized
// length used for boundary probes.
func oversized(n int) string {
	return strings.Repeat("A", n)
}

// ValueFor returns an invalid replacement for the named field.
// The rule table is first-match-wins: substring checks on the lower-cased
// field name first, then the dynamic type of the original value. A nil
// return means "no meaningful corruption" and callers substitute null.
func ValueFor(field string, original any) any {
	k := strings.ToLower(field)

	switch {
	case strings.Contains(k, "email"):
		return BadEmail
	case strings.Contains(k, "phone"):
		return BadPhone
	case strings.Contains(k, "url"), strings.Contains(k, "website"), strings.Contains(k, "linkedin"):
		return BadURL
	case strings.Contains(k, "password"):
		return BadPassword
	}

	switch original.(type) {
	case string:
		return oversized(defaults.OversizedStringLength)
	case float64, int, int64:
		return BadNumber
	case bool:
		return BadBoolean
	default:
		return nil
	}
}
