package invaliddata

import (
	"strings"
	"testing"
)

func TestValueForRuleTable(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		original any
		check    func(t *testing.T, got any)
	}{
		{
			name:  "email has no at sign",
			field: "contactEmail",
			check: func(t *testing.T, got any) {
				s, ok := got.(string)
				if !ok || strings.Contains(s, "@") {
					t.Errorf("got %v, want malformed email without @", got)
				}
			},
		},
		{
			name:  "phone too short",
			field: "phone_number",
			check: func(t *testing.T, got any) {
				if got != BadPhone {
					t.Errorf("got %v", got)
				}
			},
		},
		{
			name:  "url malformed",
			field: "website",
			check: func(t *testing.T, got any) {
				if got != BadURL {
					t.Errorf("got %v", got)
				}
			},
		},
		{
			name:  "linkedin malformed",
			field: "linkedinProfile",
			check: func(t *testing.T, got any) {
				if got != BadURL {
					t.Errorf("got %v", got)
				}
			},
		},
		{
			name:  "password too short",
			field: "password",
			check: func(t *testing.T, got any) {
				if got != BadPassword {
					t.Errorf("got %v", got)
				}
			},
		},
		{
			name:     "string becomes oversized",
			field:    "companyName",
			original: "Acme",
			check: func(t *testing.T, got any) {
				s, ok := got.(string)
				if !ok || len(s) != 1000 {
					t.Errorf("got %T len %d, want 1000-char string", got, len(s))
				}
			},
		},
		{
			name:     "number becomes large negative",
			field:    "quantity",
			original: float64(3),
			check: func(t *testing.T, got any) {
				if got != BadNumber {
					t.Errorf("got %v", got)
				}
			},
		},
		{
			name:     "bool becomes non-boolean string",
			field:    "active",
			original: true,
			check: func(t *testing.T, got any) {
				if got != BadBoolean {
					t.Errorf("got %v", got)
				}
			},
		},
		{
			name:     "anything else becomes null",
			field:    "meta",
			original: map[string]any{"a": 1},
			check: func(t *testing.T, got any) {
				if got != nil {
					t.Errorf("got %v, want nil", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, ValueFor(tt.field, tt.original))
		})
	}
}

func TestNameRuleBeatsTypeRule(t *testing.T) {
	// "email" in the field name wins even when the original is a number.
	got := ValueFor("emailCount", float64(4))
	if got != BadEmail {
		t.Errorf("got %v, want %q (field-name rule first)", got, BadEmail)
	}
}
