package jsonutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{
			name: "bare object",
			in:   `{"scenarios":[]}`,
			want: `{"scenarios":[]}`,
		},
		{
			name: "code fence",
			in:   "Here is the result:\n```json\n{\"a\":1}\n```\nHope that helps!",
			want: `{"a":1}`,
		},
		{
			name: "fence without language tag",
			in:   "```\n{\"a\":1}\n```",
			want: `{"a":1}`,
		},
		{
			name: "prose preamble",
			in:   `Sure, here you go: {"a":{"b":2}} trailing prose`,
			want: `{"a":{"b":2}}`,
		},
		{
			name: "braces inside strings ignored",
			in:   `{"a":"}{","b":1}`,
			want: `{"a":"}{","b":1}`,
		},
		{
			name: "trailing comma repaired",
			in:   `{"a":1,"b":[1,2,],}`,
			want: `{"a":1,"b":[1,2]}`,
		},
		{
			name: "unquoted keys repaired",
			in:   `{scenarios: [], count: 2}`,
			want: `{"scenarios": [], "count": 2}`,
		},
		{
			name:    "no object",
			in:      "I could not produce any scenarios, sorry.",
			wantErr: true,
		},
		{
			name:    "truncated object",
			in:      `{"scenarios":[{"name":"x"`,
			wantErr: true,
		},
		{
			name:    "empty input",
			in:      "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractObject(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
			assert.True(t, Valid(got))
		})
	}
}

func TestRepairLeavesValidJSONAlone(t *testing.T) {
	in := `{"a":1,"b":"x, y","c":[1,2]}`
	assert.Equal(t, in, Repair(in))
}
