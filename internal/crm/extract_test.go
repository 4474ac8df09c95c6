package crm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONDocument(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{
			name: "bare object",
			in:   `{"a": 1}`,
			want: `{"a": 1}`,
			ok:   true,
		},
		{
			name: "fenced object",
			in:   "```json\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
			ok:   true,
		},
		{
			name: "prose before and after",
			in:   `Here is the result: {"a": 1} hope that helps!`,
			want: `{"a": 1}`,
			ok:   true,
		},
		{
			name: "fence and prose together",
			in:   "Sure! Here you go:\n```json\n{\"a\": {\"b\": 2}}\n```\nLet me know.",
			want: `{"a": {"b": 2}}`,
			ok:   true,
		},
		{
			name: "array document",
			in:   "```\n[{\"name\": \"x\"}, {\"name\": \"y\"}]\n```",
			want: `[{"name": "x"}, {"name": "y"}]`,
			ok:   true,
		},
		{
			name: "braces inside strings do not close the document",
			in:   `{"note": "uses { and } freely", "a": 1}`,
			want: `{"note": "uses { and } freely", "a": 1}`,
			ok:   true,
		},
		{
			name: "escaped quote inside string",
			in:   `{"note": "he said \"hi\"", "a": 1}`,
			want: `{"note": "he said \"hi\"", "a": 1}`,
			ok:   true,
		},
		{
			name: "nested objects",
			in:   `{"outer": {"inner": {"deep": true}}}`,
			want: `{"outer": {"inner": {"deep": true}}}`,
			ok:   true,
		},
		{
			name: "unbalanced",
			in:   `{"a": 1`,
			ok:   false,
		},
		{
			name: "no json at all",
			in:   "I could not produce a classification.",
			ok:   false,
		},
		{
			name: "empty input",
			in:   "",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSONDocument(tt.in)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestExtractJSONDocumentIsIdentityOnCleanJSON(t *testing.T) {
	clean := `{"lead_type": "Other", "bant_analysis": {}, "is_qualified": false}`
	got, ok := extractJSONDocument(clean)
	require.True(t, ok)
	assert.Equal(t, clean, got)
}
