package dates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAcceptedLayouts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		day   string
	}{
		{"plain day", "2024-03-05", "2024-03-05"},
		{"rfc3339", "2024-03-05T23:30:00Z", "2024-03-05"},
		{"rfc3339 no zone", "2024-03-05T23:30:00", "2024-03-05"},
		{"space separated", "2024-03-05 08:00:00", "2024-03-05"},
		{"slashes ymd", "2024/03/05", "2024-03-05"},
		{"slashes mdy", "03/05/2024", "2024-03-05"},
		{"surrounding spaces", "  2024-03-05  ", "2024-03-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.day, got)
		})
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "   ", "not-a-date", "2024-13-45", "soon"} {
		_, err := Parse(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{"2024-03-05", "2024-03-05T23:30:00Z", "03/05/2024"}

	for _, input := range inputs {
		once, err := Normalize(input)
		require.NoError(t, err)

		twice, err := Normalize(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}
