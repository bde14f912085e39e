package battletag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expected      string
		expectedError error
	}{
		{
			name:     "displayformat",
			input:    "Player#1234",
			expected: "Player-1234",
		},
		{
			name:     "apiformat",
			input:    "Player-1234",
			expected: "Player-1234",
		},
		{
			name:     "dashinname",
			input:    "Some-Name-1234",
			expected: "Some-Name-1234",
		},
		{
			name:     "surroundingspaces",
			input:    "  Player#1234  ",
			expected: "Player-1234",
		},
		{
			name:          "noseparator",
			input:         "Bad",
			expectedError: ErrInvalidBattletag,
		},
		{
			name:          "missingdigits",
			input:         "Name#",
			expectedError: ErrInvalidBattletag,
		},
		{
			name:          "missingname",
			input:         "#1234",
			expectedError: ErrInvalidBattletag,
		},
		{
			name:          "nonnumericsuffix",
			input:         "Name#abcd",
			expectedError: ErrInvalidBattletag,
		},
		{
			name:          "extrahash",
			input:         "Name#12#34",
			expectedError: ErrInvalidBattletag,
		},
		{
			name:          "empty",
			input:         "",
			expectedError: ErrInvalidBattletag,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Normalize(tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, result)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestToDisplay(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "apiformat",
			input:    "Player-1234",
			expected: "Player#1234",
		},
		{
			name:     "alreadydisplay",
			input:    "Player#1234",
			expected: "Player#1234",
		},
		{
			name:     "dashinname",
			input:    "Some-Name-1234",
			expected: "Some-Name#1234",
		},
		{
			name:     "notabattletag",
			input:    "whatever",
			expected: "whatever",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToDisplay(tt.input))
		})
	}
}

// Normalizing then converting back to display must be the identity for any
// valid display battletag.
func TestNormalizeToDisplayRoundTrip(t *testing.T) {
	inputs := []string{"Player#1234", "xXx#1", "Some-Name#987654"}

	for _, input := range inputs {
		normalized, err := Normalize(input)
		assert.NoError(t, err)
		assert.Equal(t, input, ToDisplay(normalized))
	}
}
