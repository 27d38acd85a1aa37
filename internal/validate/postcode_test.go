package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutwardCode_FullPostcodes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"SW1A 1AA", "SW1A"},
		{"SW1A1AA", "SW1A"},
		{"M1 1AA", "M1"},
		{"M11AA", "M1"},
		{"EC1A 1BB", "EC1A"},
		{"b33 8th", "B33"},
		{"CR2 6XH", "CR2"},
		{"DN55 1PT", "DN55"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := OutwardCode(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestOutwardCode_OutwardOnly(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"SW1A", "SW1A"},
		{"sw1a", "SW1A"},
		{"M1", "M1"},
		{"dn55", "DN55"},
		{" W1 ", "W1"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := OutwardCode(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestOutwardCode_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"123",
		"ABC",
		"SW1A 1AAA",
		"1A1 1AA",
		"SW1A1A",
		"SW 1A 1 AA extra",
		"!!",
	}

	for _, input := range inputs {
		t.Run("invalid "+input, func(t *testing.T) {
			_, err := OutwardCode(input)
			assert.ErrorIs(t, err, ErrInvalidPostcode)
		})
	}
}

// Re-feeding a normalized outward code through the normalizer must
// return it unchanged.
func TestOutwardCode_Idempotent(t *testing.T) {
	first, err := OutwardCode("sw1a 1aa")
	require.NoError(t, err)

	second, err := OutwardCode(first)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
