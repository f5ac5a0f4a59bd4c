package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeToSeconds(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		wantErr  bool
	}{
		{
			name:     "midnight",
			input:    "00:00:00",
			expected: 0,
		},
		{
			name:     "morning start",
			input:    "08:30:00",
			expected: 30600,
		},
		{
			name:     "just before rollover",
			input:    "23:59:59",
			expected: 86399,
		},
		{
			name:     "duration longer than a day",
			input:    "26:00:00",
			expected: 93600,
		},
		{
			name:    "minutes out of range",
			input:   "10:61:00",
			wantErr: true,
		},
		{
			name:    "not a clock string",
			input:   "morning",
			wantErr: true,
		},
		{
			name:    "trailing text rejected",
			input:   "08:30:00xyz",
			wantErr: true,
		},
		{
			name:    "missing seconds field",
			input:   "08:30",
			wantErr: true,
		},
		{
			name:    "extra field rejected",
			input:   "08:30:00:15",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TimeToSeconds(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSecondsToClock(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected string
	}{
		{
			name:     "zero",
			input:    0,
			expected: "00:00:00",
		},
		{
			name:     "round trip of morning start",
			input:    30600,
			expected: "08:30:00",
		},
		{
			name:     "more than a day keeps growing hours",
			input:    90000,
			expected: "25:00:00",
		},
		{
			name:     "negative clamps to zero",
			input:    -5,
			expected: "00:00:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SecondsToClock(tt.input))
		})
	}
}

func TestNumericPrefixLess(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected bool
	}{
		{
			name:     "numeric order beats lexical order",
			a:        "2",
			b:        "10",
			expected: true,
		},
		{
			name:     "lexical order would be wrong",
			a:        "10",
			b:        "2",
			expected: false,
		},
		{
			name:     "numbered before unnumbered",
			a:        "3 работы",
			b:        "архив",
			expected: true,
		},
		{
			name:     "same number falls back to string compare",
			a:        "1 a",
			b:        "1 b",
			expected: true,
		},
		{
			name:     "no numbers at all",
			a:        "alpha",
			b:        "beta",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NumericPrefixLess(tt.a, tt.b))
		})
	}
}

func TestRemoveEmptyStrings(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, RemoveEmptyStrings([]string{"", "a", "", "b", ""}))
	assert.Empty(t, RemoveEmptyStrings([]string{"", ""}))
	assert.Empty(t, RemoveEmptyStrings(nil))
}

func TestParseExtensions(t *testing.T) {
	assert.Equal(t, []string{".jpg", ".png"}, ParseExtensions(".jpg,.png"))
	assert.Equal(t, []string{".jpg", ".png"}, ParseExtensions(" JPG , .png "))
	assert.Equal(t, []string{".jpeg"}, ParseExtensions("jpeg,,"))
	assert.Empty(t, ParseExtensions(""))
	assert.Equal(t, DefaultImageExtensions, ParseExtensions(DefaultImageExtensionsString))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains(DefaultImageExtensions, ".jpg"))
	assert.False(t, Contains(DefaultImageExtensions, ".raw"))
	assert.False(t, Contains(nil, ".jpg"))
}
