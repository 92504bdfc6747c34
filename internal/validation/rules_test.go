package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryID(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		shouldErr bool
	}{
		{
			name:      "valid uuid",
			input:     "ee0b9978-fe1b-4191-8408-cbadbd47f7a3",
			shouldErr: false,
		},
		{
			name:      "uppercase uuid",
			input:     "EE0B9978-FE1B-4191-8408-CBADBD47F7A3",
			shouldErr: false,
		},
		{
			name:      "truncated",
			input:     "cbadbd47f7a3",
			shouldErr: true,
		},
		{
			name:      "injection attempt",
			input:     "ee0b9978-fe1b-4191-8408-cbadbd47f7a3;--",
			shouldErr: true,
		},
		{
			name:      "empty string is left to Required",
			input:     "",
			shouldErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := InventoryID.Validate(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "must be a valid UUID")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBase64(t *testing.T) {
	tests := []struct {
		name      string
		input     interface{}
		shouldErr bool
	}{
		{name: "standard alphabet", input: "eyJpZGVudGl0eSI6e319", shouldErr: false},
		{name: "url alphabet", input: "-_-_", shouldErr: false},
		{name: "empty", input: "", shouldErr: false},
		{name: "not base64", input: "not base64!", shouldErr: true},
		{name: "not a string", input: 42, shouldErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Base64.Validate(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecodeBase64(t *testing.T) {
	t.Run("standard alphabet", func(t *testing.T) {
		raw, err := DecodeBase64("eyJhIjoxfQ==")
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, string(raw))
	})

	t.Run("url alphabet fallback", func(t *testing.T) {
		raw, err := DecodeBase64("-_-_")
		require.NoError(t, err)
		assert.Equal(t, []byte{0xfb, 0xff, 0xbf}, raw)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := DecodeBase64("not base64!")
		assert.Error(t, err)
	})
}

func TestNoWhitespace(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		shouldErr bool
	}{
		{
			name:      "no whitespace",
			input:     "validstring",
			shouldErr: false,
		},
		{
			name:      "leading whitespace",
			input:     " validstring",
			shouldErr: true,
		},
		{
			name:      "trailing whitespace",
			input:     "validstring ",
			shouldErr: true,
		},
		{
			name:      "both leading and trailing",
			input:     " validstring ",
			shouldErr: true,
		},
		{
			name:      "internal spaces allowed",
			input:     "valid string",
			shouldErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NoWhitespace.Validate(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNotBlank(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		shouldErr bool
	}{
		{
			name:      "valid string",
			input:     "validstring",
			shouldErr: false,
		},
		{
			name:      "only spaces",
			input:     "   ",
			shouldErr: true,
		},
		{
			name:      "only tabs",
			input:     "\t\t",
			shouldErr: true,
		},
		{
			name:      "only newlines",
			input:     "\n\n",
			shouldErr: true,
		},
		{
			name:      "mixed whitespace",
			input:     " \t\n ",
			shouldErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NotBlank.Validate(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWrapValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error returns nil",
			err:      nil,
			expected: false,
		},
		{
			name:     "wraps validation error",
			err:      assert.AnError,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WrapValidationError(tt.err)
			if tt.expected {
				assert.Error(t, result)
				assert.Contains(t, result.Error(), "invalid input")
			} else {
				assert.NoError(t, result)
			}
		})
	}
}
