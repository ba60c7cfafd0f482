package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *BusinessInput {
	return &BusinessInput{
		Name:  "Corner Coffee",
		Type:  "Cafe",
		URL:   "https://example.com",
		Phone: "(555) 555-1234",
	}
}

func TestBusiness_Valid(t *testing.T) {
	normalized, verr := Business(validInput())

	require.Nil(t, verr)
	assert.Equal(t, "Corner Coffee", normalized.Name)
	assert.Equal(t, "https://example.com", normalized.URL)
}

func TestBusiness_TrimsWhitespace(t *testing.T) {
	input := validInput()
	input.Name = "  Corner Coffee  "
	input.URL = " https://example.com "

	normalized, verr := Business(input)

	require.Nil(t, verr)
	assert.Equal(t, "Corner Coffee", normalized.Name)
	assert.Equal(t, "https://example.com", normalized.URL)
}

func TestBusiness_NameLength(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantMsg string
	}{
		{"empty", "", "Please provide a name."},
		{"one char", "a", "Please provide a name."},
		{"two chars ok", "ab", ""},
		{"hundred chars ok", strings.Repeat("a", 100), ""},
		{"over hundred", strings.Repeat("a", 101), "Name cannot exceed 100 characters."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			input.Name = tt.value

			normalized, verr := Business(input)
			if tt.wantMsg == "" {
				require.Nil(t, verr)
				assert.Equal(t, tt.value, normalized.Name)

				return
			}

			require.NotNil(t, verr)
			assert.Equal(t, tt.wantMsg, verr.Fields()["name"])
		})
	}
}

func TestBusiness_TypeOptionalButBounded(t *testing.T) {
	input := validInput()
	input.Type = ""

	_, verr := Business(input)
	require.Nil(t, verr)

	input.Type = strings.Repeat("x", 101)
	_, verr = Business(input)
	require.NotNil(t, verr)
	assert.Equal(t, "Type cannot exceed 100 characters.", verr.Fields()["type"])
}

func TestBusiness_URLRequiresScheme(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"https", "https://example.com", true},
		{"http", "http://example.com", true},
		{"missing scheme", "example.com", false},
		{"www only", "www.example.com", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			input.URL = tt.value

			_, verr := Business(input)
			if tt.valid {
				require.Nil(t, verr)

				return
			}

			require.NotNil(t, verr)
			assert.Equal(t, "Please provide a valid website address.", verr.Fields()["url"])
		})
	}
}

func TestBusiness_Phone(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"absent", "", true},
		{"parenthesized", "(555) 555-1234", true},
		{"dashed", "555-555-1234", true},
		{"bare digits", "5555551234", true},
		{"too short", "555-1234", false},
		{"letters", "call-me-maybe", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			input.Phone = tt.value

			_, verr := Business(input)
			if tt.valid {
				require.Nil(t, verr)

				return
			}

			require.NotNil(t, verr)
			assert.Equal(t, "Please provide a valid phone number.", verr.Fields()["phone"])
		})
	}
}

func TestBusiness_AllErrorsReportedTogether(t *testing.T) {
	_, verr := Business(&BusinessInput{
		Name:  "x",
		Type:  strings.Repeat("y", 101),
		URL:   "not a url",
		Phone: "123",
	})

	require.NotNil(t, verr)
	fields := verr.Fields()
	assert.Len(t, fields, 4)
	assert.Equal(t, "Please provide a name.", fields["name"])
	assert.Equal(t, "Type cannot exceed 100 characters.", fields["type"])
	assert.Equal(t, "Please provide a valid website address.", fields["url"])
	assert.Equal(t, "Please provide a valid phone number.", fields["phone"])
}
