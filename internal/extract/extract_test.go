package extract

import "testing"

func TestYear(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "ISO date",
			input:    "2021-03-01",
			expected: "2021",
		},
		{
			name:     "compact pubdate",
			input:    "20210301",
			expected: "2021",
		},
		{
			name:     "bare year",
			input:    "1999",
			expected: "1999",
		},
		{
			name:     "year embedded in text",
			input:    "published circa 2005 in Seoul",
			expected: "2005",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "no digits",
			input:    "no year here",
			expected: "",
		},
		{
			name:     "too few digits",
			input:    "vol. 123",
			expected: "",
		},
		{
			name:     "leading whitespace",
			input:    "  1987-06",
			expected: "1987",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Year(tt.input); got != tt.expected {
				t.Errorf("Year(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestISBN13(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "isbn10 then isbn13",
			input:    "8932917248 9788932917245",
			expected: "9788932917245",
		},
		{
			name:     "isbn13 then isbn10",
			input:    "9788932917245 8932917248",
			expected: "9788932917245",
		},
		{
			name:     "isbn13 only",
			input:    "9788932917245",
			expected: "9788932917245",
		},
		{
			name:     "isbn10 only",
			input:    "8932917248",
			expected: "",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "13 chars but not all digits",
			input:    "978893291724X",
			expected: "",
		},
		{
			name:     "extra whitespace between tokens",
			input:    "  8932917248   9788932917245  ",
			expected: "9788932917245",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ISBN13(tt.input); got != tt.expected {
				t.Errorf("ISBN13(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bold wrapped term",
			input:    "The <b>Great</b> Gatsby",
			expected: "The Great Gatsby",
		},
		{
			name:     "no markup",
			input:    "Plain Title",
			expected: "Plain Title",
		},
		{
			name:     "multiple spans",
			input:    "<b>Foo</b> and <b>Bar</b>",
			expected: "Foo and Bar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripMarkup(tt.input); got != tt.expected {
				t.Errorf("StripMarkup(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
