package slugify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "The Go Programming Language", "the-go-programming-language"},
		{"collapses punctuation runs", "C++: A Modern Approach!!", "c-a-modern-approach"},
		{"trims leading and trailing separators", "  --Hello World--  ", "hello-world"},
		{"strips diacritics", "Éducation Européenne", "education-europeenne"},
		{"keeps digits", "Catch-22 (1961)", "catch-22-1961"},
		{"underscores become hyphens", "snake_case_title", "snake-case-title"},
		{"empty input", "", ""},
		{"only punctuation", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, From(tt.input))
		})
	}
}
