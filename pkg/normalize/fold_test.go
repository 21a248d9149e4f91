package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campushq/reconcile/pkg/normalize"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "   ",
			expected: "",
		},
		{
			name:     "lowercase passthrough",
			input:    "nguyen van a",
			expected: "nguyen van a",
		},
		{
			name:     "case folding",
			input:    "Nguyen Van A",
			expected: "nguyen van a",
		},
		{
			name:     "vietnamese diacritics",
			input:    "Nguyễn Văn Đức",
			expected: "nguyen van đuc",
		},
		{
			name:     "french diacritics",
			input:    "Éléonore Crème",
			expected: "eleonore creme",
		},
		{
			name:     "trims surrounding whitespace",
			input:    "  Trần Thị B  ",
			expected: "tran thi b",
		},
		{
			name:     "email stays intact",
			input:    "A.Nguyen@University.Edu",
			expected: "a.nguyen@university.edu",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalize.Fold(tt.input))
		})
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, normalize.Equal("Nguyễn Văn A", "nguyen van a"))
	assert.True(t, normalize.Equal("  LÊ Thị Hà ", "lê thị hà"))
	assert.False(t, normalize.Equal("nguyen van a", "nguyen van b"))
}
