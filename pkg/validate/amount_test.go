package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"100.00", true},
		{"100", true},
		{"0.5", true},
		{"0", false},
		{"0.00", false},
		{"-5.00", false},
		{"1.001", false},
		{"1e3", false},
		{"abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, ok := ParseAmount(tt.in)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestIsDocumentNumber(t *testing.T) {
	assert.True(t, IsDocumentNumber("20481234567"))
	assert.True(t, IsDocumentNumber("A-12345"))
	assert.False(t, IsDocumentNumber("123"))
	assert.False(t, IsDocumentNumber(""))
	assert.False(t, IsDocumentNumber("has spaces here"))
}
