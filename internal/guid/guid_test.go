package guid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"braced lowercase", "{ab-12}", "AB-12"},
		{"bare uppercase", "AB-12", "AB-12"},
		{"braced full guid", "{6f9619ff-8b86-d011-b42d-00c04fc964ff}", "6F9619FF-8B86-D011-B42D-00C04FC964FF"},
		{"mixed case", "6F9619ff-8b86-D011-b42d-00C04FC964FF", "6F9619FF-8B86-D011-B42D-00C04FC964FF"},
		{"surrounding whitespace", "  {ab-12}  ", "AB-12"},
		{"empty", "", ""},
		{"braces only", "{}", ""},
		{"unbalanced brace kept literal", "{ab-12", "AB-12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{"{ab-12}", "AB-12", "{6F9619FF-8B86-D011-B42D-00C04FC964FF}"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("{AAAA}", "aaaa"))
	assert.True(t, Equal("ab-12", "{AB-12}"))
	assert.False(t, Equal("BBBB", "CCCC"))
	assert.False(t, Equal("", "CCCC"))
	assert.True(t, Equal("", "{}"))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("6f9619ff-8b86-d011-b42d-00c04fc964ff"))
	assert.True(t, Valid("{6f9619ff-8b86-d011-b42d-00c04fc964ff}"))
	assert.False(t, Valid("ab-12"))
	assert.False(t, Valid(""))
}
