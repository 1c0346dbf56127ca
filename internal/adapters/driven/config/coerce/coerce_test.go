package coerce

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	assert.Equal(t, "ollama", String("ollama"))
	assert.Equal(t, "8", String(8))
	assert.Equal(t, "30", String(int64(30)))
	assert.Empty(t, String(true))
	assert.Empty(t, String(nil))
}

func TestInt(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int
	}{
		{"int", 5, 5},
		{"int64", int64(30), 30},
		{"float64", float64(60), 60},
		{"numeric string", " 45 ", 45},
		{"non numeric string", "soon", 0},
		{"bool", true, 0},
		{"nil", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Int(tt.value))
		})
	}
}

func TestBool(t *testing.T) {
	assert.True(t, Bool(true))
	assert.True(t, Bool(" true "))
	assert.True(t, Bool("1"))
	assert.False(t, Bool("nope"))
	assert.False(t, Bool(1))
}

func TestStrings(t *testing.T) {
	assert.Equal(t, []string{"chunker", "dedupe"}, Strings([]string{"chunker", "dedupe"}))
	assert.Equal(t, []string{"chunker", "annotate"}, Strings([]any{"chunker", 3, "annotate"}))
	assert.Equal(t, []string{"http://a", "http://b"}, Strings("http://a, http://b,,"))
	assert.Nil(t, Strings(""))
	assert.Nil(t, Strings(42))
}
