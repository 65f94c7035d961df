package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 42, ParseIntDefault("42", 7))
	assert.Equal(t, 7, ParseIntDefault("", 7))
	assert.Equal(t, 7, ParseIntDefault("abc", 7))
	assert.Equal(t, -3, ParseIntDefault("-3", 7))
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 5, ClampInt(5, 1, 10))
	assert.Equal(t, 1, ClampInt(-4, 1, 10))
	assert.Equal(t, 10, ClampInt(99, 1, 10))
}

func TestMaxInt(t *testing.T) {
	assert.Equal(t, 9, MaxInt(3, 9))
	assert.Equal(t, 9, MaxInt(9, 3))
	assert.Equal(t, 3, MaxInt(3, 3))
}
