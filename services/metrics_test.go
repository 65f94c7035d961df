package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentOf(t *testing.T) {
	assert.Equal(t, 0, percentOf(0, 5))
	assert.Equal(t, 40, percentOf(2, 5))
	assert.Equal(t, 100, percentOf(5, 5))

	// overshooting the goal clamps at 100
	assert.Equal(t, 100, percentOf(12, 5))

	// a zero or negative goal reads as already complete
	assert.Equal(t, 100, percentOf(3, 0))
	assert.Equal(t, 100, percentOf(0, -1))
}

func TestAdvanceRate(t *testing.T) {
	assert.Equal(t, 0, advanceRate(0, 10))
	assert.Equal(t, 0, advanceRate(0, 0))
	assert.Equal(t, 25, advanceRate(5, 20))
	assert.Equal(t, 100, advanceRate(10, 10))

	// rounds up: a single advanced application out of many still registers
	assert.Equal(t, 1, advanceRate(1, 150))
	assert.Equal(t, 34, advanceRate(1, 3))
}
