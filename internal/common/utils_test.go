package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrDefault(t *testing.T) {
	assert.Equal(t, 23.5, OrDefault(23.5, 0))
	assert.Equal(t, 50.0, OrDefault(math.NaN(), 50))
	assert.Equal(t, 50.0, OrDefault(math.Inf(1), 50))
	assert.Equal(t, 50.0, OrDefault(math.Inf(-1), 50))
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 23.5, Round1(23.46))
	assert.Equal(t, 23.4, Round1(23.44))
	assert.Equal(t, -1.2, Round1(-1.15))
	assert.Equal(t, 0.0, Round1(0.04))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5.0, Clamp(5, 0, 10))
	assert.Equal(t, 0.0, Clamp(-3, 0, 10))
	assert.Equal(t, 10.0, Clamp(42, 0, 10))
}
