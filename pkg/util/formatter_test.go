package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFrequency(t *testing.T) {
	assert.Contains(t, FormatFrequency(2.4e12), "THz")
	assert.Contains(t, FormatFrequency(2.4e9), "GHz")
	assert.Contains(t, FormatFrequency(433.92e6), "MHz")
	assert.Contains(t, FormatFrequency(1500), "kHz")
	assert.Contains(t, FormatFrequency(60), "Hz")
}

func TestFormatMagnitudePhase(t *testing.T) {
	s := FormatMagnitudePhase("S11", 0.99, -4)
	assert.Contains(t, s, "S11=")
	assert.Contains(t, s, "deg")
	assert.Contains(t, s, "0.99")
}

func TestFormatMagnitude(t *testing.T) {
	assert.Contains(t, FormatMagnitude(1e4), "e+04")
	assert.Contains(t, FormatMagnitude(5.43e-5), "e-05")
	assert.Contains(t, FormatMagnitude(0.5), "0.5")
}
