package touchstone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/touchstone/pkg/frequency"
)

func resampleFixture(t *testing.T) *Network {
	t.Helper()
	nw := New()
	require.NoError(t, nw.Read("# Hz S RI\n100 1 1\n200 3 3\n", 1))
	return nw
}

func TestResampleMidpoint(t *testing.T) {
	nw := resampleFixture(t)
	require.NoError(t, nw.Resample([]float64{100, 150, 200}))

	assert.Equal(t, []float64{100, 150, 200}, nw.Freq.Values())
	assert.InDelta(t, 1, real(nw.Matrix[0][0][0]), 1e-12)
	assert.InDelta(t, 2, real(nw.Matrix[0][0][1]), 1e-12)
	assert.InDelta(t, 2, imag(nw.Matrix[0][0][1]), 1e-12)
	assert.InDelta(t, 3, real(nw.Matrix[0][0][2]), 1e-12)
}

func TestResampleKeepsUnit(t *testing.T) {
	nw := New()
	require.NoError(t, nw.Read("# MHz S RI\n100 1 0\n200 3 0\n", 1))
	require.NoError(t, nw.Resample([]float64{150e6}))

	assert.Equal(t, frequency.MHz, nw.Freq.Unit())
	assert.InDelta(t, 150, nw.Freq.Values()[0], 1e-6)
	assert.InDelta(t, 2, real(nw.Matrix[0][0][0]), 1e-9)
}

func TestResampleOutOfRange(t *testing.T) {
	nw := resampleFixture(t)
	assert.ErrorIs(t, nw.Resample([]float64{50}), ErrOutOfRange)
	assert.ErrorIs(t, nw.Resample([]float64{250}), ErrOutOfRange)

	// Model untouched after the failure
	assert.Equal(t, []float64{100, 200}, nw.Freq.Values())
}

func TestResampleTooFewPoints(t *testing.T) {
	nw := New()
	require.NoError(t, nw.Read("# Hz S RI\n100 1 1\n", 1))
	assert.ErrorIs(t, nw.Resample([]float64{100}), ErrTooFewPoints)
}

func TestResampleUnsorted(t *testing.T) {
	nw := New()
	require.NoError(t, nw.Read("# Hz S RI\n200 3 3\n100 1 1\n", 1))
	assert.ErrorIs(t, nw.Resample([]float64{150}), ErrUnsortedFrequency)
}

func TestResampleNoTargets(t *testing.T) {
	nw := resampleFixture(t)
	assert.ErrorIs(t, nw.Resample(nil), ErrEmptyFrequency)
}
