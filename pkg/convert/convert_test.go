package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/touchstone/pkg/touchstone"
)

func TestSToZOnePort(t *testing.T) {
	// A matched port (S=0) looks like the reference impedance.
	z, err := SToZ([][]complex128{{0}}, []float64{50})
	require.NoError(t, err)
	assert.InDelta(t, 50, real(z[0][0]), 1e-9)
	assert.InDelta(t, 0, imag(z[0][0]), 1e-9)
}

func TestZToSOnePort(t *testing.T) {
	// z=100 against z0=50: s = (100-50)/(100+50) = 1/3
	s, err := ZToS([][]complex128{{100}}, []float64{50})
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3.0, real(s[0][0]), 1e-9)
	assert.InDelta(t, 0, imag(s[0][0]), 1e-9)
}

func TestSToYOnePort(t *testing.T) {
	y, err := SToY([][]complex128{{0}}, []float64{50})
	require.NoError(t, err)
	assert.InDelta(t, 1.0/50.0, real(y[0][0]), 1e-12)
}

func TestYToSOnePort(t *testing.T) {
	// y = 1/100 against z0=50 matches z=100: s = 1/3
	s, err := YToS([][]complex128{{complex(1.0/100.0, 0)}}, []float64{50})
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3.0, real(s[0][0]), 1e-9)
}

func TestSToZRoundTripTwoPort(t *testing.T) {
	s := [][]complex128{
		{complex(0.2, -0.1), complex(0.05, 0.02)},
		{complex(0.8, 0.1), complex(0.3, -0.2)},
	}
	z0 := []float64{50, 75}

	z, err := SToZ(s, z0)
	require.NoError(t, err)
	back, err := ZToS(z, z0)
	require.NoError(t, err)

	for i := range 2 {
		for j := range 2 {
			assert.InDelta(t, real(s[i][j]), real(back[i][j]), 1e-9)
			assert.InDelta(t, imag(s[i][j]), imag(back[i][j]), 1e-9)
		}
	}
}

func TestSToYRoundTripTwoPort(t *testing.T) {
	s := [][]complex128{
		{complex(0.1, 0.3), complex(0.4, 0)},
		{complex(0.4, 0), complex(-0.2, 0.1)},
	}
	z0 := []float64{50}

	y, err := SToY(s, z0)
	require.NoError(t, err)
	back, err := YToS(y, z0)
	require.NoError(t, err)

	for i := range 2 {
		for j := range 2 {
			assert.InDelta(t, real(s[i][j]), real(back[i][j]), 1e-9)
			assert.InDelta(t, imag(s[i][j]), imag(back[i][j]), 1e-9)
		}
	}
}

func TestExpandZ0Errors(t *testing.T) {
	_, err := SToZ([][]complex128{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}, []float64{50, 75})
	assert.ErrorIs(t, err, touchstone.ErrImpedanceCountMismatch)

	_, err = SToZ([][]complex128{{0}}, []float64{-50})
	assert.ErrorIs(t, err, ErrBadImpedance)

	_, err = SToZ([][]complex128{{0}}, []float64{0})
	assert.ErrorIs(t, err, ErrBadImpedance)
}

func TestConvertNetwork(t *testing.T) {
	nw := touchstone.New()
	require.NoError(t, nw.Read("# GHz S RI R 50\n1 0 0\n2 0.5 0\n", 1))

	require.NoError(t, Convert(nw, touchstone.ParamZ))
	assert.Equal(t, touchstone.ParamZ, nw.Parameter)
	assert.InDelta(t, 50, real(nw.Matrix[0][0][0]), 1e-9)
	assert.InDelta(t, 150, real(nw.Matrix[0][0][1]), 1e-9) // 50*(1.5/0.5)

	require.NoError(t, Convert(nw, touchstone.ParamS))
	assert.Equal(t, touchstone.ParamS, nw.Parameter)
	assert.InDelta(t, 0, real(nw.Matrix[0][0][0]), 1e-9)
	assert.InDelta(t, 0.5, real(nw.Matrix[0][0][1]), 1e-9)
}

func TestConvertNoop(t *testing.T) {
	nw := touchstone.New()
	require.NoError(t, nw.Read("# GHz S RI\n1 0.25 0\n", 1))
	require.NoError(t, Convert(nw, touchstone.ParamS))
	assert.Equal(t, complex(0.25, 0), nw.Matrix[0][0][0])
}

func TestConvertUnsupported(t *testing.T) {
	nw := touchstone.New()
	require.NoError(t, nw.Read("# GHz H RI\n1 0.25 0\n", 1))
	assert.ErrorIs(t, Convert(nw, touchstone.ParamS), ErrUnsupportedConversion)

	require.NoError(t, nw.Read("# GHz S RI\n1 0.25 0\n", 1))
	assert.ErrorIs(t, Convert(nw, touchstone.ParamH), ErrUnsupportedConversion)
}
