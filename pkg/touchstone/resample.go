package touchstone

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/interp"

	"github.com/edp1096/touchstone/pkg/frequency"
)

var (
	ErrTooFewPoints      = errors.New("too few frequency points to resample")
	ErrUnsortedFrequency = errors.New("frequency values must be strictly increasing")
	ErrOutOfRange        = errors.New("target frequency outside source span")
)

// Resample interpolates every matrix entry onto a new frequency axis
// given in Hz. Real and imaginary parts are interpolated separately,
// piecewise linearly. Targets must lie within the source span; the model
// is only modified once every target point has been interpolated.
func (nw *Network) Resample(hz []float64) error {
	if err := nw.Validate(); err != nil {
		return err
	}

	if len(hz) == 0 {
		return fmt.Errorf("%w: no target points", ErrEmptyFrequency)
	}

	src := nw.Freq.ValuesIn(frequency.Hz)
	if len(src) < 2 {
		return fmt.Errorf("%w: have %d", ErrTooFewPoints, len(src))
	}
	for k := 1; k < len(src); k++ {
		if src[k] <= src[k-1] {
			return fmt.Errorf("%w: %g Hz after %g Hz", ErrUnsortedFrequency, src[k], src[k-1])
		}
	}
	for _, f := range hz {
		if f < src[0] || f > src[len(src)-1] {
			return fmt.Errorf("%w: %g Hz not in [%g, %g]", ErrOutOfRange, f, src[0], src[len(src)-1])
		}
	}

	re := make([]float64, len(src))
	im := make([]float64, len(src))
	resampled := newMatrix(nw.Ports, len(hz))
	for i := range nw.Ports {
		for j := range nw.Ports {
			for k, v := range nw.Matrix[i][j] {
				re[k] = real(v)
				im[k] = imag(v)
			}
			var pr, pi interp.PiecewiseLinear
			if err := pr.Fit(src, re); err != nil {
				return err
			}
			if err := pi.Fit(src, im); err != nil {
				return err
			}
			for k, f := range hz {
				resampled[i][j][k] = complex(pr.Predict(f), pi.Predict(f))
			}
		}
	}

	if err := nw.Freq.SetValuesIn(frequency.Hz, hz); err != nil {
		return err
	}
	nw.Matrix = resampled

	return nil
}
