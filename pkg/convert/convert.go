// Package convert changes a network between parameter sets (S, Z, Y)
// using real reference impedances.
package convert

import (
	"errors"
	"fmt"
	"math"

	"github.com/edp1096/touchstone/pkg/matrix"
	"github.com/edp1096/touchstone/pkg/touchstone"
)

var (
	ErrBadImpedance          = errors.New("invalid reference impedance")
	ErrUnsupportedConversion = errors.New("unsupported parameter conversion")
)

// expandZ0 broadcasts a scalar reference impedance to every port and
// rejects non-positive values, which have no real square root scaling.
func expandZ0(z0 []float64, nports int) ([]float64, error) {
	switch len(z0) {
	case 1:
		expanded := make([]float64, nports)
		for i := range expanded {
			expanded[i] = z0[0]
		}
		z0 = expanded
	case nports:
	default:
		return nil, fmt.Errorf("%w: %d-ports network, but find %d impedances",
			touchstone.ErrImpedanceCountMismatch, nports, len(z0))
	}
	for i, z := range z0 {
		if z <= 0 {
			return nil, fmt.Errorf("%w: port %d has z0=%g", ErrBadImpedance, i+1, z)
		}
	}
	return z0, nil
}

// solveColumns returns X with A*X = B by factoring A once and solving
// one column of B at a time.
func solveColumns(a, b [][]complex128) ([][]complex128, error) {
	n := len(a)
	m, err := matrix.New(n)
	if err != nil {
		return nil, err
	}
	defer m.Destroy()

	m.Clear()
	for i := range n {
		for j := range n {
			if err := m.Set(i+1, j+1, a[i][j]); err != nil {
				return nil, err
			}
		}
	}
	if err := m.Factor(); err != nil {
		return nil, err
	}

	x := newSquare(n)
	rhs := make([]complex128, n)
	for j := range n {
		for i := range n {
			rhs[i] = b[i][j]
		}
		col, err := m.Solve(rhs)
		if err != nil {
			return nil, err
		}
		for i := range n {
			x[i][j] = col[i]
		}
	}
	return x, nil
}

func newSquare(n int) [][]complex128 {
	m := make([][]complex128, n)
	for i := range m {
		m[i] = make([]complex128, n)
	}
	return m
}

func matmul(a, b [][]complex128) [][]complex128 {
	n := len(a)
	c := newSquare(n)
	for i := range n {
		for j := range n {
			var sum complex128
			for k := range n {
				sum += a[i][k] * b[k][j]
			}
			c[i][j] = sum
		}
	}
	return c
}

// SToZ converts one frequency snapshot of S-parameters to Z-parameters:
// Z = sqrt(Z0) (I-S)^-1 (I+S) sqrt(Z0).
func SToZ(s [][]complex128, z0 []float64) ([][]complex128, error) {
	n := len(s)
	z0, err := expandZ0(z0, n)
	if err != nil {
		return nil, err
	}

	iMinus := newSquare(n)
	iPlus := newSquare(n)
	for i := range n {
		for j := range n {
			iMinus[i][j] = -s[i][j]
			iPlus[i][j] = s[i][j]
		}
		iMinus[i][i] += 1
		iPlus[i][i] += 1
	}

	w, err := solveColumns(iMinus, iPlus)
	if err != nil {
		return nil, err
	}

	z := newSquare(n)
	for i := range n {
		for j := range n {
			z[i][j] = complex(math.Sqrt(z0[i])*math.Sqrt(z0[j]), 0) * w[i][j]
		}
	}
	return z, nil
}

// ZToS converts one frequency snapshot of Z-parameters to S-parameters:
// S = sqrt(Z0)^-1 (Z-Z0) (Z+Z0)^-1 sqrt(Z0).
func ZToS(z [][]complex128, z0 []float64) ([][]complex128, error) {
	n := len(z)
	z0, err := expandZ0(z0, n)
	if err != nil {
		return nil, err
	}

	zMinus := newSquare(n)
	zPlus := newSquare(n)
	sqrtZ0 := newSquare(n)
	for i := range n {
		copy(zMinus[i], z[i])
		copy(zPlus[i], z[i])
		zMinus[i][i] -= complex(z0[i], 0)
		zPlus[i][i] += complex(z0[i], 0)
		sqrtZ0[i][i] = complex(math.Sqrt(z0[i]), 0)
	}

	// X = (Z+Z0)^-1 sqrt(Z0)
	x, err := solveColumns(zPlus, sqrtZ0)
	if err != nil {
		return nil, err
	}

	s := matmul(zMinus, x)
	for i := range n {
		for j := range n {
			s[i][j] /= complex(math.Sqrt(z0[i]), 0)
		}
	}
	return s, nil
}

// SToY converts one frequency snapshot of S-parameters to Y-parameters:
// Y = sqrt(Z0)^-1 (I+S)^-1 (I-S) sqrt(Z0)^-1.
func SToY(s [][]complex128, z0 []float64) ([][]complex128, error) {
	n := len(s)
	z0, err := expandZ0(z0, n)
	if err != nil {
		return nil, err
	}

	iMinus := newSquare(n)
	iPlus := newSquare(n)
	for i := range n {
		for j := range n {
			iMinus[i][j] = -s[i][j]
			iPlus[i][j] = s[i][j]
		}
		iMinus[i][i] += 1
		iPlus[i][i] += 1
	}

	w, err := solveColumns(iPlus, iMinus)
	if err != nil {
		return nil, err
	}

	y := newSquare(n)
	for i := range n {
		for j := range n {
			y[i][j] = w[i][j] / complex(math.Sqrt(z0[i])*math.Sqrt(z0[j]), 0)
		}
	}
	return y, nil
}

// YToS converts one frequency snapshot of Y-parameters to S-parameters:
// with M = sqrt(Z0) Y sqrt(Z0), S = (I+M)^-1 (I-M).
func YToS(y [][]complex128, z0 []float64) ([][]complex128, error) {
	n := len(y)
	z0, err := expandZ0(z0, n)
	if err != nil {
		return nil, err
	}

	iMinus := newSquare(n)
	iPlus := newSquare(n)
	for i := range n {
		for j := range n {
			m := complex(math.Sqrt(z0[i])*math.Sqrt(z0[j]), 0) * y[i][j]
			iMinus[i][j] = -m
			iPlus[i][j] = m
		}
		iMinus[i][i] += 1
		iPlus[i][i] += 1
	}

	return solveColumns(iPlus, iMinus)
}

// Convert rewrites the whole network in the target parameter set. Only
// S<->Z and S<->Y are supported; hybrid G/H parameters are read and
// written verbatim but not converted.
func Convert(nw *touchstone.Network, target touchstone.Parameter) error {
	if err := nw.Validate(); err != nil {
		return err
	}
	if nw.Parameter == target {
		return nil
	}

	var conv func([][]complex128, []float64) ([][]complex128, error)
	switch {
	case nw.Parameter == touchstone.ParamS && target == touchstone.ParamZ:
		conv = SToZ
	case nw.Parameter == touchstone.ParamZ && target == touchstone.ParamS:
		conv = ZToS
	case nw.Parameter == touchstone.ParamS && target == touchstone.ParamY:
		conv = SToY
	case nw.Parameter == touchstone.ParamY && target == touchstone.ParamS:
		conv = YToS
	default:
		return fmt.Errorf("%w: %s to %s", ErrUnsupportedConversion, nw.Parameter, target)
	}

	// Convert into a fresh matrix so a failure partway through the sweep
	// leaves the model untouched.
	points := nw.Freq.Len()
	result := make([][][]complex128, nw.Ports)
	for i := range result {
		result[i] = make([][]complex128, nw.Ports)
		for j := range result[i] {
			result[i][j] = make([]complex128, points)
		}
	}

	snapshot := newSquare(nw.Ports)
	for k := range points {
		for i := range nw.Ports {
			for j := range nw.Ports {
				snapshot[i][j] = nw.Matrix[i][j][k]
			}
		}
		converted, err := conv(snapshot, nw.Impedance)
		if err != nil {
			return fmt.Errorf("converting point %d: %w", k, err)
		}
		for i := range nw.Ports {
			for j := range nw.Ports {
				result[i][j][k] = converted[i][j]
			}
		}
	}

	nw.Matrix = result
	nw.Parameter = target
	return nil
}
