// Package touchstone reads and writes Touchstone 1.0/1.1 network
// parameter files (.sNp).
package touchstone

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"github.com/edp1096/touchstone/internal/consts"
	"github.com/edp1096/touchstone/pkg/frequency"
)

var (
	ErrUnknownParameter       = errors.New("unknown parameter type")
	ErrUnknownFormat          = errors.New("unknown format")
	ErrInvalidPorts           = errors.New("invalid port count")
	ErrMissingOptionLine      = errors.New("missing option line")
	ErrMultipleOptionLines    = errors.New("multiple option lines")
	ErrUnknownImpedanceToken  = errors.New("unknown impedance token")
	ErrInvalidImpedance       = errors.New("invalid impedance")
	ErrImpedanceCountMismatch = errors.New("impedance count mismatch")
	ErrInvalidData            = errors.New("invalid data token")
	ErrInvalidDataCount       = errors.New("invalid data count")
	ErrEmptyFrequency         = errors.New("no frequency points")
	ErrMissingParameter       = errors.New("parameter type not set")
	ErrMissingFormat          = errors.New("format not set")
	ErrMatrixShape            = errors.New("matrix shape mismatch")
)

// Parameter is the network parameter set stored in a file.
type Parameter string

const (
	ParamS Parameter = "S" // Scattering
	ParamY Parameter = "Y" // Admittance
	ParamZ Parameter = "Z" // Impedance
	ParamG Parameter = "G" // Hybrid-G
	ParamH Parameter = "H" // Hybrid-H
)

func ParseParameter(s string) (Parameter, error) {
	switch strings.ToUpper(s) {
	case "S":
		return ParamS, nil
	case "Y":
		return ParamY, nil
	case "Z":
		return ParamZ, nil
	case "G":
		return ParamG, nil
	case "H":
		return ParamH, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownParameter, s)
}

// Format is the on-disk encoding of each complex sample.
type Format string

const (
	FormatRI Format = "RI" // real, imaginary
	FormatMA Format = "MA" // magnitude, angle in degrees
	FormatDB Format = "DB" // 20*log10(magnitude), angle in degrees
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToUpper(s) {
	case "RI":
		return FormatRI, nil
	case "MA":
		return FormatMA, nil
	case "DB":
		return FormatDB, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Network is an N-port network parameter model.
type Network struct {
	Comments  []string         // Header comment lines, order preserved
	Parameter Parameter        // S, Y, Z, G, H
	Format    Format           // RI, MA, DB
	Impedance []float64        // Length 1: all ports. Length Ports: per-port (1.1)
	Ports     int              // Port count, from the .sNp filename convention
	Freq      *frequency.Axis  // One value per sample point
	Matrix    [][][]complex128 // [outputPort][inputPort][frequencyIndex]
}

func New() *Network {
	return &Network{
		Impedance: []float64{consts.DEFAULT_IMPEDANCE},
		Freq:      frequency.New(),
	}
}

// matrixIndex maps the p-th parameter pair of a record to matrix
// coordinates. Two-port files list pairs column-major (S11 S21 S12 S22);
// every other port count is row-major. Read and Write share this so the
// two directions cannot drift apart.
func matrixIndex(nports, p int) (out, in int) {
	out = p / nports
	in = p % nports
	if nports == 2 {
		return in, out
	}
	return out, in
}

func decode(f Format, a, b float64) complex128 {
	switch f {
	case FormatMA:
		return cmplx.Rect(a, b*math.Pi/180)
	case FormatDB:
		return cmplx.Rect(math.Pow(10, a/20), b*math.Pi/180)
	default: // RI
		return complex(a, b)
	}
}

func encode(f Format, v complex128) (a, b float64) {
	switch f {
	case FormatMA:
		return cmplx.Abs(v), cmplx.Phase(v) * 180 / math.Pi
	case FormatDB:
		return 20 * math.Log10(cmplx.Abs(v)), cmplx.Phase(v) * 180 / math.Pi
	default: // RI
		return real(v), imag(v)
	}
}

func newMatrix(nports, points int) [][][]complex128 {
	m := make([][][]complex128, nports)
	for i := range m {
		m[i] = make([][]complex128, nports)
		for j := range m[i] {
			m[i][j] = make([]complex128, points)
		}
	}
	return m
}

// Validate checks that Matrix is Ports x Ports with one value per
// frequency point in every cell.
func (nw *Network) Validate() error {
	if nw.Ports < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidPorts, nw.Ports)
	}
	if nw.Freq == nil || nw.Freq.Len() == 0 {
		return ErrEmptyFrequency
	}
	points := nw.Freq.Len()
	if len(nw.Matrix) != nw.Ports {
		return fmt.Errorf("%w: %d rows for %d ports", ErrMatrixShape, len(nw.Matrix), nw.Ports)
	}
	for i, row := range nw.Matrix {
		if len(row) != nw.Ports {
			return fmt.Errorf("%w: row %d has %d columns for %d ports", ErrMatrixShape, i+1, len(row), nw.Ports)
		}
		for j, cell := range row {
			if len(cell) != points {
				return fmt.Errorf("%w: entry (%d,%d) has %d values for %d frequency points",
					ErrMatrixShape, i+1, j+1, len(cell), points)
			}
		}
	}
	return nil
}
