// Package matrix wraps the sparse solver for dense complex N x N systems.
package matrix

import (
	"errors"
	"fmt"

	"github.com/edp1096/sparse"
)

var ErrSingular = errors.New("singular matrix")

type ComplexMatrix struct {
	Size   int
	matrix *sparse.Matrix
	config *sparse.Configuration
}

func New(size int) (*ComplexMatrix, error) {
	config := &sparse.Configuration{
		Real:                    true,
		Complex:                 true,
		SeparatedComplexVectors: true,
		Expandable:              true,
		Translate:               false,
		ModifiedNodal:           true,
		TiesMultiplier:          5,
		PrinterWidth:            140,
		Annotate:                0,
	}

	mat, err := sparse.Create(int64(size), config)
	if err != nil {
		return nil, fmt.Errorf("creating sparse matrix: %v", err)
	}

	return &ComplexMatrix{
		Size:   size,
		matrix: mat,
		config: config,
	}, nil
}

// Set assigns element (i, j), 1-based.
func (m *ComplexMatrix) Set(i, j int, value complex128) error {
	if i <= 0 || j <= 0 || i > m.Size || j > m.Size {
		return fmt.Errorf("matrix index out of bounds (i=%d, j=%d, size=%d)", i, j, m.Size)
	}
	element := m.matrix.GetElement(int64(i), int64(j))
	element.Real = real(value)
	element.Imag = imag(value)
	return nil
}

func (m *ComplexMatrix) Clear() {
	m.matrix.Clear()
}

func (m *ComplexMatrix) Factor() error {
	if err := m.matrix.Factor(); err != nil {
		return fmt.Errorf("%w: %v", ErrSingular, err)
	}
	return nil
}

// Solve returns x with A*x = rhs for the factored matrix. rhs and the
// result are 0-based with length Size; the solver itself is 1-based with
// separated real and imaginary vectors.
func (m *ComplexMatrix) Solve(rhs []complex128) ([]complex128, error) {
	if len(rhs) != m.Size {
		return nil, fmt.Errorf("rhs length %d, matrix size %d", len(rhs), m.Size)
	}

	b := make([]float64, m.Size+1)
	ib := make([]float64, m.Size+1)
	for i, v := range rhs {
		b[i+1] = real(v)
		ib[i+1] = imag(v)
	}

	x, ix, err := m.matrix.SolveComplex(b, ib)
	if err != nil {
		return nil, fmt.Errorf("matrix solve failed: %v", err)
	}

	solution := make([]complex128, m.Size)
	for i := range solution {
		solution[i] = complex(x[i+1], ix[i+1])
	}
	return solution, nil
}

func (m *ComplexMatrix) Destroy() {
	if m.matrix != nil {
		m.matrix.Destroy()
	}
}
