package frequency

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/edp1096/touchstone/internal/consts"
)

var (
	ErrUnknownUnit       = errors.New("unknown frequency unit")
	ErrNegativeFrequency = errors.New("negative frequency")
	ErrZeroWavelength    = errors.New("zero wavelength")
)

type Unit int

const (
	Hz Unit = iota
	KHz
	MHz
	GHz
	THz // conversion target only, not a valid file unit
)

var unitNames = map[Unit]string{
	Hz:  "Hz",
	KHz: "kHz",
	MHz: "MHz",
	GHz: "GHz",
	THz: "THz",
}

var unitMultipliers = map[Unit]float64{
	Hz:  1,
	KHz: 1e3,
	MHz: 1e6,
	GHz: 1e9,
	THz: 1e12,
}

func (u Unit) String() string {
	return unitNames[u]
}

func (u Unit) multiplier() float64 {
	return unitMultipliers[u]
}

// ParseUnit matches a Touchstone frequency unit token case-insensitively.
// THz is rejected here: it is a conversion target, never a file unit.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(s) {
	case "hz":
		return Hz, nil
	case "khz":
		return KHz, nil
	case "mhz":
		return MHz, nil
	case "ghz":
		return GHz, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}

type LengthUnit int

const (
	Meter LengthUnit = iota
	Centimeter
	Millimeter
	Micrometer
	Nanometer
)

var lengthMeters = map[LengthUnit]float64{
	Meter:      1,
	Centimeter: 1e-2,
	Millimeter: 1e-3,
	Micrometer: 1e-6,
	Nanometer:  1e-9,
}

// Axis is an ordered frequency sweep. Values are stored in the current
// unit; every other unit and the wavelength views are computed on demand.
type Axis struct {
	unit   Unit
	values []float64
}

func New() *Axis {
	return &Axis{unit: Hz}
}

func (a *Axis) Unit() Unit {
	return a.unit
}

func (a *Axis) Len() int {
	return len(a.values)
}

// SetUnit changes the storage unit. Stored values are rescaled so the
// physical frequency is unchanged.
func (a *Axis) SetUnit(u Unit) error {
	if u == THz {
		return fmt.Errorf("%w: %q", ErrUnknownUnit, u)
	}
	if _, ok := unitMultipliers[u]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownUnit, u)
	}
	if u == a.unit {
		return nil
	}
	if len(a.values) > 0 {
		ratio := a.unit.multiplier() / u.multiplier()
		for i := range a.values {
			a.values[i] *= ratio
		}
	}
	a.unit = u
	return nil
}

// SetValues replaces the stored values verbatim. They are taken to be in
// the current unit already.
func (a *Axis) SetValues(v []float64) error {
	for _, f := range v {
		if f < 0 {
			return fmt.Errorf("%w: %g", ErrNegativeFrequency, f)
		}
	}
	a.values = append([]float64(nil), v...)
	return nil
}

// Values returns a copy of the stored values in the current unit.
func (a *Axis) Values() []float64 {
	return append([]float64(nil), a.values...)
}

// ValuesIn returns the values converted to u. THz is allowed here.
func (a *Axis) ValuesIn(u Unit) []float64 {
	out := make([]float64, len(a.values))
	ratio := a.unit.multiplier() / u.multiplier()
	for i, f := range a.values {
		out[i] = f * ratio
	}
	return out
}

// SetValuesIn converts v from u to the current unit and stores the result.
func (a *Axis) SetValuesIn(u Unit, v []float64) error {
	if len(v) == 0 {
		a.values = nil
		return nil
	}
	ratio := u.multiplier() / a.unit.multiplier()
	converted := make([]float64, len(v))
	for i, f := range v {
		converted[i] = f * ratio
	}
	return a.SetValues(converted)
}

// Wavelengths returns the free-space wavelength of every sample in lu.
// Zero frequency maps to +Inf.
func (a *Axis) Wavelengths(lu LengthUnit) []float64 {
	out := make([]float64, len(a.values))
	mult := a.unit.multiplier()
	for i, f := range a.values {
		hz := f * mult
		if hz == 0 {
			out[i] = math.Inf(1)
			continue
		}
		out[i] = consts.SPEED_OF_LIGHT / hz / lengthMeters[lu]
	}
	return out
}

// SetWavelengths stores the frequencies corresponding to the given
// wavelengths. An empty slice clears the axis; a zero wavelength has no
// finite frequency and is rejected.
func (a *Axis) SetWavelengths(lu LengthUnit, w []float64) error {
	if len(w) == 0 {
		a.values = nil
		return nil
	}
	values := make([]float64, len(w))
	for i, l := range w {
		if l == 0 {
			return fmt.Errorf("%w at index %d", ErrZeroWavelength, i)
		}
		hz := consts.SPEED_OF_LIGHT / (l * lengthMeters[lu])
		values[i] = hz / a.unit.multiplier()
	}
	return a.SetValues(values)
}
