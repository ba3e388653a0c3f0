package touchstone

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/edp1096/touchstone/internal/consts"
	"github.com/edp1096/touchstone/pkg/frequency"
)

// Read parses a Touchstone 1.0/1.1 file body into the model, replacing
// every field. nports comes from the caller, typically from the .sNp
// filename suffix.
//
// Header fields (comments, unit, parameter, format, impedance, port
// count) are committed before the data block is checked, so a caller can
// still inspect them for diagnostics after ErrInvalidDataCount.
func (nw *Network) Read(text string, nports int) error {
	if nports < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidPorts, nports)
	}

	nw.Ports = nports
	nw.Comments = nil
	nw.Parameter = ""
	nw.Format = ""
	nw.Impedance = []float64{consts.DEFAULT_IMPEDANCE}
	nw.Freq = frequency.New()
	nw.Matrix = nil

	var optionLines []string
	var dataLines []string

	// A whole data block may legally sit on one physical line, so split
	// directly instead of scanning with a line-length limit.
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		if strings.HasPrefix(line, "!") { // Comment line
			nw.Comments = append(nw.Comments, strings.TrimSpace(line[1:]))
			continue
		}

		if strings.HasPrefix(line, "#") { // Option line
			optionLines = append(optionLines, line)
			continue
		}

		// Trailing comment on a data line
		if idx := strings.Index(line, "!"); idx >= 0 {
			if comment := strings.TrimSpace(line[idx+1:]); comment != "" {
				nw.Comments = append(nw.Comments, comment)
			}
			line = strings.TrimSpace(line[:idx])
			if len(line) == 0 {
				continue
			}
		}

		dataLines = append(dataLines, line)
	}

	switch len(optionLines) {
	case 1:
	case 0:
		return ErrMissingOptionLine
	default:
		return fmt.Errorf("%w: found %d", ErrMultipleOptionLines, len(optionLines))
	}
	if err := nw.parseOptionLine(optionLines[0]); err != nil {
		return err
	}

	tokens := strings.Fields(strings.Join(dataLines, " "))
	data := make([]float64, len(tokens))
	for i, tok := range tokens {
		value, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidData, tok)
		}
		data[i] = value
	}

	columns := 2*nports*nports + 1
	if len(data)%columns != 0 {
		return fmt.Errorf("%w: %d tokens, want a multiple of %d for %d ports",
			ErrInvalidDataCount, len(data), columns, nports)
	}
	points := len(data) / columns

	freqs := make([]float64, points)
	for k := range points {
		freqs[k] = data[k*columns]
	}
	if err := nw.Freq.SetValues(freqs); err != nil {
		return err
	}

	nw.Matrix = newMatrix(nports, points)
	for k := range points {
		base := k * columns
		for p := range nports * nports {
			a := data[base+2*p+1]
			b := data[base+2*p+2]
			out, in := matrixIndex(nports, p)
			nw.Matrix[out][in][k] = decode(nw.Format, a, b)
		}
	}

	return nil
}

// parseOptionLine consumes the "# <unit> <parameter> <format> [R <imp>+]"
// header tokens in order.
func (nw *Network) parseOptionLine(line string) error {
	tokens := strings.Fields(strings.TrimPrefix(line, "#"))
	next := func() string {
		if len(tokens) == 0 {
			return ""
		}
		tok := tokens[0]
		tokens = tokens[1:]
		return tok
	}

	unit, err := frequency.ParseUnit(next())
	if err != nil {
		return err
	}
	if err := nw.Freq.SetUnit(unit); err != nil {
		return err
	}

	if nw.Parameter, err = ParseParameter(next()); err != nil {
		return err
	}
	if nw.Format, err = ParseFormat(next()); err != nil {
		return err
	}

	if len(tokens) == 0 { // No R clause, keep default impedance
		return nil
	}
	if tok := next(); !strings.EqualFold(tok, "R") {
		return fmt.Errorf("%w: %q", ErrUnknownImpedanceToken, tok)
	}
	if len(tokens) == 0 {
		return fmt.Errorf("%w: no value after R", ErrInvalidImpedance)
	}

	impedance := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		value, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidImpedance, tok)
		}
		impedance = append(impedance, value)
	}
	if len(impedance) != 1 && len(impedance) != nw.Ports {
		return fmt.Errorf("%w: %d-ports network, but find %d impedances",
			ErrImpedanceCountMismatch, nw.Ports, len(impedance))
	}
	nw.Impedance = impedance

	return nil
}
