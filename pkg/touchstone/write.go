package touchstone

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/edp1096/touchstone/internal/consts"
)

// Write serializes the model back to Touchstone text. It is the exact
// inverse of Read: the same pair order is used, so a read/write cycle
// reproduces the original records. All preconditions are checked before
// any text is produced.
func (nw *Network) Write() (string, error) {
	if err := nw.Validate(); err != nil {
		return "", err
	}
	if nw.Parameter == "" {
		return "", ErrMissingParameter
	}
	if nw.Format == "" {
		return "", ErrMissingFormat
	}

	impedance := nw.Impedance
	if len(impedance) == 0 {
		impedance = []float64{consts.DEFAULT_IMPEDANCE}
	}
	if len(impedance) != 1 && len(impedance) != nw.Ports {
		return "", fmt.Errorf("%w: %d-ports network, but find %d impedances",
			ErrImpedanceCountMismatch, nw.Ports, len(impedance))
	}

	var sb strings.Builder

	for _, comment := range nw.Comments {
		sb.WriteString("! ")
		sb.WriteString(comment)
		sb.WriteByte('\n')
	}

	impTokens := make([]string, len(impedance))
	for i, z := range impedance {
		impTokens[i] = formatFloat(z)
	}
	fmt.Fprintf(&sb, "# %s %s %s R %s\n",
		nw.Freq.Unit(), nw.Parameter, nw.Format, strings.Join(impTokens, " "))

	formatPair := formatFloat
	if nw.Format != FormatRI {
		formatPair = formatRounded
	}

	values := nw.Freq.Values()
	for k := range values {
		sb.WriteString(formatFloat(values[k]))
		for p := range nw.Ports * nw.Ports {
			out, in := matrixIndex(nw.Ports, p)
			a, b := encode(nw.Format, nw.Matrix[out][in][k])
			sb.WriteByte(' ')
			sb.WriteString(formatPair(a))
			sb.WriteByte(' ')
			sb.WriteString(formatPair(b))
		}
		sb.WriteByte('\n')
	}

	return sb.String(), nil
}

// formatFloat uses the shortest representation that parses back to the
// same value, keeping read/write round trips exact.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// formatRounded limits a token to 15 significant digits. MA and DB pairs
// pass through magnitude/phase transcendentals, where the shortest-form
// 17th digit only carries one-ulp noise; rounding it away lets values
// that entered the file as short decimals come back out unchanged.
func formatRounded(v float64) string {
	return strconv.FormatFloat(v, 'g', 15, 64)
}
