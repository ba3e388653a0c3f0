package util

import (
	"fmt"
)

func FormatFrequency(freq float64) string {
	switch {
	case freq >= 1e12:
		return fmt.Sprintf("%8.3f THz", freq/1e12)
	case freq >= 1e9:
		return fmt.Sprintf("%8.3f GHz", freq/1e9)
	case freq >= 1e6:
		return fmt.Sprintf("%8.3f MHz", freq/1e6)
	case freq >= 1e3:
		return fmt.Sprintf("%8.3f kHz", freq/1e3)
	default:
		return fmt.Sprintf("%8.3f Hz ", freq)
	}
}

func FormatMagnitudePhase(name string, value, phase float64) string {
	return fmt.Sprintf("%s=%s<%sdeg", name, FormatMagnitude(value), FormatPhase(phase))
}

func FormatMagnitude(value float64) string {
	if value >= 1000 || (value < 0.001 && value != 0) {
		return fmt.Sprintf("%8.2e", value) // "1.00e+03" or "5.43e-05"
	}
	return fmt.Sprintf("%8.3g", value) // "  732.5 "
}

func FormatPhase(value float64) string {
	return fmt.Sprintf("%6.1f", value) // "  90.0"
}
