package consts

const (
	SPEED_OF_LIGHT    = 299792458.0 // Speed of light in vacuum (m/s)
	DEFAULT_IMPEDANCE = 50.0        // Reference impedance when the option line has no R clause (ohm)
)
