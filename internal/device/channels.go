package device

import "fmt"

// Channel names on the T7.
const (
	ChanRTD1        = "AIN0"
	ChanRTD2        = "AIN1"
	ChanRTD3        = "AIN2"
	ChanSupply      = "AIN3"
	ChanDeviceTempK = "TEMPERATURE_DEVICE_K"
	ChanAirTempK    = "TEMPERATURE_AIR_K"
	ChanSwitch      = "AIN51"
	ChanVoltage     = "AIN52"
	ChanPressure200 = "AIN53"
	ChanPressure300 = "AIN54"
	ChanCondFan     = "AIN55"
	ChanEvapFan     = "AIN56"
	ChanCompressor  = "AIN57"
	ChanTotal       = "AIN58"
)

// Analog input options.
const (
	OptRange      = "RANGE"
	OptNegativeCh = "NEGATIVE_CH"

	// SingleEndedNegative selects GND as the negative input.
	SingleEndedNegative = 199
)

// AIN returns the analog input name for index n.
func AIN(n int) string {
	return fmt.Sprintf("AIN%d", n)
}
