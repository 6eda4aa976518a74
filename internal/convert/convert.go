// Package convert maps raw device readings to engineering units.
// All functions are pure; inputs are assumed to be well-formed floats.
package convert

import "hvac_monitor/internal/models"

// RTD model constants.
const (
	RTDNominalOhms = 1000.0   // R0
	RTDAlpha       = 0.003851 // Ω/Ω/°C
)

// Known divider resistances for the three RTD channels (AIN0..AIN2).
const (
	Temp1KnownOhms = 1012.0
	Temp2KnownOhms = 1011.0
	Temp3KnownOhms = 1008.0
)

// Linear scale factors, engineering units per volt.
const (
	VoltageScale     = 10.0         // supply monitor divider
	Pressure200Scale = 200.0 / 10.0 // 200 psi transducer, 10 V full scale
	Pressure300Scale = 300.0 / 10.0 // 300 psi transducer, 10 V full scale
	FanCurrentScale  = 25.0 / 5.0   // 25 A clamp, 5 V full scale
	CompCurrentScale = 100.0 / 5.0  // 100 A clamp, 5 V full scale
	SwitchThreshold  = 2.0          // V, strictly greater means closed
	kelvinOffset     = 273.15
)

// RTDResistance returns the sensor resistance of a divider with known
// resistor rKnown, measured voltage v and supply vs. When vs <= v the divider
// is out of range and rKnown is returned instead.
func RTDResistance(v, vs, rKnown float64) float64 {
	if vs > v {
		return rKnown * (v / (vs - v))
	}
	return rKnown
}

// ResistanceToCelsius applies the linear RTD coefficient model.
func ResistanceToCelsius(r float64) float64 {
	return -(r - RTDNominalOhms) / (RTDAlpha * RTDNominalOhms)
}

func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

func KelvinToFahrenheit(k float64) float64 {
	return CelsiusToFahrenheit(k - kelvinOffset)
}

// RTDFahrenheit converts a divider voltage to °F.
func RTDFahrenheit(v, vs, rKnown float64) float64 {
	return CelsiusToFahrenheit(ResistanceToCelsius(RTDResistance(v, vs, rKnown)))
}

// Switch maps the pressure switch voltage to its state.
func Switch(v float64) models.SwitchState {
	if v > SwitchThreshold {
		return models.SwitchClosed
	}
	return models.SwitchOpen
}

// Raw holds one tick of unconverted channel values.
type Raw struct {
	RTD1, RTD2, RTD3 float64 // AIN0..AIN2, V
	Supply           float64 // AIN3, V
	DeviceTempK      float64
	AirTempK         float64
	Switch           float64 // AIN51, V
	Voltage          float64 // AIN52, V
	Pressure200      float64 // AIN53, V
	Pressure300      float64 // AIN54, V
	CondFan          float64 // AIN55, V
	EvapFan          float64 // AIN56, V
	Compressor       float64 // AIN57, V
	Total            float64 // AIN58, V
}

// Snapshot converts a full tick.
func Snapshot(r Raw) models.SensorSnapshot {
	return models.SensorSnapshot{
		Voltage:           r.Voltage * VoltageScale,
		CondFanCurrent:    r.CondFan * FanCurrentScale,
		EvapFanCurrent:    r.EvapFan * FanCurrentScale,
		CompressorCurrent: r.Compressor * CompCurrentScale,
		TotalCurrent:      r.Total * CompCurrentScale,
		Pressure200:       r.Pressure200 * Pressure200Scale,
		Pressure300:       r.Pressure300 * Pressure300Scale,
		Temp1:             RTDFahrenheit(r.RTD1, r.Supply, Temp1KnownOhms),
		Temp2:             RTDFahrenheit(r.RTD2, r.Supply, Temp2KnownOhms),
		Temp3:             RTDFahrenheit(r.RTD3, r.Supply, Temp3KnownOhms),
		DeviceTemp:        KelvinToFahrenheit(r.DeviceTempK),
		AirTemp:           KelvinToFahrenheit(r.AirTempK),
		PressureSwitch:    Switch(r.Switch),
	}
}
