package models

import "time"

// SwitchState is the pressure switch position.
type SwitchState string

const (
	SwitchOpen   SwitchState = "Open"
	SwitchClosed SwitchState = "Closed"
)

// SensorSnapshot is the complete set of converted values from one sampling tick.
type SensorSnapshot struct {
	Voltage           float64     `json:"voltage"`            // V
	CondFanCurrent    float64     `json:"cond_fan_current"`   // A
	EvapFanCurrent    float64     `json:"evap_fan_current"`   // A
	CompressorCurrent float64     `json:"compressor_current"` // A
	TotalCurrent      float64     `json:"total_current"`      // A
	Pressure200       float64     `json:"pressure_200"`       // psi
	Pressure300       float64     `json:"pressure_300"`       // psi
	Temp1             float64     `json:"temp1"`              // °F
	Temp2             float64     `json:"temp2"`              // °F
	Temp3             float64     `json:"temp3"`              // °F
	DeviceTemp        float64     `json:"labjack_temp"`       // °F
	AirTemp           float64     `json:"air_temp"`           // °F
	PressureSwitch    SwitchState `json:"pressure_switch"`
}

// SnapshotFieldNames lists the numeric fields in the order returned by Values.
var SnapshotFieldNames = []string{
	"voltage",
	"cond_fan_current",
	"evap_fan_current",
	"compressor_current",
	"total_current",
	"pressure_200",
	"pressure_300",
	"temp1",
	"temp2",
	"temp3",
	"labjack_temp",
	"air_temp",
}

// NewSensorSnapshot returns the zeroed start-up record.
func NewSensorSnapshot() SensorSnapshot {
	return SensorSnapshot{PressureSwitch: SwitchOpen}
}

// Values returns the numeric fields in SnapshotFieldNames order.
func (s SensorSnapshot) Values() []float64 {
	return []float64{
		s.Voltage,
		s.CondFanCurrent,
		s.EvapFanCurrent,
		s.CompressorCurrent,
		s.TotalCurrent,
		s.Pressure200,
		s.Pressure300,
		s.Temp1,
		s.Temp2,
		s.Temp3,
		s.DeviceTemp,
		s.AirTemp,
	}
}

// Reading is a snapshot stamped with the time it was taken.
type Reading struct {
	TakenAt  time.Time      `json:"taken_at"`
	Snapshot SensorSnapshot `json:"sensor_data"`
}
