package device

import (
	"context"
	"math"
	"strings"
	"sync"
)

// Simulated opens in-memory devices that produce plausible bench values.
// FailAfter > 0 makes the device report a disconnection on that batch read.
type Simulated struct {
	FailAfter int
}

func (s Simulated) Open(ctx context.Context) (Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Op: "open", Err: err}
	}
	return NewSimulatedDevice(s.FailAfter), nil
}

// SimulatedDevice is the handle returned by Simulated.
type SimulatedDevice struct {
	mu         sync.Mutex
	failAfter  int
	reads      int
	closed     bool
	configured map[string]float64
}

func NewSimulatedDevice(failAfter int) *SimulatedDevice {
	return &SimulatedDevice{failAfter: failAfter, configured: make(map[string]float64)}
}

func (d *SimulatedDevice) Configure(channel, option string, value float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return &Error{Op: "configure", Channel: channel, Err: ErrDisconnected}
	}
	d.configured[optionName(channel, option)] = value
	return nil
}

func (d *SimulatedDevice) ReadBatch(names []string) ([]float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, &Error{Op: "read", Err: ErrDisconnected}
	}
	d.reads++
	if d.failAfter > 0 && d.reads >= d.failAfter {
		return nil, &Error{Op: "read", Err: ErrDisconnected}
	}
	out := make([]float64, len(names))
	for i, n := range names {
		v, err := d.valueLocked(n)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (d *SimulatedDevice) ReadOne(name string) (float64, error) {
	vals, err := d.ReadBatch([]string{name})
	if err != nil {
		return 0, err
	}
	return vals[0], nil
}

func (d *SimulatedDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// Configured returns the value written for <channel>_<option>.
func (d *SimulatedDevice) Configured(channel, option string) (float64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, ok := d.configured[optionName(channel, option)]
	return v, ok
}

func (d *SimulatedDevice) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// valueLocked derives a slow oscillation from the read counter so charts move.
func (d *SimulatedDevice) valueLocked(name string) (float64, error) {
	phase := math.Sin(float64(d.reads) / 30)
	switch name {
	case ChanSupply:
		return 5.0, nil
	case ChanRTD1, ChanRTD2, ChanRTD3:
		return 2.45 + 0.05*phase, nil
	case ChanDeviceTempK:
		return 305.0, nil
	case ChanAirTempK:
		return 297.0 + 0.5*phase, nil
	case ChanSwitch:
		if phase > 0 {
			return 3.3, nil
		}
		return 0.1, nil
	case ChanVoltage:
		return 12.0, nil
	case ChanPressure200:
		return 6.0 + 0.5*phase, nil
	case ChanPressure300:
		return 2.5 + 0.3*phase, nil
	case ChanCondFan, ChanEvapFan:
		return 0.4, nil
	case ChanCompressor:
		return 0.45 + 0.05*phase, nil
	case ChanTotal:
		return 0.6 + 0.05*phase, nil
	}
	if strings.HasPrefix(name, "AIN") {
		return 0, nil
	}
	return 0, &Error{Op: "read", Channel: name, Err: ErrUnknownChannel}
}
