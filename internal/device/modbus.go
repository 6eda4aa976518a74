package device

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/simonvetter/modbus"
)

// T7 Modbus map.
const (
	ainBaseAddr          = 0     // AIN#: FLOAT32 at 2*#
	ainRangeBaseAddr     = 40000 // AIN#_RANGE: FLOAT32 at 40000+2*#
	ainNegChBaseAddr     = 41000 // AIN#_NEGATIVE_CH: UINT16 at 41000+#
	tempAirKAddr         = 60050
	tempDeviceKAddr      = 60052
	maxAnalogInput       = 254
	defaultModbusPort    = "502"
	defaultModbusTimeout = 2 * time.Second
)

type regKind int

const (
	regFloat32 regKind = iota
	regUint16
)

type register struct {
	addr uint16
	kind regKind
}

// registerClient is the subset of *modbus.ModbusClient the driver uses.
type registerClient interface {
	ReadFloat32(addr uint16, regType modbus.RegType) (float32, error)
	WriteFloat32(addr uint16, value float32) error
	WriteRegister(addr uint16, value uint16) error
	Close() error
}

// ModbusOpener connects to a LabJack T7 over Modbus TCP.
type ModbusOpener struct {
	URL     string // tcp://host:502
	Timeout time.Duration
}

func NewModbusOpener(url string, timeout time.Duration) *ModbusOpener {
	if timeout <= 0 {
		timeout = defaultModbusTimeout
	}
	if !strings.Contains(strings.TrimPrefix(url, "tcp://"), ":") {
		url += ":" + defaultModbusPort
	}
	return &ModbusOpener{URL: url, Timeout: timeout}
}

func (o *ModbusOpener) Open(ctx context.Context) (Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Op: "open", Err: err}
	}
	client, err := modbus.NewClient(&modbus.ClientConfiguration{
		URL:     o.URL,
		Timeout: o.Timeout,
	})
	if err != nil {
		return nil, &Error{Op: "open", Err: err}
	}
	if err := client.SetEncoding(modbus.BIG_ENDIAN, modbus.HIGH_WORD_FIRST); err != nil {
		return nil, &Error{Op: "open", Err: err}
	}
	if err := client.Open(); err != nil {
		return nil, &Error{Op: "open", Err: fmt.Errorf("connect %s: %w", o.URL, err)}
	}
	return &ModbusDevice{client: client}, nil
}

// ModbusDevice is an open T7 handle.
type ModbusDevice struct {
	client registerClient
}

func (d *ModbusDevice) Configure(channel, option string, value float64) error {
	name := optionName(channel, option)
	reg, err := resolve(name)
	if err != nil {
		return &Error{Op: "configure", Channel: name, Err: err}
	}
	switch reg.kind {
	case regUint16:
		err = d.client.WriteRegister(reg.addr, uint16(value))
	default:
		err = d.client.WriteFloat32(reg.addr, float32(value))
	}
	if err != nil {
		return &Error{Op: "configure", Channel: name, Err: err}
	}
	return nil
}

// ReadBatch reads each name in turn; the channel set is not contiguous in the map.
func (d *ModbusDevice) ReadBatch(names []string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, n := range names {
		v, err := d.ReadOne(n)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (d *ModbusDevice) ReadOne(name string) (float64, error) {
	reg, err := resolve(name)
	if err != nil {
		return 0, &Error{Op: "read", Channel: name, Err: err}
	}
	v, err := d.client.ReadFloat32(reg.addr, modbus.HOLDING_REGISTER)
	if err != nil {
		return 0, &Error{Op: "read", Channel: name, Err: err}
	}
	return float64(v), nil
}

func (d *ModbusDevice) Close() error {
	if err := d.client.Close(); err != nil {
		return &Error{Op: "close", Err: err}
	}
	return nil
}

// resolve maps a register name to its Modbus address.
func resolve(name string) (register, error) {
	switch name {
	case ChanAirTempK:
		return register{addr: tempAirKAddr, kind: regFloat32}, nil
	case ChanDeviceTempK:
		return register{addr: tempDeviceKAddr, kind: regFloat32}, nil
	}
	if !strings.HasPrefix(name, "AIN") {
		return register{}, ErrUnknownChannel
	}
	rest := strings.TrimPrefix(name, "AIN")
	idx, suffix, _ := strings.Cut(rest, "_")
	n, err := strconv.Atoi(idx)
	if err != nil || n < 0 || n > maxAnalogInput {
		return register{}, ErrUnknownChannel
	}
	switch suffix {
	case "":
		return register{addr: uint16(ainBaseAddr + 2*n), kind: regFloat32}, nil
	case OptRange:
		return register{addr: uint16(ainRangeBaseAddr + 2*n), kind: regFloat32}, nil
	case OptNegativeCh:
		return register{addr: uint16(ainNegChBaseAddr + n), kind: regUint16}, nil
	}
	return register{}, ErrUnknownChannel
}
