// Package device is the acquisition hardware boundary: open a handle,
// configure analog inputs and read named channels.
package device

import (
	"context"
	"errors"
	"fmt"
)

// Device is an open handle. It is owned by a single goroutine.
type Device interface {
	// Configure writes <channel>_<option>, e.g. ("AIN52", "RANGE", 10).
	Configure(channel, option string, value float64) error
	// ReadBatch returns values in the same order as names.
	ReadBatch(names []string) ([]float64, error)
	ReadOne(name string) (float64, error)
	Close() error
}

// Opener produces device handles.
type Opener interface {
	Open(ctx context.Context) (Device, error)
}

var (
	ErrDisconnected   = errors.New("device disconnected")
	ErrUnknownChannel = errors.New("unknown channel")
)

// Error is a communication or configuration failure.
type Error struct {
	Op      string // open | configure | read | close
	Channel string
	Err     error
}

func (e *Error) Error() string {
	if e.Channel == "" {
		return fmt.Sprintf("device %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("device %s %s: %v", e.Op, e.Channel, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsDeviceError reports whether err is (or wraps) an *Error.
func IsDeviceError(err error) bool {
	var de *Error
	return errors.As(err, &de)
}

func optionName(channel, option string) string {
	return channel + "_" + option
}
