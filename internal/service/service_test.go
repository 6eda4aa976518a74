package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"hvac_monitor/internal/device"
	"hvac_monitor/internal/models"
)

// ---- shared test doubles ----

type openerFunc func(ctx context.Context) (device.Device, error)

func (f openerFunc) Open(ctx context.Context) (device.Device, error) { return f(ctx) }

func openDevice(d device.Device) device.Opener {
	return openerFunc(func(context.Context) (device.Device, error) { return d, nil })
}

type countingRecorder struct {
	mu         sync.Mutex
	readErrors int
	sinkErrors map[string]int
	rows       int
	sampling   bool
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{sinkErrors: map[string]int{}}
}

func (r *countingRecorder) ReadError() {
	r.mu.Lock()
	r.readErrors++
	r.mu.Unlock()
}

func (r *countingRecorder) SinkError(name string) {
	r.mu.Lock()
	r.sinkErrors[name]++
	r.mu.Unlock()
}

func (r *countingRecorder) RowWritten() {
	r.mu.Lock()
	r.rows++
	r.mu.Unlock()
}

func (r *countingRecorder) SetSampling(up bool) {
	r.mu.Lock()
	r.sampling = up
	r.mu.Unlock()
}

type captureSink struct {
	name string
	err  error

	mu       sync.Mutex
	readings []models.Reading
}

func (s *captureSink) Name() string { return s.name }

func (s *captureSink) Publish(_ context.Context, r models.Reading) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readings = append(s.readings, r)
	return s.err
}

func (s *captureSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.readings)
}

type fakeReadingRepo struct {
	saved   []models.Reading
	saveErr error

	gotFrom  time.Time
	gotTo    time.Time
	gotLimit int
	list     []models.Reading
	listErr  error
	calls    int
}

func (f *fakeReadingRepo) Save(_ context.Context, r models.Reading) error {
	f.saved = append(f.saved, r)
	return f.saveErr
}

func (f *fakeReadingRepo) List(_ context.Context, from, to time.Time, limit int) ([]models.Reading, error) {
	f.calls++
	f.gotFrom, f.gotTo, f.gotLimit = from, to, limit
	return f.list, f.listErr
}

var errBoom = errors.New("boom")

func sampleReading() models.Reading {
	snap := models.NewSensorSnapshot()
	snap.Voltage = 120
	return models.Reading{TakenAt: time.Now(), Snapshot: snap}
}
