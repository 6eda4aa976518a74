package service

import (
	"context"
	"fmt"
	"time"

	"hvac_monitor/internal/convert"
	"hvac_monitor/internal/device"
	"hvac_monitor/internal/logger"
	"hvac_monitor/internal/models"
	"hvac_monitor/internal/repository"
	"hvac_monitor/internal/series"
	"hvac_monitor/internal/state"

	"github.com/google/uuid"
)

const (
	DefaultSampleInterval = time.Second

	// ChannelRange is the ±10 V input range applied to AIN52..AIN58.
	ChannelRange      = 10.0
	firstDiffChannel  = 52
	lastDiffChannel   = 58
	eventWriteTimeout = 2 * time.Second
)

// batchChannels is read in a single request every tick. The order matches
// rawFromBatch.
var batchChannels = []string{
	device.ChanRTD1, device.ChanRTD2, device.ChanRTD3, device.ChanSupply,
	device.ChanDeviceTempK, device.ChanAirTempK,
	device.ChanSwitch, device.ChanVoltage, device.ChanPressure200, device.ChanPressure300,
	device.ChanCondFan, device.ChanEvapFan, device.ChanCompressor, device.ChanTotal,
}

// SamplerService owns the device handle. It configures the inputs once and
// then reads, converts and publishes one snapshot per interval.
type SamplerService struct {
	opener   device.Opener
	store    *state.Store
	buffer   *series.Buffer
	events   repository.EventRepo
	sinks    []Sink
	rec      Recorder
	log      *logger.Logger
	interval time.Duration
}

func NewSamplerService(opener device.Opener, store *state.Store, buffer *series.Buffer, events repository.EventRepo,
	sinks []Sink, rec Recorder, log *logger.Logger, interval time.Duration) *SamplerService {
	if interval <= 0 {
		interval = DefaultSampleInterval
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SamplerService{
		opener:   opener,
		store:    store,
		buffer:   buffer,
		events:   events,
		sinks:    sinks,
		rec:      rec,
		log:      log,
		interval: interval,
	}
}

// Run samples until ctx is canceled (returns nil) or the device fails
// (returns the error). There is no reconnect: after a failure the store keeps
// serving the last snapshot with its fault set.
func (s *SamplerService) Run(ctx context.Context) error {
	dev, err := s.opener.Open(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return s.fail(ctx, fmt.Errorf("open device: %w", err))
	}
	defer func() {
		if cerr := dev.Close(); cerr != nil {
			s.log.Warnw("device_close_failed", "err", cerr)
		}
	}()

	if err := configure(dev); err != nil {
		return s.fail(ctx, err)
	}
	s.record(ctx, models.EventSamplerStarted, "sampling started", map[string]any{
		"interval": s.interval.String(),
		"channels": len(batchChannels),
	})
	s.rec.SetSampling(true)
	s.log.Infow("sampler_started", "interval", s.interval)

	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		if err := s.tick(ctx, dev, time.Now()); err != nil {
			return s.fail(ctx, err)
		}
		select {
		case <-ctx.Done():
			s.stop(ctx)
			return nil
		case <-t.C:
		}
	}
}

// configure puts AIN52..AIN58 in ±10 V single-ended mode.
func configure(dev device.Device) error {
	for n := firstDiffChannel; n <= lastDiffChannel; n++ {
		ch := device.AIN(n)
		if err := dev.Configure(ch, device.OptRange, ChannelRange); err != nil {
			return err
		}
		if err := dev.Configure(ch, device.OptNegativeCh, device.SingleEndedNegative); err != nil {
			return err
		}
	}
	return nil
}

func (s *SamplerService) tick(ctx context.Context, dev device.Device, now time.Time) error {
	vals, err := dev.ReadBatch(batchChannels)
	if err != nil {
		return err
	}
	raw, err := rawFromBatch(vals)
	if err != nil {
		return err
	}
	snap := convert.Snapshot(raw)

	s.store.Publish(snap, now)
	if err := s.buffer.Append(now, snap.Pressure200, snap.Pressure300); err != nil {
		s.log.Errorw("series_append_failed", "err", err)
	}

	r := models.Reading{TakenAt: now, Snapshot: snap}
	for _, sink := range s.sinks {
		if err := sink.Publish(ctx, r); err != nil {
			s.rec.SinkError(sink.Name())
			s.log.Warnw("sink_publish_failed", "sink", sink.Name(), "err", err)
		}
	}
	return nil
}

func rawFromBatch(v []float64) (convert.Raw, error) {
	if len(v) != len(batchChannels) {
		return convert.Raw{}, &device.Error{
			Op:  "read",
			Err: fmt.Errorf("got %d values for %d channels", len(v), len(batchChannels)),
		}
	}
	return convert.Raw{
		RTD1:        v[0],
		RTD2:        v[1],
		RTD3:        v[2],
		Supply:      v[3],
		DeviceTempK: v[4],
		AirTempK:    v[5],
		Switch:      v[6],
		Voltage:     v[7],
		Pressure200: v[8],
		Pressure300: v[9],
		CondFan:     v[10],
		EvapFan:     v[11],
		Compressor:  v[12],
		Total:       v[13],
	}, nil
}

func (s *SamplerService) fail(ctx context.Context, err error) error {
	s.rec.ReadError()
	s.rec.SetSampling(false)
	s.store.MarkFault(err)
	s.log.Errorw("sampler_read_failed", "err", err)
	s.record(ctx, models.EventDeviceError, err.Error(), nil)
	return err
}

func (s *SamplerService) stop(ctx context.Context) {
	s.rec.SetSampling(false)
	s.store.MarkStopped()
	s.log.Infow("sampler_stopped")
	s.record(ctx, models.EventSamplerStopped, "sampling stopped", nil)
}

// record appends a device event. It still runs after ctx is canceled so that
// shutdown is logged too.
func (s *SamplerService) record(ctx context.Context, typ, desc string, meta any) {
	recordEvent(ctx, s.events, s.log, typ, desc, meta)
}

func recordEvent(ctx context.Context, repo repository.EventRepo, log *logger.Logger, typ, desc string, meta any) {
	if repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), eventWriteTimeout)
	defer cancel()
	err := repo.Append(ctx, models.DeviceEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        typ,
		Description: desc,
		Metadata:    meta,
	})
	if err != nil {
		log.Warnw("event_append_failed", "type", typ, "err", err)
	}
}
