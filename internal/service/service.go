package service

import (
	"context"
	"time"

	"hvac_monitor/internal/device"
	"hvac_monitor/internal/logger"
	"hvac_monitor/internal/models"
	"hvac_monitor/internal/repository"
	"hvac_monitor/internal/series"
	"hvac_monitor/internal/state"
)

// Monitoring exposes the latest snapshot with run time and freshness.
type Monitoring interface {
	GetData(ctx context.Context) (DataResponse, error)
}

// Export copies the CSV log to a named file and resolves files for download.
type Export interface {
	PrepareDownload(ctx context.Context, newFilename string) (ExportResult, error)
	Resolve(filename string) (string, error)
}

// EventLog exposes append-only device events with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.DeviceEvent, error)
}

// History exposes persisted readings.
type History interface {
	List(ctx context.Context, f HistoryFilter) ([]models.Reading, error)
}

// Series exposes the in-memory pressure series for charting.
type Series interface {
	Window(d time.Duration) map[string][]models.TimeSeriesPoint
}

// Sampler polls the device until ctx is canceled or a read fails.
type Sampler interface {
	Run(ctx context.Context) error
}

// CSVLogger appends one row per interval until ctx is canceled or I/O fails.
type CSVLogger interface {
	Run(ctx context.Context) error
}

type Service struct {
	Monitoring
	Export
	EventLog
	History
	Series
	Sampler
	CSVLogger
}

// Deps carries the non-repository collaborators.
type Deps struct {
	Store    *state.Store
	Buffer   *series.Buffer
	Opener   device.Opener
	Sinks    []Sink
	Recorder Recorder
	Archive  Archiver // nil disables upload on export
	Log      *logger.Logger

	SampleInterval time.Duration
	CSVPath        string
	CSVAppend      bool
	CSVInterval    time.Duration
}

// NewService wires the repository layer and runtime state into concrete services.
func NewService(repos *repository.Repository, d Deps) *Service {
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.Recorder == nil {
		d.Recorder = nopRecorder{}
	}
	csvLogger := NewCSVLoggerService(d.Store, repos.EventRepo, d.Recorder, d.Log, CSVOptions{
		Path:     d.CSVPath,
		Append:   d.CSVAppend,
		Interval: d.CSVInterval,
	})
	return &Service{
		Monitoring: NewMonitoringService(d.Store),
		Export:     NewExportService(csvLogger, repos.EventRepo, d.Archive, d.Log),
		EventLog:   NewEventLogService(repos.EventRepo),
		History:    NewHistoryService(repos.ReadingRepo),
		Series:     NewSeriesService(d.Buffer),
		Sampler: NewSamplerService(d.Opener, d.Store, d.Buffer, repos.EventRepo, d.Sinks, d.Recorder, d.Log,
			d.SampleInterval),
		CSVLogger: csvLogger,
	}
}
