package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"hvac_monitor/internal/logger"
	"hvac_monitor/internal/models"
	"hvac_monitor/internal/repository"
	"hvac_monitor/internal/state"
)

const (
	DefaultCSVPath     = "data_log.csv"
	DefaultCSVInterval = time.Second

	// RowTimeLayout is ISO-8601 local time with seconds precision.
	RowTimeLayout = "2006-01-02T15:04:05"
)

// CSVHeader is the first row of every log. The pressure switch appears once.
var CSVHeader = append(append([]string{"timestamp"}, models.SnapshotFieldNames...), "pressure_switch")

type CSVOptions struct {
	Path     string
	Append   bool // keep an existing non-empty log and skip the header
	Interval time.Duration
}

// CSVLoggerService is the only writer of the CSV log. Readers copy the file
// through CopyTo, which never observes a half-written row.
type CSVLoggerService struct {
	store  *state.Store
	events repository.EventRepo
	rec    Recorder
	log    *logger.Logger
	opts   CSVOptions

	mu sync.Mutex
}

func NewCSVLoggerService(store *state.Store, events repository.EventRepo, rec Recorder, log *logger.Logger,
	opts CSVOptions) *CSVLoggerService {
	if opts.Path == "" {
		opts.Path = DefaultCSVPath
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultCSVInterval
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CSVLoggerService{store: store, events: events, rec: rec, log: log, opts: opts}
}

func (s *CSVLoggerService) Path() string { return s.opts.Path }

// Run writes the header and then one row per interval from the latest
// snapshot, flushing and syncing after every row.
func (s *CSVLoggerService) Run(ctx context.Context) error {
	f, writeHeader, err := s.open()
	if err != nil {
		return s.fail(ctx, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.log.Warnw("csv_close_failed", "err", cerr)
		}
	}()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := s.write(f, w, CSVHeader); err != nil {
			return s.fail(ctx, err)
		}
	}
	s.log.Infow("csv_logger_started", "path", s.opts.Path, "append", !writeHeader)

	t := time.NewTicker(s.opts.Interval)
	defer t.Stop()
	for {
		if err := s.write(f, w, FormatRow(time.Now(), s.store.Snapshot())); err != nil {
			return s.fail(ctx, err)
		}
		s.rec.RowWritten()
		select {
		case <-ctx.Done():
			s.log.Infow("csv_logger_stopped", "path", s.opts.Path)
			return nil
		case <-t.C:
		}
	}
}

// open truncates the log, or in append mode reuses it when it already has content.
func (s *CSVLoggerService) open() (*os.File, bool, error) {
	if !s.opts.Append {
		f, err := os.Create(s.opts.Path)
		if err != nil {
			return nil, false, fmt.Errorf("create csv log: %w", err)
		}
		return f, true, nil
	}
	f, err := os.OpenFile(s.opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, false, fmt.Errorf("open csv log: %w", err)
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, false, fmt.Errorf("stat csv log: %w", err)
	}
	return f, fi.Size() == 0, nil
}

func (s *CSVLoggerService) write(f *os.File, w *csv.Writer, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv log: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync csv log: %w", err)
	}
	return nil
}

// CopyTo writes the current content of the log to dst.
func (s *CSVLoggerService) CopyTo(dst io.Writer) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	src, err := os.Open(s.opts.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("csv log %s: %w", s.opts.Path, ErrFileNotFound)
		}
		return 0, err
	}
	defer src.Close()
	return io.Copy(dst, src)
}

func (s *CSVLoggerService) fail(ctx context.Context, err error) error {
	s.log.Errorw("csv_logger_failed", "path", s.opts.Path, "err", err)
	recordEvent(ctx, s.events, s.log, models.EventLoggerError, err.Error(), map[string]any{"path": s.opts.Path})
	return err
}

// FormatRow renders one CSV row: local timestamp, the numeric fields in
// header order, then the switch state.
func FormatRow(at time.Time, snap models.SensorSnapshot) []string {
	vals := snap.Values()
	row := make([]string, 0, len(vals)+2)
	row = append(row, at.Local().Format(RowTimeLayout))
	for _, v := range vals {
		row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
	}
	return append(row, string(snap.PressureSwitch))
}
