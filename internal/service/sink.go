package service

import (
	"context"

	"hvac_monitor/internal/models"
	"hvac_monitor/internal/repository"
)

// Sink receives every converted reading. Errors are logged and counted by the
// sampler, they never stop sampling.
type Sink interface {
	Name() string
	Publish(ctx context.Context, r models.Reading) error
}

// Recorder collects sampler and logger counters.
type Recorder interface {
	ReadError()
	SinkError(sink string)
	RowWritten()
	SetSampling(up bool)
}

type nopRecorder struct{}

func (nopRecorder) ReadError()       {}
func (nopRecorder) SinkError(string) {}
func (nopRecorder) RowWritten()      {}
func (nopRecorder) SetSampling(bool) {}

// HistorySink persists readings through the reading repository.
type HistorySink struct {
	repo repository.ReadingRepo
}

func NewHistorySink(repo repository.ReadingRepo) *HistorySink {
	return &HistorySink{repo: repo}
}

func (h *HistorySink) Name() string { return "history" }

func (h *HistorySink) Publish(ctx context.Context, r models.Reading) error {
	return h.repo.Save(ctx, r)
}
