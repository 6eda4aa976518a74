package service

import (
	"context"
	"time"

	"hvac_monitor/internal/state"
)

// StartTimeLayout is the local wall-clock format of DataResponse.StartTime.
const StartTimeLayout = "2006-01-02 15:04:05"

type MonitoringService struct {
	store *state.Store
	now   func() time.Time
}

func NewMonitoringService(store *state.Store) *MonitoringService {
	return &MonitoringService{store: store, now: time.Now}
}

// GetData returns the latest snapshot, the process start time and whole
// seconds elapsed since then. Before the first tick the snapshot holds the
// defaults (zeros, switch Open) and UpdatedAt is nil.
func (s *MonitoringService) GetData(_ context.Context) (DataResponse, error) {
	snap, st := s.store.Read()
	started := s.store.StartedAt()

	resp := DataResponse{
		SensorData:     snap,
		StartTime:      started.Local().Format(StartTimeLayout),
		RunTimeSeconds: int64(s.now().Sub(started) / time.Second),
		Sampling:       st.Sampling,
		Fault:          st.Fault,
	}
	if !st.UpdatedAt.IsZero() {
		at := st.UpdatedAt.UTC()
		resp.UpdatedAt = &at
	}
	return resp, nil
}
