package service

import (
	"time"

	"hvac_monitor/internal/models"
)

// LogFilter supports event history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "SAMPLER_STARTED", "DEVICE_ERROR", "LOGGER_ERROR", "EXPORT"
}

// HistoryFilter selects persisted readings.
type HistoryFilter struct {
	From  time.Time
	To    time.Time
	Limit int // <= 0 uses the repository default
}

// DataResponse is the body of GET /data.
type DataResponse struct {
	SensorData     models.SensorSnapshot `json:"sensor_data"`
	StartTime      string                `json:"start_time"`
	RunTimeSeconds int64                 `json:"run_time_seconds"`
	UpdatedAt      *time.Time            `json:"updated_at"`
	Sampling       bool                  `json:"sampling"`
	Fault          string                `json:"fault,omitempty"`
}

// ExportResult describes a copied CSV log.
type ExportResult struct {
	Filename    string
	DownloadURL string
	ArchiveKey  string
}
