package models

import "time"

// Event types recorded in the device log.
const (
	EventSamplerStarted = "SAMPLER_STARTED"
	EventSamplerStopped = "SAMPLER_STOPPED"
	EventDeviceError    = "DEVICE_ERROR"
	EventLoggerError    = "LOGGER_ERROR"
	EventExport         = "EXPORT"
)

// DeviceEvent is a single entry in the device log.
type DeviceEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // SAMPLER_STARTED | SAMPLER_STOPPED | DEVICE_ERROR | LOGGER_ERROR | EXPORT
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
