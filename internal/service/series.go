package service

import (
	"time"

	"hvac_monitor/internal/models"
	"hvac_monitor/internal/series"
)

// Series channel names, in the order the sampler appends them.
const (
	SeriesPressure200 = "pressure_200"
	SeriesPressure300 = "pressure_300"
)

// SeriesChannels lists the charted channels.
var SeriesChannels = []string{SeriesPressure200, SeriesPressure300}

type SeriesService struct {
	buf *series.Buffer
}

func NewSeriesService(buf *series.Buffer) *SeriesService {
	return &SeriesService{buf: buf}
}

// Window returns the trailing d of every channel; d <= 0 returns everything.
func (s *SeriesService) Window(d time.Duration) map[string][]models.TimeSeriesPoint {
	return s.buf.Window(d)
}
