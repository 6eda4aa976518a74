// Package series keeps bounded, parallel time series for plotting.
package series

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"hvac_monitor/internal/models"
)

var ErrUnknownChannel = errors.New("unknown series channel")

// Buffer is a fixed-capacity FIFO ring shared by several channels.
// Every channel holds a value for each stored timestamp, so all sequences
// always have equal length and aligned timestamps. When full, the oldest
// entry is dropped.
type Buffer struct {
	mu       sync.RWMutex
	channels []string
	index    map[string]int
	times    []time.Time
	values   [][]float64
	head     int // oldest entry
	size     int
}

func NewBuffer(capacity int, channels ...string) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	b := &Buffer{
		channels: append([]string(nil), channels...),
		index:    make(map[string]int, len(channels)),
		times:    make([]time.Time, capacity),
		values:   make([][]float64, len(channels)),
	}
	for i, ch := range channels {
		b.index[ch] = i
		b.values[i] = make([]float64, capacity)
	}
	return b
}

// Append stores one tick. values must be given in channel order.
func (b *Buffer) Append(ts time.Time, values ...float64) error {
	if len(values) != len(b.channels) {
		return fmt.Errorf("series append: got %d values for %d channels", len(values), len(b.channels))
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	capacity := len(b.times)
	var pos int
	if b.size < capacity {
		pos = (b.head + b.size) % capacity
		b.size++
	} else {
		pos = b.head
		b.head = (b.head + 1) % capacity
	}
	b.times[pos] = ts
	for i, v := range values {
		b.values[i][pos] = v
	}
	return nil
}

func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.size
}

func (b *Buffer) Capacity() int {
	return len(b.times)
}

func (b *Buffer) Channels() []string {
	return append([]string(nil), b.channels...)
}

// Points copies one channel, oldest first.
func (b *Buffer) Points(channel string) ([]models.TimeSeriesPoint, error) {
	i, ok := b.index[channel]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChannel, channel)
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pointsLocked(i, 0), nil
}

// Snapshot copies every channel, oldest first.
func (b *Buffer) Snapshot() map[string][]models.TimeSeriesPoint {
	return b.Window(0)
}

// Window copies the entries no older than d before the newest one.
// d <= 0 returns everything.
func (b *Buffer) Window(d time.Duration) map[string][]models.TimeSeriesPoint {
	b.mu.RLock()
	defer b.mu.RUnlock()

	skip := 0
	if d > 0 && b.size > 0 {
		capacity := len(b.times)
		newest := b.times[(b.head+b.size-1)%capacity]
		cutoff := newest.Add(-d)
		for skip < b.size && b.times[(b.head+skip)%capacity].Before(cutoff) {
			skip++
		}
	}

	out := make(map[string][]models.TimeSeriesPoint, len(b.channels))
	for i, ch := range b.channels {
		out[ch] = b.pointsLocked(i, skip)
	}
	return out
}

func (b *Buffer) pointsLocked(ch, skip int) []models.TimeSeriesPoint {
	capacity := len(b.times)
	pts := make([]models.TimeSeriesPoint, 0, b.size-skip)
	for k := skip; k < b.size; k++ {
		pos := (b.head + k) % capacity
		pts = append(pts, models.TimeSeriesPoint{Timestamp: b.times[pos], Value: b.values[ch][pos]})
	}
	return pts
}
