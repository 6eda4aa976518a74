package series

import (
	"errors"
	"sync"
	"testing"
	"time"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestBuffer_AppendBelowCapacity(t *testing.T) {
	b := NewBuffer(5, "p200", "p300")
	for i := 0; i < 3; i++ {
		if err := b.Append(t0.Add(time.Duration(i)*time.Second), float64(i), float64(10*i)); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if b.Len() != 3 {
		t.Fatalf("len: want 3, got %d", b.Len())
	}
	pts, err := b.Points("p300")
	if err != nil {
		t.Fatalf("points: %v", err)
	}
	for i, p := range pts {
		if p.Value != float64(10*i) || !p.Timestamp.Equal(t0.Add(time.Duration(i)*time.Second)) {
			t.Fatalf("point %d: %+v", i, p)
		}
	}
}

func TestBuffer_EvictsOldestBeyondCapacity(t *testing.T) {
	const capacity = 4
	for _, k := range []int{1, 3, 4, 9} {
		b := NewBuffer(capacity, "p200", "p300")
		total := capacity + k
		for i := 0; i < total; i++ {
			_ = b.Append(t0.Add(time.Duration(i)*time.Second), float64(i), float64(-i))
		}
		if b.Len() != capacity {
			t.Fatalf("k=%d: len %d, want %d", k, b.Len(), capacity)
		}
		snap := b.Snapshot()
		for _, ch := range []string{"p200", "p300"} {
			if len(snap[ch]) != capacity {
				t.Fatalf("k=%d %s: len %d", k, ch, len(snap[ch]))
			}
		}
		for j := 0; j < capacity; j++ {
			want := total - capacity + j
			a, c := snap["p200"][j], snap["p300"][j]
			if a.Value != float64(want) || c.Value != float64(-want) {
				t.Fatalf("k=%d idx %d: got %v/%v, want %d", k, j, a.Value, c.Value, want)
			}
			if !a.Timestamp.Equal(c.Timestamp) {
				t.Fatalf("k=%d idx %d: timestamps diverge", k, j)
			}
		}
	}
}

func TestBuffer_AppendValueCountMismatch(t *testing.T) {
	b := NewBuffer(3, "p200", "p300")
	if err := b.Append(t0, 1); err == nil {
		t.Fatalf("expected error for missing value")
	}
	if b.Len() != 0 {
		t.Fatalf("failed append must not store anything")
	}
}

func TestBuffer_UnknownChannel(t *testing.T) {
	b := NewBuffer(3, "p200")
	if _, err := b.Points("p999"); !errors.Is(err, ErrUnknownChannel) {
		t.Fatalf("want ErrUnknownChannel, got %v", err)
	}
}

func TestBuffer_Window(t *testing.T) {
	b := NewBuffer(100, "p200")
	for i := 0; i < 10; i++ {
		_ = b.Append(t0.Add(time.Duration(i)*time.Minute), float64(i))
	}
	w := b.Window(3 * time.Minute)["p200"]
	if len(w) != 4 {
		t.Fatalf("window len: want 4, got %d", len(w))
	}
	if w[0].Value != 6 || w[3].Value != 9 {
		t.Fatalf("window bounds: %+v", w)
	}
	if got := len(b.Window(0)["p200"]); got != 10 {
		t.Fatalf("zero window should return all, got %d", got)
	}
	if got := len(NewBuffer(3, "p200").Window(time.Hour)["p200"]); got != 0 {
		t.Fatalf("empty buffer window: %d", got)
	}
}

func TestBuffer_SnapshotIsACopy(t *testing.T) {
	b := NewBuffer(2, "p200")
	_ = b.Append(t0, 1)
	snap := b.Snapshot()
	_ = b.Append(t0.Add(time.Second), 2)
	_ = b.Append(t0.Add(2*time.Second), 3)
	if len(snap["p200"]) != 1 || snap["p200"][0].Value != 1 {
		t.Fatalf("snapshot mutated: %+v", snap)
	}
}

func TestBuffer_ConcurrentAppendAndRead(t *testing.T) {
	b := NewBuffer(50, "p200", "p300")
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			_ = b.Append(t0.Add(time.Duration(i)*time.Second), float64(i), float64(i))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			snap := b.Snapshot()
			if len(snap["p200"]) != len(snap["p300"]) {
				t.Errorf("parallel sequences diverged: %d vs %d", len(snap["p200"]), len(snap["p300"]))
				return
			}
			for j := range snap["p200"] {
				if snap["p200"][j] != snap["p300"][j] {
					t.Errorf("partial append observed at %d", j)
					return
				}
			}
		}
	}()
	wg.Wait()
}
