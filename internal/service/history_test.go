package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestHistoryService_List(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+1", 3600)
	from := time.Date(2025, 2, 1, 10, 0, 0, 0, loc)
	to := from.Add(time.Hour)

	cases := []struct {
		name      string
		filter    HistoryFilter
		wantErr   error
		wantLimit int
		wantCalls int
	}{
		{"passes limit through", HistoryFilter{From: from, To: to, Limit: 50}, nil, 50, 1},
		{"caps large limit", HistoryFilter{Limit: MaxHistoryLimit + 1}, nil, MaxHistoryLimit, 1},
		{"zero limit left to repo", HistoryFilter{}, nil, 0, 1},
		{"inverted range", HistoryFilter{From: to, To: from}, errInvalidTimeRange, 0, 0},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			repo := &fakeReadingRepo{}
			svc := NewHistoryService(repo)

			_, err := svc.List(context.Background(), tc.filter)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if repo.calls != tc.wantCalls {
				t.Fatalf("calls = %d, want %d", repo.calls, tc.wantCalls)
			}
			if tc.wantCalls == 0 {
				return
			}
			if repo.gotLimit != tc.wantLimit {
				t.Fatalf("limit = %d, want %d", repo.gotLimit, tc.wantLimit)
			}
			if !tc.filter.From.IsZero() && repo.gotFrom.Location() != time.UTC {
				t.Fatalf("from not normalized to UTC: %v", repo.gotFrom)
			}
		})
	}
}

func TestHistorySink_SavesReading(t *testing.T) {
	repo := &fakeReadingRepo{saveErr: errBoom}
	sink := NewHistorySink(repo)

	if sink.Name() != "history" {
		t.Fatalf("name = %q", sink.Name())
	}
	if err := sink.Publish(context.Background(), sampleReading()); !errors.Is(err, errBoom) {
		t.Fatalf("err = %v", err)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("saved = %d", len(repo.saved))
	}
}
