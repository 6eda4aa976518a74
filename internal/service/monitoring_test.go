package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"hvac_monitor/internal/models"
	"hvac_monitor/internal/state"
)

func TestMonitoringService_GetData_BeforeFirstTick(t *testing.T) {
	started := time.Date(2025, 7, 1, 9, 30, 0, 0, time.Local)
	store := state.NewStore(started)
	svc := NewMonitoringService(store)
	svc.now = func() time.Time { return started.Add(90*time.Second + 700*time.Millisecond) }

	got, err := svc.GetData(context.Background())
	if err != nil {
		t.Fatalf("GetData: %v", err)
	}
	if got.SensorData != models.NewSensorSnapshot() {
		t.Fatalf("expected default snapshot, got %+v", got.SensorData)
	}
	if got.SensorData.PressureSwitch != models.SwitchOpen {
		t.Fatalf("default switch = %q", got.SensorData.PressureSwitch)
	}
	if got.StartTime != "2025-07-01 09:30:00" {
		t.Fatalf("start_time = %q", got.StartTime)
	}
	if got.RunTimeSeconds != 90 {
		t.Fatalf("run_time_seconds = %d, want 90", got.RunTimeSeconds)
	}
	if got.UpdatedAt != nil || got.Sampling || got.Fault != "" {
		t.Fatalf("unexpected status: updated=%v sampling=%v fault=%q", got.UpdatedAt, got.Sampling, got.Fault)
	}
}

func TestMonitoringService_GetData_AfterPublishAndFault(t *testing.T) {
	started := time.Now().Add(-time.Minute)
	store := state.NewStore(started)
	svc := NewMonitoringService(store)

	snap := models.NewSensorSnapshot()
	snap.Pressure200 = 150
	at := time.Now()
	store.Publish(snap, at)

	got, _ := svc.GetData(context.Background())
	if got.SensorData.Pressure200 != 150 || !got.Sampling {
		t.Fatalf("unexpected data after publish: %+v", got)
	}
	if got.UpdatedAt == nil || !got.UpdatedAt.Equal(at) {
		t.Fatalf("updated_at = %v, want %v", got.UpdatedAt, at)
	}
	if got.RunTimeSeconds < 59 {
		t.Fatalf("run_time_seconds = %d", got.RunTimeSeconds)
	}

	store.MarkFault(errors.New("device disconnected"))
	got, _ = svc.GetData(context.Background())
	if got.SensorData.Pressure200 != 150 {
		t.Fatalf("snapshot lost after fault: %+v", got.SensorData)
	}
	if got.Sampling || got.Fault != "device disconnected" {
		t.Fatalf("unexpected status after fault: sampling=%v fault=%q", got.Sampling, got.Fault)
	}
}
