package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"hvac_monitor/internal/models"
	"hvac_monitor/internal/service"
	"hvac_monitor/internal/state"
)

func TestHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
		t.Fatalf("health = %d %s", w.Code, w.Body.String())
	}
}

func TestGetData(t *testing.T) {
	snap := models.NewSensorSnapshot()
	snap.Voltage = 121.5
	snap.PressureSwitch = models.SwitchClosed
	mon := &mockMonitoring{data: service.DataResponse{
		SensorData:     snap,
		StartTime:      "2025-07-01 09:30:00",
		RunTimeSeconds: 42,
		Sampling:       true,
	}}
	r := newTestRouter(&service.Service{Monitoring: mon})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/data", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["start_time"] != "2025-07-01 09:30:00" || out["run_time_seconds"] != 42.0 {
		t.Fatalf("unexpected body: %v", out)
	}
	data := out["sensor_data"].(map[string]any)
	if data["voltage"] != 121.5 || data["pressure_switch"] != "Closed" {
		t.Fatalf("unexpected sensor_data: %v", data)
	}
	for _, k := range models.SnapshotFieldNames {
		if _, ok := data[k]; !ok {
			t.Fatalf("sensor_data missing %q", k)
		}
	}

	mon.err = errors.New("boom")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/data", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestGetData_StableAfterDeviceFault(t *testing.T) {
	store := state.NewStore(time.Now().Add(-5 * time.Second))
	snap := models.NewSensorSnapshot()
	snap.Pressure200 = 99
	store.Publish(snap, time.Now())
	store.MarkFault(errors.New("device read: disconnected"))

	r := newTestRouter(&service.Service{Monitoring: service.NewMonitoringService(store)})

	var first string
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/data", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d", w.Code)
		}
		var out struct {
			SensorData models.SensorSnapshot `json:"sensor_data"`
			Sampling   bool                  `json:"sampling"`
			Fault      string                `json:"fault"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if out.SensorData.Pressure200 != 99 || out.Sampling || out.Fault == "" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
		b, _ := json.Marshal(out.SensorData)
		if i == 0 {
			first = string(b)
		} else if string(b) != first {
			t.Fatalf("snapshot changed after fault: %s vs %s", b, first)
		}
	}
}

func TestPrepareDownload(t *testing.T) {
	exp := &mockExport{res: service.ExportResult{Filename: "out.csv", DownloadURL: "/download_custom/out.csv"}}
	r := newTestRouter(&service.Service{Export: exp})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/prepare_download", bytes.NewBufferString(`{"newFilename":"out"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var out map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out["message"] != "CSV saved" || out["downloadUrl"] != "/download_custom/out.csv" {
		t.Fatalf("unexpected body: %v", out)
	}
	if _, ok := out["archiveKey"]; ok {
		t.Fatalf("archiveKey present without archive: %v", out)
	}
	if exp.lastName != "out" {
		t.Fatalf("service got %q", exp.lastName)
	}

	// Empty body uses the default name.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/prepare_download", nil))
	if w.Code != http.StatusOK || exp.lastName != "" {
		t.Fatalf("empty body: status=%d name=%q", w.Code, exp.lastName)
	}

	// Malformed JSON.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/prepare_download", bytes.NewBufferString(`{"newFilename":`)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestPrepareDownload_Errors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"io failure", errors.New("copy csv log: disk full"), http.StatusInternalServerError},
		{"invalid name", service.ErrInvalidFilename, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Export: &mockExport{err: tc.err}})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/prepare_download", bytes.NewBufferString(`{}`)))
			if w.Code != tc.want {
				t.Fatalf("status=%d, want %d", w.Code, tc.want)
			}
			var out map[string]string
			_ = json.Unmarshal(w.Body.Bytes(), &out)
			if out["error"] != tc.err.Error() {
				t.Fatalf("error body = %v", out)
			}
		})
	}
}

func TestDownloadCustom(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "out.csv")
	if err := os.WriteFile(p, []byte("timestamp\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	exp := &mockExport{resolvePath: p}
	r := newTestRouter(&service.Service{Export: exp})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/download_custom/out.csv", nil))
	if w.Code != http.StatusOK || w.Body.String() != "timestamp\n" {
		t.Fatalf("status=%d body=%q", w.Code, w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") || !strings.Contains(cd, "out.csv") {
		t.Fatalf("Content-Disposition = %q", cd)
	}

	exp.resolveErr = service.ErrFileNotFound
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/download_custom/nope.csv", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

// End to end through the real export service: the saved file is a byte copy of the log.
func TestPrepareThenDownload_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "data_log.csv")
	content := strings.Join(service.CSVHeader, ",") + "\n2025-01-01T00:00:00,1,2,3,4,5,6,7,8,9,10,11,12,Open\n"
	if err := os.WriteFile(logPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	src := service.NewCSVLoggerService(state.NewStore(time.Now()), nil, nil, nil, service.CSVOptions{Path: logPath})
	r := newTestRouter(&service.Service{Export: service.NewExportService(src, nil, nil, nil)})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/prepare_download", bytes.NewBufferString(`{"newFilename":"out"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("prepare status=%d body=%s", w.Code, w.Body.String())
	}
	var out map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out["downloadUrl"] != "/download_custom/out.csv" {
		t.Fatalf("downloadUrl = %q", out["downloadUrl"])
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, out["downloadUrl"], nil))
	if w.Code != http.StatusOK || w.Body.String() != content {
		t.Fatalf("download status=%d body=%q", w.Code, w.Body.String())
	}
}
