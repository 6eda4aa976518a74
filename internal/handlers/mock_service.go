package handlers

import (
	"context"
	"time"

	"hvac_monitor/internal/models"
	"hvac_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockMonitoring struct {
	data service.DataResponse
	err  error
}

func (m *mockMonitoring) GetData(ctx context.Context) (service.DataResponse, error) {
	return m.data, m.err
}

type mockExport struct {
	res      service.ExportResult
	err      error
	lastName string
	calls    int

	resolvePath string
	resolveErr  error
	lastResolve string
}

func (m *mockExport) PrepareDownload(ctx context.Context, newFilename string) (service.ExportResult, error) {
	m.calls++
	m.lastName = newFilename
	return m.res, m.err
}

func (m *mockExport) Resolve(filename string) (string, error) {
	m.lastResolve = filename
	return m.resolvePath, m.resolveErr
}

type mockEventLog struct {
	resp     []models.DeviceEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.DeviceEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

type mockHistory struct {
	resp   []models.Reading
	err    error
	last   service.HistoryFilter
	called bool
}

func (m *mockHistory) List(ctx context.Context, f service.HistoryFilter) ([]models.Reading, error) {
	m.called = true
	m.last = f
	return m.resp, m.err
}

type mockSeries struct {
	resp       map[string][]models.TimeSeriesPoint
	lastWindow time.Duration
}

func (m *mockSeries) Window(d time.Duration) map[string][]models.TimeSeriesPoint {
	m.lastWindow = d
	return m.resp
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service, opts ...Option) *gin.Engine {
	h := NewHandler(s, nil, opts...)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
