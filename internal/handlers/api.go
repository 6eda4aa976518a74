package handlers

import (
	"net/http"
	"strconv"
	"time"

	"hvac_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errWindowInvalid = "invalid 'window'; use a Go duration such as 15m or 1h"
	errLimitInvalid  = "invalid 'limit'; use a positive integer"
	errHistory       = "failed to load history"
)

// @Summary      Pressure time series
// @Description  Points of every charted channel, oldest first. window limits the result to the trailing duration; omit it for the whole buffer.
// @Tags         data
// @Produce      json
// @Param        window  query  string  false  "Trailing window (Go duration)"  example(1h)
// @Success      200  {object}  map[string]interface{}  "window, series"
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/series [get]
func (h *Handler) getSeries(c *gin.Context) {
	var window time.Duration
	if qs := c.Query("window"); qs != "" {
		d, err := time.ParseDuration(qs)
		if err != nil || d < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": errWindowInvalid})
			return
		}
		window = d
	}
	c.JSON(http.StatusOK, gin.H{
		"window": window.String(),
		"series": h.services.Series.Window(window),
	})
}

// @Summary      Persisted readings
// @Description  Readings stored by the history sink, oldest first. Same time formats as /api/v1/logs.
// @Tags         data
// @Produce      json
// @Param        from   query  string  false  "Start of range"  example(2025-08-01)
// @Param        to     query  string  false  "End of range; date-only is end of day"  example(2025-08-31)
// @Param        limit  query  int     false  "Maximum readings (newest kept)"  example(3600)
// @Success      200  {object}  map[string]interface{}  "count, readings"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/history [get]
func (h *Handler) getHistory(c *gin.Context) {
	from, to, ok := h.parseRange(c)
	if !ok {
		return
	}
	limit := 0
	if qs := c.Query("limit"); qs != "" {
		n, err := strconv.Atoi(qs)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": errLimitInvalid})
			return
		}
		limit = n
	}

	readings, err := h.services.History.List(c.Request.Context(), service.HistoryFilter{
		From:  from,
		To:    to,
		Limit: limit,
	})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errHistory, "history_list_failed", err,
			"from", from, "to", to, "limit", limit)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(readings),
		"readings": readings,
	})
}
