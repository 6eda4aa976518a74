package handlers

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"hvac_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK       = "ok"
	msgCSVSaved    = "CSV saved"
	errGetData     = "failed to load sensor data"
	errFileMissing = "file not found"
	errDownload    = "failed to send file"
	errInvalidBody = "invalid body: "
)

// PrepareDownloadRequest is the body of POST /prepare_download.
type PrepareDownloadRequest struct {
	// Target file name; ".csv" is appended when missing. Defaults to saved_data.csv.
	NewFilename string `json:"newFilename" example:"run_42"`
}

// PrepareDownloadResponse is returned after the log was copied.
type PrepareDownloadResponse struct {
	Message     string `json:"message" example:"CSV saved"`
	DownloadURL string `json:"downloadUrl" example:"/download_custom/run_42.csv"`
	ArchiveKey  string `json:"archiveKey,omitempty" example:"runs/run_42.csv"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Latest sensor snapshot
// @Description  Snapshot, process start time (local, YYYY-MM-DD HH:MM:SS) and whole seconds since start. updated_at is null before the first sample; fault is set after a device failure.
// @Tags         data
// @Produce      json
// @Success      200  {object}  service.DataResponse
// @Failure      500  {object}  map[string]string
// @Router       /data [get]
func (h *Handler) getData(c *gin.Context) {
	data, err := h.services.Monitoring.GetData(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetData, "data_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// @Summary      Save the CSV log under a new name
// @Description  Copies the live CSV log to newFilename (".csv" appended when missing) and returns its download URL.
// @Tags         data
// @Accept       json
// @Produce      json
// @Param        body  body      PrepareDownloadRequest  false  "Target file name"
// @Success      200   {object}  PrepareDownloadResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /prepare_download [post]
func (h *Handler) prepareDownload(c *gin.Context) {
	var req PrepareDownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody + err.Error()})
		return
	}

	res, err := h.services.Export.PrepareDownload(c.Request.Context(), req.NewFilename)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, service.ErrInvalidFilename) {
			code = http.StatusBadRequest
		}
		h.logAndJSONError(c, code, err.Error(), "prepare_download_failed", err, "filename", req.NewFilename)
		return
	}

	c.JSON(http.StatusOK, PrepareDownloadResponse{
		Message:     msgCSVSaved,
		DownloadURL: res.DownloadURL,
		ArchiveKey:  res.ArchiveKey,
	})
}

// @Summary      Download a saved CSV
// @Tags         data
// @Produce      octet-stream
// @Param        filename  path  string  true  "File name returned by /prepare_download"
// @Success      200
// @Failure      404  {object}  map[string]string
// @Router       /download_custom/{filename} [get]
func (h *Handler) downloadCustom(c *gin.Context) {
	name := c.Param("filename")
	path, err := h.services.Export.Resolve(name)
	if err != nil {
		if errors.Is(err, service.ErrFileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errFileMissing})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errDownload, "download_failed", err, "filename", name)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
