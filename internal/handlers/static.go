package handlers

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	indexFile = "index.html"
	assetsDir = "assets"
)

func (h *Handler) registerFrontendRoutes(r *gin.Engine) {
	r.GET("/", h.index)
	if assets, err := fs.Sub(h.static, assetsDir); err == nil {
		r.StaticFS("/"+assetsDir, http.FS(assets))
	}
}

// index writes index.html directly; http.FileServer would redirect
// "/index.html" back to "/".
func (h *Handler) index(c *gin.Context) {
	b, err := fs.ReadFile(h.static, indexFile)
	if err != nil {
		h.logAndJSONError(c, http.StatusNotFound, "front end not found", "index_read_failed", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", b)
}
