package handlers

import (
	"io/fs"
	"net/http"

	"hvac_monitor/internal/logger"
	"hvac_monitor/internal/service"
	"hvac_monitor/web"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	static   fs.FS
	metrics  http.Handler
}

type Option func(*Handler)

// WithStatic serves the front end from fsys instead of the bundled build.
func WithStatic(fsys fs.FS) Option {
	return func(h *Handler) { h.static = fsys }
}

// WithMetrics exposes a Prometheus handler on /metrics.
func WithMetrics(m http.Handler) Option {
	return func(h *Handler) { h.metrics = m }
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{services: services, log: log}
	for _, o := range opts {
		o(h)
	}
	if h.static == nil {
		h.static = web.Dist()
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)

	h.registerFrontendRoutes(router)
	h.registerDataRoutes(router)
	h.registerAPIRoutes(router)

	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics))
	}

	// Live /data stream on the same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerDataRoutes(r *gin.Engine) {
	r.GET("/data", h.getData)
	// Body example: {"newFilename":"run_42"}
	r.POST("/prepare_download", h.prepareDownload)
	r.GET("/download_custom/:filename", h.downloadCustom)
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/series", h.getSeries)
		api.GET("/history", h.getHistory)
		api.GET("/logs", h.getLogs)
	}
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}
