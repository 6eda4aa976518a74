// @title        HVAC Bench Monitor API
// @version      1.0
// @description  Live sensor snapshot, CSV export and history for the HVAC test bench.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "hvac_monitor/docs"
	"hvac_monitor/internal/archive"
	"hvac_monitor/internal/config"
	"hvac_monitor/internal/device"
	"hvac_monitor/internal/handlers"
	"hvac_monitor/internal/logger"
	"hvac_monitor/internal/metrics"
	mqttpub "hvac_monitor/internal/publisher/mqtt"
	"hvac_monitor/internal/repository"
	"hvac_monitor/internal/repository/db"
	"hvac_monitor/internal/series"
	"hvac_monitor/internal/server"
	"hvac_monitor/internal/service"
	"hvac_monitor/internal/state"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	shutdownGrace  = 10 * time.Second
	connectTimeout = 10 * time.Second
)

func main() {
	configDir := flag.String("config", "configs", "directory containing config.yml")
	flag.Parse()

	// load config.yml + HVAC_* env
	cfg, err := config.Load(*configDir)
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.Log.Level)
	defer func() { _ = log.Sync() }()
	gin.SetMode(gin.ReleaseMode)

	startedAt := time.Now()

	// open DB
	sqlDB, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err, "path", cfg.DB.Path)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	store := state.NewStore(startedAt)
	buffer := series.NewBuffer(cfg.Series.Capacity, service.SeriesChannels...)

	sinks := []service.Sink{service.NewHistorySink(repos.ReadingRepo)}
	var (
		rec         service.Recorder
		handlerOpts []handlers.Option
	)
	if cfg.Metrics.Enabled {
		m := newMetrics(log)
		rec = m
		sinks = append(sinks, m)
		handlerOpts = append(handlerOpts, handlers.WithMetrics(m.Handler()))
	}
	if cfg.MQTT.Enabled {
		if pub := connectMQTT(ctx, cfg.MQTT, log); pub != nil {
			defer pub.Close()
			sinks = append(sinks, pub)
		}
	}
	if cfg.HTTP.StaticDir != "" {
		handlerOpts = append(handlerOpts, handlers.WithStatic(os.DirFS(cfg.HTTP.StaticDir)))
	}

	deps := service.Deps{
		Store:          store,
		Buffer:         buffer,
		Opener:         newOpener(cfg.Device),
		Sinks:          sinks,
		Recorder:       rec,
		Log:            log,
		SampleInterval: cfg.Sampling.Interval,
		CSVPath:        cfg.CSV.Path,
		CSVAppend:      cfg.CSV.Append,
		CSVInterval:    cfg.CSV.Interval,
	}
	if cfg.Export.S3.Bucket != "" {
		arch, err := archive.NewS3Archive(ctx, cfg.Export.S3.Bucket, cfg.Export.S3.Prefix)
		if err != nil {
			log.Fatalw("failed to init s3 archive", "err", err, "bucket", cfg.Export.S3.Bucket)
		}
		deps.Archive = arch
	}

	services := service.NewService(repos, deps)
	apiHandler := handlers.NewHandler(services, log, handlerOpts...)

	// background workers
	var wg sync.WaitGroup
	runWorker(ctx, &wg, log, "sampler", services.Sampler.Run)
	runWorker(ctx, &wg, log, "csv_logger", services.CSVLogger.Run)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.HTTP.Port, apiHandler, log)

	log.Infow("hvac monitor started",
		"port", cfg.HTTP.Port, "driver", cfg.Device.Driver, "csv", cfg.CSV.Path, "db", cfg.DB.Path)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
	wg.Wait()
}

func newOpener(c config.DeviceConfig) device.Opener {
	if c.Driver == config.DriverModbus {
		return device.NewModbusOpener(c.URL, c.Timeout)
	}
	return device.Simulated{}
}

func newMetrics(log *logger.Logger) *metrics.Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(reg)
	if err != nil {
		log.Fatalw("failed to register metrics", "err", err)
	}
	return m
}

// connectMQTT returns nil when the broker is unreachable; sampling runs without it.
func connectMQTT(ctx context.Context, c config.MQTTConfig, log *logger.Logger) *mqttpub.Publisher {
	cctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	pub, err := mqttpub.Connect(cctx, mqttpub.Options{
		Broker:   c.Broker,
		ClientID: c.ClientID,
		Username: c.Username,
		Password: c.Password,
		Topic:    c.Topic,
	})
	if err != nil {
		log.Errorw("mqtt connect failed; publishing disabled", "err", err, "broker", c.Broker)
		return nil
	}
	log.Infow("mqtt connected", "broker", c.Broker, "topic", c.Topic)
	return pub
}

// runWorker runs fn in its own goroutine. A worker that fails is logged and
// not restarted; the HTTP server keeps serving the last state.
func runWorker(ctx context.Context, wg *sync.WaitGroup, log *logger.Logger, name string, fn func(context.Context) error) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := fn(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Errorw("worker stopped", "worker", name, "err", err)
			return
		}
		log.Infow("worker exited", "worker", name)
	}()
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	if err := srv.Listen(port, handler.InitRoutes()); err != nil {
		log.Fatalw("error starting server", "err", err, "port", port)
	}
	go func() {
		if err := srv.Serve(); err != nil {
			log.Fatalw("error serving http", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
