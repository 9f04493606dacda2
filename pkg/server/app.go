package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"DormBack/internal/usecase"
	pkgch "DormBack/pkg/clickhouse"
	"DormBack/pkg/config"
	xhttp "DormBack/pkg/http"
	pkgkafka "DormBack/pkg/kafka"
	applogger "DormBack/pkg/logger"
	"DormBack/pkg/queue"
)

// App encapsulates the harness process lifecycle: HTTP API, optional
// Kafka consumer, optional Redis-backed run queue.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	handler    xhttp.Handler
	httpServer *xhttp.Server
	consumer   *pkgkafka.Consumer
	kh         pkgkafka.MessageHandler
	chClient   *pkgch.Client
	runQueue   *queue.RedisQueue
	qs         queue.QueueService
	proc       *usecase.SeriesProcessor
}

// New creates an App with all dependencies injected.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	handler xhttp.Handler,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	chClient *pkgch.Client,
	runQueue *queue.RedisQueue,
	qs queue.QueueService,
	proc *usecase.SeriesProcessor,
) *App {
	return &App{
		cfg:      cfg,
		log:      log,
		handler:  handler,
		consumer: consumer,
		kh:       kh,
		chClient: chClient,
		runQueue: runQueue,
		qs:       qs,
		proc:     proc,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Aggregate repeated log lines through the queue when a broker is
	// available; local runs log straight to stdout.
	if a.runQueue != nil {
		a.log.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          "dormback.logs",
			Publisher:      a.qs,
		})
		defer a.log.RemoveCollector()
	}

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if a.runQueue != nil {
		if err := a.runQueue.Start(); err != nil {
			a.log.Error("run queue start error", applogger.Error(err))
			return err
		}
		a.runQueue.StartRetryProcessor()
		a.log.Info("run queue started", applogger.Int("workers", a.cfg.Queue.Workers))
	}

	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		go func() {
			if err := a.consumer.Start(); err != nil {
				a.log.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		a.log.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("http server started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("mode", a.cfg.Mode))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	if a.runQueue != nil {
		if err := a.runQueue.Stop(shutdownCtx); err != nil {
			a.log.Warn("run queue stop error", applogger.Error(err))
		}
	}

	if a.consumer != nil {
		if err := a.consumer.Stop(shutdownCtx); err != nil {
			a.log.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	if a.proc != nil {
		a.proc.Close()
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.log.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
