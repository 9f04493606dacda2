package api

import (
	"errors"
	"net/http"
	"time"

	"DormBack/internal/domain/models"
	drepo "DormBack/internal/domain/repository"
	"DormBack/internal/service/ratelimit"
	"DormBack/internal/synthetic"
	"DormBack/internal/usecase"
	"DormBack/pkg/queue"
	"DormBack/pkg/util"

	xhttp "DormBack/pkg/http"
	xlogger "DormBack/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// FixturesEchoHandler exposes the fixture API over Echo.
type FixturesEchoHandler struct {
	logger   *xlogger.Logger
	fixtures *usecase.FixtureService
	harness  *usecase.HarnessRunner
	runs     *usecase.RunStore
	queue    queue.QueueService
	storage  drepo.Storage
	rl       *ratelimit.Limiter
	stream   *StreamEchoHandler
	backend  string
}

func NewFixturesEchoHandler(
	logger *xlogger.Logger,
	fixtures *usecase.FixtureService,
	harness *usecase.HarnessRunner,
	runs *usecase.RunStore,
	q queue.QueueService,
	storage drepo.Storage,
	stream *StreamEchoHandler,
	backend string,
) *FixturesEchoHandler {
	return &FixturesEchoHandler{
		logger:   logger,
		fixtures: fixtures,
		harness:  harness,
		runs:     runs,
		queue:    q,
		storage:  storage,
		rl:       ratelimit.New(),
		stream:   stream,
		backend:  backend,
	}
}

func (h *FixturesEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.GET("/series", h.Series)
	g.GET("/checks", h.Checks)
	g.POST("/runs", h.CreateRun)
	g.GET("/runs/:id", h.GetRun)
	if h.stream != nil {
		g.GET("/stream", h.stream.Stream)
	}
}

// Series returns the deterministic series for (seed, length, start).
func (h *FixturesEchoHandler) Series(c echo.Context) error {
	req := &models.SeriesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	start, ok := util.ParseTime(req.Start)
	if !ok {
		return xhttp.BadRequestResponse(c, "invalid start date")
	}

	s, err := h.fixtures.GetSeries(c.Request().Context(), "api", *req.Seed, *req.Length, start)
	if errors.Is(err, synthetic.ErrInvalidArgument) {
		return xhttp.BadRequestResponse(c, err.Error())
	}
	if err != nil {
		h.logger.Error("series usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	// Identical parameters produce identical bytes; let clients cache.
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, s)
}

// Checks executes the protocol harness and returns the report.
func (h *FixturesEchoHandler) Checks(c echo.Context) error {
	report := h.harness.Run(c.Request().Context())
	return xhttp.SuccessResponse(c, report)
}

// CreateRun enqueues an async generation run and returns its id.
func (h *FixturesEchoHandler) CreateRun(c echo.Context) error {
	if !h.rl.Allow(c.RealIP()+":runs", 5, 1) {
		return xhttp.AppErrorResponse(c, xhttp.NewAppError("rate_limited", "", "too many run requests", http.StatusTooManyRequests))
	}

	req := &models.RunRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	start, ok := util.ParseTime(req.Start)
	if !ok {
		return xhttp.BadRequestResponse(c, "invalid start date")
	}

	run := &models.FixtureRun{
		ID:        uuid.NewString(),
		Seed:      *req.Seed,
		Length:    *req.Length,
		Start:     start,
		Backend:   h.backend,
		State:     models.RunQueued,
		CreatedAt: time.Now().UTC(),
	}
	ctx := c.Request().Context()
	if err := h.runs.Save(ctx, run); err != nil {
		h.logger.Error("run save error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	err := h.queue.PublishMessage(ctx, usecase.RunMessageType, &usecase.RunPayload{
		RunID:  run.ID,
		Seed:   run.Seed,
		Length: run.Length,
		Start:  req.Start,
	})
	if err != nil {
		h.logger.Error("run enqueue error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	h.logger.Info("run queued",
		xlogger.String("run_id", run.ID),
		xlogger.Int64("seed", run.Seed),
		xlogger.Int("length", run.Length))
	return xhttp.CreatedResponse(c, run)
}

// GetRun returns the state of an async run.
func (h *FixturesEchoHandler) GetRun(c echo.Context) error {
	run, err := h.runs.Get(c.Request().Context(), c.Param("id"))
	if errors.Is(err, usecase.ErrRunNotFound) {
		return xhttp.NotFoundResponse(c, "run not found")
	}
	if err != nil {
		h.logger.Error("run get error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, run)
}

// Health reports process liveness plus backend reachability.
func (h *FixturesEchoHandler) Health(c echo.Context) error {
	status := map[string]string{"status": "ok"}
	if h.storage != nil {
		if err := h.storage.Health(c.Request().Context()); err != nil {
			status["status"] = "degraded"
			status["storage"] = err.Error()
		} else {
			status["storage"] = "ok"
		}
	}
	return xhttp.SuccessResponse(c, status)
}

var _ xhttp.Handler = (*FixturesEchoHandler)(nil)
