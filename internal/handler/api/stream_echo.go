package api

import (
	"net/http"
	"time"

	"DormBack/internal/domain/models"
	"DormBack/internal/usecase"
	"DormBack/pkg/util"

	xhttp "DormBack/pkg/http"
	xlogger "DormBack/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const streamWriteTimeout = 10 * time.Second

// StreamEchoHandler replays a deterministic series over a WebSocket,
// one point per frame. Consumers use it to exercise streaming code
// paths against reproducible data.
type StreamEchoHandler struct {
	logger   *xlogger.Logger
	fixtures *usecase.FixtureService
	upgrader websocket.Upgrader
	gap      time.Duration
}

// NewStreamEchoHandler creates a stream handler. gap is the pause
// between frames; zero replays as fast as the client reads.
func NewStreamEchoHandler(logger *xlogger.Logger, fixtures *usecase.FixtureService, gap time.Duration) *StreamEchoHandler {
	return &StreamEchoHandler{
		logger:   logger,
		fixtures: fixtures,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// The harness serves test clients on any origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		gap: gap,
	}
}

// Stream handles GET /api/stream.
func (h *StreamEchoHandler) Stream(c echo.Context) error {
	req := &models.StreamRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	start, ok := util.ParseTime(req.Start)
	if !ok {
		return xhttp.BadRequestResponse(c, "invalid start date")
	}

	ctx := c.Request().Context()
	s, err := h.fixtures.GetSeries(ctx, "replay", *req.Seed, *req.Length, start)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	for i := range s.Points {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
		if err := conn.WriteJSON(&s.Points[i]); err != nil {
			h.logger.Debug("stream client gone", xlogger.Error(err))
			return nil
		}
		if h.gap > 0 && i < len(s.Points)-1 {
			time.Sleep(h.gap)
		}
	}

	_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "replay complete"))
	return nil
}
