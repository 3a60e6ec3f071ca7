package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/stemsi/teachpay-backend/internal/middleware"
	"github.com/stemsi/teachpay-backend/internal/model"
	"github.com/stemsi/teachpay-backend/internal/response"
	"github.com/stemsi/teachpay-backend/internal/service"
	ws "github.com/stemsi/teachpay-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams export job status.
type WSHandler struct {
	exportService *service.ExportService
	log           zerolog.Logger
	upgrader      websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(exportService *service.ExportService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		exportService: exportService,
		log:           log.With().Str("component", "ws_handler").Logger(),
		upgrader:      buildUpgrader(allowedOrigins),
	}
}

// ExportStatusStream godoc
// WS /ws/v1/exports/:job_id?token=
// Sends the current job state, then every change until the job finishes.
func (h *WSHandler) ExportStatusStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	jobID, ok := uuidParam(c, "job_id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	job, err := h.exportService.Status(ctx, jobID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !canAccessJob(claims, job) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	// Subscribe before upgrading so no update between the snapshot and the
	// subscription is lost; the snapshot is re-read below.
	sub := h.exportService.Subscribe(ctx, jobID)
	defer sub.Close()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("job_id", jobID.String()).Str("user_id", claims.UserID.String()).Logger()
	wsLog.Debug().Msg("Client following export")

	if job, err = h.exportService.Status(ctx, jobID); err != nil {
		ws.WriteError(conn, "export not found")
		return
	}
	if err := ws.WriteStatus(conn, job); err != nil || job.Status.Finished() {
		return
	}

	// Reader: answers pings and notices the client going away.
	closed := make(chan struct{})
	pings := make(chan struct{}, 1)
	go func() {
		defer close(closed)
		for {
			var msg ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				}
				return
			}
			if msg.Action == ws.ActionPing {
				select {
				case pings <- struct{}{}:
				default:
				}
			}
		}
	}()

	updates := sub.Channel()
	for {
		select {
		case <-closed:
			return
		case <-ctx.Done():
			return
		case <-pings:
			ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
		case msg, ok := <-updates:
			if !ok {
				return
			}
			var update model.ExportJob
			if err := json.Unmarshal([]byte(msg.Payload), &update); err != nil {
				wsLog.Error().Err(err).Msg("Invalid status payload")
				continue
			}
			if err := ws.WriteStatus(conn, &update); err != nil || update.Status.Finished() {
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, string(update.Status)))
				return
			}
		}
	}
}
