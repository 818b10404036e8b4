// Package websocket implements the asynchronous export request channel.
// A client sends a date-range request, receives an immediate ack, and later
// receives the base64-encoded CSV (or an error) on the same connection.
package websocket

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/retailops/korona-export/pkg/utils"
	"go.uber.org/zap"
)

// ExportService runs one full export for a validated date range.
type ExportService interface {
	Export(ctx context.Context, startDate, endDate string) []byte
}

// exportRequest is the inbound date-range message.
type exportRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// response is the outbound protocol frame. Type is one of ack, csv, error.
type response struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
	Data    string `json:"data,omitempty"`
}

// Handler upgrades HTTP requests to WebSocket connections and serves the
// export request protocol on each.
type Handler struct {
	service  ExportService
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(service ExportService, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The browser page is served from this same server; no
			// cross-origin policy to enforce
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Handle is the gin route handler for the WebSocket endpoint.
func (h *Handler) Handle(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", zap.Error(err))
		return
	}

	h.logger.Info("WebSocket connection established",
		zap.String("remote_addr", conn.RemoteAddr().String()))
	h.serve(&safeConn{conn: conn})
}

// serve runs the per-connection read loop until the client disconnects.
func (h *Handler) serve(conn *safeConn) {
	defer conn.Close()

	for {
		_, message, err := conn.conn.ReadMessage()
		if err != nil {
			h.logger.Info("WebSocket connection closed", zap.Error(err))
			return
		}
		h.handleMessage(conn, message)
	}
}

// handleMessage validates one inbound request, acknowledges it, and launches
// the export in a detached goroutine. The read loop keeps running meanwhile,
// so a connection can carry further requests while an export is in flight.
func (h *Handler) handleMessage(conn *safeConn, message []byte) {
	var req exportRequest
	if err := json.Unmarshal(message, &req); err != nil {
		h.logger.Warn("Malformed export request", zap.Error(err))
		conn.send(response{Type: "error", Message: "Invalid start_date or end_date"})
		return
	}

	if utils.ValidateDate(req.StartDate) != nil || utils.ValidateDate(req.EndDate) != nil {
		h.logger.Warn("Export request failed date validation",
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate))
		conn.send(response{Type: "error", Message: "Invalid start_date or end_date"})
		return
	}

	conn.send(response{
		Type:    "ack",
		Message: "Request received, processing will start shortly.",
	})

	// Fire and forget: once acknowledged the pipeline runs to completion
	// regardless of what happens to the connection. The conn handle is the
	// only state shared with the read loop.
	go h.runExport(conn, req)
}

// runExport executes the pipeline and delivers the result frame. Any panic
// escapes as a generic error frame; detail stays in the server log.
func (h *Handler) runExport(conn *safeConn, req exportRequest) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("Export pipeline panicked",
				zap.Any("panic", r),
				zap.String("start_date", req.StartDate),
				zap.String("end_date", req.EndDate))
			conn.send(response{Type: "error", Message: "Failed to process request"})
		}
	}()

	data := h.service.Export(context.Background(), req.StartDate, req.EndDate)
	conn.send(response{
		Type: "csv",
		Data: base64.StdEncoding.EncodeToString(data),
	})
}

// safeConn serializes writes to a websocket connection. The read loop and
// detached export goroutines both send frames; gorilla/websocket allows only
// one concurrent writer.
type safeConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *safeConn) send(r response) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.WriteJSON(r)
}

func (c *safeConn) Close() error {
	return c.conn.Close()
}
