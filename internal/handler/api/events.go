package api

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"BulletCatalyst/internal/domain/repository"
	pkghttp "BulletCatalyst/pkg/http"
	"BulletCatalyst/pkg/logger"
)

// EventsHandler pushes run lifecycle events to websocket subscribers.
// It doubles as the pipeline's EventSink: with no subscribers Publish
// is a no-op, so the pipeline never waits on slow readers.
type EventsHandler struct {
	upgrader websocket.Upgrader
	log      *logger.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

var (
	_ pkghttp.Handler      = (*EventsHandler)(nil)
	_ repository.EventSink = (*EventsHandler)(nil)
)

func NewEventsHandler(log *logger.Logger) *EventsHandler {
	return &EventsHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		log:     log,
		clients: make(map[*websocket.Conn]struct{}),
	}
}

func (h *EventsHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/events", h.serve)
}

func (h *EventsHandler) serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
	h.log.Debug("event subscriber connected", logger.String("remote", conn.RemoteAddr().String()))

	// Reads are discarded; the loop exists to notice the peer closing.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	return nil
}

// Publish sends the event to every subscriber, dropping any whose
// write fails.
func (h *EventsHandler) Publish(event repository.RunEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteJSON(event); err != nil {
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

func (h *EventsHandler) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}
