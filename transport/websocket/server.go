package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/protocol"
	"github.com/rocketscienceinc/gomoku-backend/pkg/handlers"
)

const (
	writeTimeout    = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

type uHistory interface {
	OpenSession(ctx context.Context) (uuid.UUID, error)
	CloseSession(ctx context.Context, id uuid.UUID) error
	PushResult(ctx context.Context, id uuid.UUID, record *entity.History) error
	GetAll(ctx context.Context, id uuid.UUID) ([]entity.History, error)
}

type handlerFunc func(ctx context.Context, raw []byte, conn *connection) error

// connection is one client socket. Only its read loop writes to it.
type connection struct {
	ws        *websocket.Conn
	userID    uuid.UUID
	saidBye   bool
	createdAt time.Time
}

type Server struct {
	logger   *slog.Logger
	uHistory uHistory
	upgrader websocket.Upgrader

	handlers map[protocol.MessageType]handlerFunc

	connectionsMutex sync.RWMutex
	connections      map[uuid.UUID]*connection
}

func New(logger *slog.Logger, uHistory uHistory) *Server {
	server := &Server{
		logger:   logger,
		uHistory: uHistory,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},

		handlers:    make(map[protocol.MessageType]handlerFunc),
		connections: make(map[uuid.UUID]*connection),
	}

	server.handlers[protocol.TypeHelloServer] = server.handleHello
	server.handlers[protocol.TypeHistoryPush] = server.handleHistoryPush
	server.handlers[protocol.TypeHistoryGetAll] = server.handleHistoryGetAll
	server.handlers[protocol.TypeGoodbyeServer] = server.handleGoodbye

	return server
}

// Handler serves the history endpoint on /ws.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", handlers.PingHandler)
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown websocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// ConnectionsCount is the number of clients that completed HelloServer.
func (that *Server) ConnectionsCount() int {
	that.connectionsMutex.RLock()
	defer that.connectionsMutex.RUnlock()

	return len(that.connections)
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeConnection")

	ws, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := &connection{ws: ws, createdAt: time.Now()}

	defer func() {
		that.handleDisconnect(conn)
		_ = ws.Close()
	}()

	log.Info("WebSocket connection established", "remote", req.RemoteAddr)

	if err = that.handleMessages(ctx, conn); err != nil {
		log.Debug("connection closed", "error", err)
	}
}

// handleMessages - processes messages from the client until the socket closes.
func (that *Server) handleMessages(ctx context.Context, conn *connection) error {
	log := that.logger.With("method", "handleMessages")

	for {
		messageKind, raw, err := conn.ws.ReadMessage()
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		if messageKind != websocket.TextMessage {
			log.Warn("binary messages are not supported")
			continue
		}

		messageType, err := protocol.Decode(raw)
		if err != nil {
			log.Error("failed to decode message", "error", err)
			continue
		}

		handler, ok := that.handlers[messageType]
		if !ok {
			log.Error("unknown message type", "messageType", messageType)
			continue
		}

		if err = handler(ctx, raw, conn); err != nil {
			log.Error("error processing message", "messageType", messageType, "error", err)
		}
	}
}

func (that *Server) handleDisconnect(conn *connection) {
	log := that.logger.With("method", "handleDisconnect")

	if conn.userID == uuid.Nil {
		return
	}

	that.connectionsMutex.Lock()
	delete(that.connections, conn.userID)
	that.connectionsMutex.Unlock()

	if conn.saidBye {
		return
	}

	// the request context may already be gone
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := that.uHistory.CloseSession(ctx, conn.userID); err != nil {
		log.Error("failed to close session", "userID", conn.userID.String(), "error", err)
		return
	}

	log.Info("client disconnected without goodbye",
		"userID", conn.userID.String(),
		"connectedFor", time.Since(conn.createdAt).String(),
	)
}

func (that *Server) sendMessage(conn *connection, message any) error {
	if err := conn.ws.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err := conn.ws.WriteJSON(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
