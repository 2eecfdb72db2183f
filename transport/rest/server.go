package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/pkg/handlers"
)

const shutdownTimeout = 5 * time.Second

type uHistory interface {
	ListHistory(ctx context.Context) ([]entity.History, error)
}

type Server struct {
	logger   *slog.Logger
	uHistory uHistory
	ready    func(ctx context.Context) error
}

func New(logger *slog.Logger, uHistory uHistory, ready func(ctx context.Context) error) *Server {
	return &Server{
		logger:   logger,
		uHistory: uHistory,
		ready:    ready,
	}
}

func (that *Server) NewRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/ping", gin.WrapF(handlers.PingHandler))
	router.GET("/ready", gin.WrapF(handlers.ReadyHandler(that.ready)))

	router.GET("/history", that.historyHandler)

	return router
}

// Start - starts REST server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.NewRouter(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown rest server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) historyHandler(c *gin.Context) {
	history, err := that.uHistory.ListHistory(c.Request.Context())
	if err != nil {
		that.logger.Error("failed to list history", "method", "historyHandler", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list history"})
		return
	}

	if history == nil {
		history = []entity.History{}
	}

	c.JSON(http.StatusOK, history)
}
