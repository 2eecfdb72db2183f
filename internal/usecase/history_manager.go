package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/repository"
)

type historyRepo interface {
	Append(ctx context.Context, record *entity.History) error
	GetAll(ctx context.Context) ([]entity.History, error)
}

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.ClientSession) error
	GetByID(ctx context.Context, id string) (*entity.ClientSession, error)
	DeleteByID(ctx context.Context, id string) error
}

// HistoryManager is the server side of the history protocol.
type HistoryManager struct {
	logger      *slog.Logger
	historyRepo historyRepo
	sessionRepo sessionRepo
}

func NewHistoryManager(logger *slog.Logger, historyRepo historyRepo, sessionRepo sessionRepo) *HistoryManager {
	return &HistoryManager{
		logger: logger,

		historyRepo: historyRepo,
		sessionRepo: sessionRepo,
	}
}

func (that *HistoryManager) OpenSession(ctx context.Context) (uuid.UUID, error) {
	id := uuid.New()

	session := entity.NewClientSession(id.String())
	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Info("session opened", "userID", id.String())

	return id, nil
}

func (that *HistoryManager) CloseSession(ctx context.Context, id uuid.UUID) error {
	if err := that.sessionRepo.DeleteByID(ctx, id.String()); err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}

	that.logger.Info("session closed", "userID", id.String())

	return nil
}

func (that *HistoryManager) PushResult(ctx context.Context, id uuid.UUID, record *entity.History) error {
	if err := that.checkSession(ctx, id); err != nil {
		return err
	}

	if err := record.Validate(); err != nil {
		return err
	}

	if err := that.historyRepo.Append(ctx, record); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}

	return nil
}

func (that *HistoryManager) GetAll(ctx context.Context, id uuid.UUID) ([]entity.History, error) {
	if err := that.checkSession(ctx, id); err != nil {
		return nil, err
	}

	return that.ListHistory(ctx)
}

// ListHistory returns every stored match, oldest first.
func (that *HistoryManager) ListHistory(ctx context.Context) ([]entity.History, error) {
	history, err := that.historyRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	return history, nil
}

func (that *HistoryManager) checkSession(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return apperror.ErrUnknownSession
	}

	_, err := that.sessionRepo.GetByID(ctx, id.String())
	if errors.Is(err, repository.ErrSessionNotFound) {
		return fmt.Errorf("%w: %s", apperror.ErrUnknownSession, id)
	}

	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	return nil
}
