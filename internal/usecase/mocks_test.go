package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

type mockHistoryRepo struct {
	mock.Mock
}

func (that *mockHistoryRepo) Append(ctx context.Context, record *entity.History) error {
	return that.Called(ctx, record).Error(0)
}

func (that *mockHistoryRepo) GetAll(ctx context.Context) ([]entity.History, error) {
	args := that.Called(ctx)

	history, _ := args.Get(0).([]entity.History)

	return history, args.Error(1)
}

type mockSessionRepo struct {
	mock.Mock
}

func (that *mockSessionRepo) CreateOrUpdate(ctx context.Context, session *entity.ClientSession) error {
	return that.Called(ctx, session).Error(0)
}

func (that *mockSessionRepo) GetByID(ctx context.Context, id string) (*entity.ClientSession, error) {
	args := that.Called(ctx, id)

	session, _ := args.Get(0).(*entity.ClientSession)

	return session, args.Error(1)
}

func (that *mockSessionRepo) DeleteByID(ctx context.Context, id string) error {
	return that.Called(ctx, id).Error(0)
}

type mockReporter struct {
	mock.Mock
}

func (that *mockReporter) PushResult(record entity.History) error {
	return that.Called(record).Error(0)
}
