package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const historyKey = "history"

type HistoryRepository interface {
	Append(ctx context.Context, record *entity.History) error
	GetAll(ctx context.Context) ([]entity.History, error)
}

type dbHistory struct {
	client *redis.Client
}

func NewHistoryRepository(client *redis.Client) HistoryRepository {
	return &dbHistory{
		client: client,
	}
}

func (that *dbHistory) Append(ctx context.Context, record *entity.History) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("could not marshal history: %w", err)
	}

	if err = that.client.RPush(ctx, historyKey, recordJSON).Err(); err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}

	return nil
}

// GetAll returns records in the order they were appended.
func (that *dbHistory) GetAll(ctx context.Context) ([]entity.History, error) {
	response, err := that.client.LRange(ctx, historyKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	history := make([]entity.History, 0, len(response))
	for _, raw := range response {
		var record entity.History
		if err = json.Unmarshal([]byte(raw), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history: %w", err)
		}

		history = append(history, record)
	}

	return history, nil
}
