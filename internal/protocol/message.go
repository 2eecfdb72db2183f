// Package protocol holds the JSON messages exchanged between the hot-seat
// client and the history server. Every message carries a messageType field.
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

type MessageType string

const (
	TypeHelloServer     MessageType = "HelloServer"
	TypeWelcomeClient   MessageType = "WelcomeClient"
	TypeGoodbyeServer   MessageType = "GoodbyeServer"
	TypeGoodbyeClient   MessageType = "GoodbyeClient"
	TypeHistoryPush     MessageType = "HistoryPush"
	TypeHistorySaved    MessageType = "HistorySaved"
	TypeHistoryNotSaved MessageType = "HistoryNotSaved"
	TypeHistoryGetAll   MessageType = "HistoryGetAll"
	TypeHistoryAll      MessageType = "HistoryAll"
)

// Envelope is decoded first to find out which message arrived.
type Envelope struct {
	MessageType MessageType `json:"messageType"`
}

type HelloServer struct {
	MessageType MessageType `json:"messageType"`
}

type WelcomeClient struct {
	MessageType    MessageType `json:"messageType"`
	UserID         uuid.UUID   `json:"userId"`
	WelcomeMessage string      `json:"welcomeMessage,omitempty"`
}

type GoodbyeServer struct {
	MessageType MessageType `json:"messageType"`
	UserID      uuid.UUID   `json:"userId"`
}

type GoodbyeClient struct {
	MessageType    MessageType `json:"messageType"`
	GoodbyeMessage string      `json:"goodbyeMessage,omitempty"`
}

type HistoryPush struct {
	MessageType     MessageType `json:"messageType"`
	UserID          uuid.UUID   `json:"userId"`
	PlayerOneName   string      `json:"playerOneName"`
	PlayerTwoName   string      `json:"playerTwoName"`
	PlayerOneWinner bool        `json:"playerOneWinner"`
	PlayerTwoWinner bool        `json:"playerTwoWinner"`
}

func NewHistoryPush(userID uuid.UUID, record entity.History) HistoryPush {
	return HistoryPush{
		MessageType:     TypeHistoryPush,
		UserID:          userID,
		PlayerOneName:   record.PlayerOneName,
		PlayerTwoName:   record.PlayerTwoName,
		PlayerOneWinner: record.PlayerOneWinner,
		PlayerTwoWinner: record.PlayerTwoWinner,
	}
}

func (that *HistoryPush) Record() *entity.History {
	return &entity.History{
		PlayerOneName:   that.PlayerOneName,
		PlayerTwoName:   that.PlayerTwoName,
		PlayerOneWinner: that.PlayerOneWinner,
		PlayerTwoWinner: that.PlayerTwoWinner,
	}
}

type HistorySaved struct {
	MessageType MessageType `json:"messageType"`
}

type HistoryNotSaved struct {
	MessageType MessageType `json:"messageType"`
	Reason      string      `json:"reason,omitempty"`
}

type HistoryGetAll struct {
	MessageType MessageType `json:"messageType"`
	UserID      uuid.UUID   `json:"userId"`
}

type HistoryAll struct {
	MessageType MessageType      `json:"messageType"`
	History     []entity.History `json:"history"`
}

// Decode reads the messageType of raw.
func Decode(raw []byte) (MessageType, error) {
	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", fmt.Errorf("failed to unmarshal envelope: %w", err)
	}

	if envelope.MessageType == "" {
		return "", fmt.Errorf("message has no messageType: %s", raw)
	}

	return envelope.MessageType, nil
}
