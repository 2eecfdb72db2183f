package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/protocol"
)

const (
	welcomeMessage = "welcome to the gomoku history server"
	goodbyeMessage = "bye"
)

func (that *Server) handleHello(ctx context.Context, _ []byte, conn *connection) error {
	log := that.logger.With("method", "handleHello")

	if conn.userID != uuid.Nil {
		log.Warn("client said hello twice", "userID", conn.userID.String())
		return that.sendMessage(conn, protocol.WelcomeClient{
			MessageType:    protocol.TypeWelcomeClient,
			UserID:         conn.userID,
			WelcomeMessage: welcomeMessage,
		})
	}

	userID, err := that.uHistory.OpenSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}

	conn.userID = userID

	that.connectionsMutex.Lock()
	that.connections[userID] = conn
	that.connectionsMutex.Unlock()

	if err = that.sendMessage(conn, protocol.WelcomeClient{
		MessageType:    protocol.TypeWelcomeClient,
		UserID:         userID,
		WelcomeMessage: welcomeMessage,
	}); err != nil {
		return fmt.Errorf("failed to send welcome: %w", err)
	}

	log.Info("client registered", "userID", userID.String())

	return nil
}

func (that *Server) handleHistoryPush(ctx context.Context, raw []byte, conn *connection) error {
	log := that.logger.With("method", "handleHistoryPush")

	var payload protocol.HistoryPush
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error("failed to unmarshal payload", "error", err)
		return that.sendNotSaved(conn, "malformed message")
	}

	log = log.With("userID", payload.UserID.String())

	if err := checkOwner(conn, payload.UserID); err != nil {
		log.Warn("history rejected", "error", err)
		return that.sendNotSaved(conn, err.Error())
	}

	if err := that.uHistory.PushResult(ctx, conn.userID, payload.Record()); err != nil {
		log.Warn("history rejected", "error", err)
		return that.sendNotSaved(conn, err.Error())
	}

	if err := that.sendMessage(conn, protocol.HistorySaved{MessageType: protocol.TypeHistorySaved}); err != nil {
		return fmt.Errorf("failed to send history saved: %w", err)
	}

	log.Info("history saved")

	return nil
}

func (that *Server) handleHistoryGetAll(ctx context.Context, raw []byte, conn *connection) error {
	var payload protocol.HistoryGetAll
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if err := checkOwner(conn, payload.UserID); err != nil {
		return err
	}

	history, err := that.uHistory.GetAll(ctx, conn.userID)
	if err != nil {
		return fmt.Errorf("failed to get history for %s: %w", payload.UserID, err)
	}

	if err = that.sendMessage(conn, protocol.HistoryAll{
		MessageType: protocol.TypeHistoryAll,
		History:     history,
	}); err != nil {
		return fmt.Errorf("failed to send history: %w", err)
	}

	return nil
}

func (that *Server) handleGoodbye(ctx context.Context, raw []byte, conn *connection) error {
	log := that.logger.With("method", "handleGoodbye")

	var payload protocol.GoodbyeServer
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if err := checkOwner(conn, payload.UserID); err != nil {
		return fmt.Errorf("goodbye ignored: %w", err)
	}

	if err := that.uHistory.CloseSession(ctx, conn.userID); err != nil {
		log.Warn("failed to close session", "userID", conn.userID.String(), "error", err)
	}

	conn.saidBye = true

	if err := that.sendMessage(conn, protocol.GoodbyeClient{
		MessageType:    protocol.TypeGoodbyeClient,
		GoodbyeMessage: goodbyeMessage,
	}); err != nil {
		return fmt.Errorf("failed to send goodbye: %w", err)
	}

	log.Info("client said goodbye", "userID", conn.userID.String())

	return nil
}

// checkOwner accepts only the id this connection received in WelcomeClient.
func checkOwner(conn *connection, userID uuid.UUID) error {
	if conn.userID == uuid.Nil || userID != conn.userID {
		return fmt.Errorf("%w: %s does not belong to this connection", apperror.ErrUnknownSession, userID)
	}

	return nil
}

func (that *Server) sendNotSaved(conn *connection, reason string) error {
	if err := that.sendMessage(conn, protocol.HistoryNotSaved{
		MessageType: protocol.TypeHistoryNotSaved,
		Reason:      reason,
	}); err != nil {
		return fmt.Errorf("failed to send history not saved: %w", err)
	}

	return nil
}
