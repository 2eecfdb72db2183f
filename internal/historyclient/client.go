// Package historyclient talks to the match history server on behalf of a
// hot-seat table. Pushes are fire and forget; the outcome is exposed through
// Status so the game never blocks on the network.
package historyclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/protocol"
)

const (
	outboundBuffer = 16
	writeTimeout   = 10 * time.Second
)

type SaveStatus int32

const (
	SaveIdle SaveStatus = iota
	SavePending
	SaveSaved
	SaveNotSaved
	SaveFailed
)

func (that SaveStatus) String() string {
	switch that {
	case SaveIdle:
		return "idle"
	case SavePending:
		return "pending"
	case SaveSaved:
		return "saved"
	case SaveNotSaved:
		return "not saved"
	case SaveFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type Client struct {
	logger *slog.Logger
	ws     *websocket.Conn
	userID uuid.UUID

	status atomic.Int32
	closed atomic.Bool

	outbound  chan any
	history   chan []entity.History
	goodbye   chan struct{}
	quit      chan struct{}
	readDone  chan struct{}
	writeDone chan struct{}

	goodbyeOnce sync.Once
	requestMu   sync.Mutex
}

// Dial connects to url, says hello and waits for the welcome bounded by ctx.
func Dial(ctx context.Context, url string, logger *slog.Logger) (*Client, error) {
	log := logger.With("method", "Dial")

	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", url, err)
	}

	userID, err := handshake(ctx, ws)
	if err != nil {
		_ = ws.Close()
		return nil, err
	}

	client := &Client{
		logger: logger,
		ws:     ws,
		userID: userID,

		outbound:  make(chan any, outboundBuffer),
		history:   make(chan []entity.History, 1),
		goodbye:   make(chan struct{}),
		quit:      make(chan struct{}),
		readDone:  make(chan struct{}),
		writeDone: make(chan struct{}),
	}

	go client.readLoop()
	go client.writeLoop()

	log.Info("connected to history server", "userID", userID.String())

	return client, nil
}

func handshake(ctx context.Context, ws *websocket.Conn) (uuid.UUID, error) {
	stop := context.AfterFunc(ctx, func() { _ = ws.Close() })

	userID, err := readWelcome(ws)

	if !stop() {
		return uuid.Nil, fmt.Errorf("handshake aborted: %w", ctx.Err())
	}

	return userID, err
}

func readWelcome(ws *websocket.Conn) (uuid.UUID, error) {
	if err := ws.WriteJSON(protocol.HelloServer{MessageType: protocol.TypeHelloServer}); err != nil {
		return uuid.Nil, fmt.Errorf("failed to send hello: %w", err)
	}

	var welcome protocol.WelcomeClient
	if err := ws.ReadJSON(&welcome); err != nil {
		return uuid.Nil, fmt.Errorf("failed to read welcome: %w", err)
	}

	if welcome.MessageType != protocol.TypeWelcomeClient || welcome.UserID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("unexpected handshake reply: %s", welcome.MessageType)
	}

	return welcome.UserID, nil
}

func (that *Client) UserID() uuid.UUID {
	return that.userID
}

// Status reports the outcome of the latest PushResult.
func (that *Client) Status() SaveStatus {
	return SaveStatus(that.status.Load())
}

// PushResult queues record for the server and returns without waiting.
func (that *Client) PushResult(record entity.History) error {
	if that.closed.Load() {
		return apperror.ErrNotConnected
	}

	that.status.Store(int32(SavePending))

	if err := that.enqueue(protocol.NewHistoryPush(that.userID, record)); err != nil {
		that.status.Store(int32(SaveFailed))
		return err
	}

	return nil
}

// RequestHistory asks for every stored match and waits for the reply.
func (that *Client) RequestHistory(ctx context.Context) ([]entity.History, error) {
	if that.closed.Load() {
		return nil, apperror.ErrNotConnected
	}

	that.requestMu.Lock()
	defer that.requestMu.Unlock()

	// a reply to an abandoned request may still be buffered
	select {
	case <-that.history:
	default:
	}

	if err := that.enqueue(protocol.HistoryGetAll{
		MessageType: protocol.TypeHistoryGetAll,
		UserID:      that.userID,
	}); err != nil {
		return nil, err
	}

	select {
	case history := <-that.history:
		return history, nil
	case <-that.readDone:
		return nil, apperror.ErrNotConnected
	case <-ctx.Done():
		return nil, fmt.Errorf("history request: %w", ctx.Err())
	}
}

// Disconnect says goodbye and waits for the acknowledgement until ctx expires.
// The connection is closed in every case.
func (that *Client) Disconnect(ctx context.Context) error {
	log := that.logger.With("method", "Disconnect")

	if !that.closed.CompareAndSwap(false, true) {
		return apperror.ErrNotConnected
	}

	defer that.shutdown()

	if err := that.enqueue(protocol.GoodbyeServer{
		MessageType: protocol.TypeGoodbyeServer,
		UserID:      that.userID,
	}); err != nil {
		return err
	}

	select {
	case <-that.goodbye:
		log.Info("server acknowledged goodbye")
		return nil
	case <-that.readDone:
		return fmt.Errorf("connection lost before goodbye: %w", apperror.ErrNotConnected)
	case <-ctx.Done():
		log.Warn("no goodbye from server, closing anyway")
		return fmt.Errorf("waiting for goodbye: %w", ctx.Err())
	}
}

func (that *Client) enqueue(message any) error {
	select {
	case <-that.readDone:
		return apperror.ErrNotConnected
	default:
	}

	select {
	case that.outbound <- message:
		return nil
	default:
		return fmt.Errorf("%w: outbound queue is full", apperror.ErrHistoryNotSaved)
	}
}

func (that *Client) shutdown() {
	close(that.quit)
	<-that.writeDone

	deadline := time.Now().Add(time.Second)
	_ = that.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	_ = that.ws.Close()

	<-that.readDone
}

func (that *Client) writeLoop() {
	log := that.logger.With("method", "writeLoop")

	defer close(that.writeDone)

	for {
		select {
		case <-that.quit:
			return
		case <-that.readDone:
			return
		case message := <-that.outbound:
			if err := that.write(message); err != nil {
				log.Error("failed to send message", "error", err)

				if _, ok := message.(protocol.HistoryPush); ok {
					that.status.Store(int32(SaveFailed))
				}
			}
		}
	}
}

func (that *Client) write(message any) error {
	if err := that.ws.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	return that.ws.WriteJSON(message)
}

func (that *Client) readLoop() {
	log := that.logger.With("method", "readLoop")

	defer func() {
		that.status.CompareAndSwap(int32(SavePending), int32(SaveFailed))
		close(that.readDone)
	}()

	for {
		_, raw, err := that.ws.ReadMessage()
		if err != nil {
			if !that.closed.Load() && !errors.Is(err, websocket.ErrCloseSent) {
				log.Warn("connection lost", "error", err)
			}

			return
		}

		if err = that.dispatch(raw); err != nil {
			log.Error("failed to process message", "error", err)
		}
	}
}

func (that *Client) dispatch(raw []byte) error {
	messageType, err := protocol.Decode(raw)
	if err != nil {
		return err
	}

	switch messageType {
	case protocol.TypeHistorySaved:
		that.status.Store(int32(SaveSaved))
	case protocol.TypeHistoryNotSaved:
		var payload protocol.HistoryNotSaved
		if err = json.Unmarshal(raw, &payload); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}

		that.status.Store(int32(SaveNotSaved))
		that.logger.Warn("history not saved", "reason", payload.Reason)
	case protocol.TypeHistoryAll:
		var payload protocol.HistoryAll
		if err = json.Unmarshal(raw, &payload); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}

		select {
		case that.history <- payload.History:
		default:
		}
	case protocol.TypeGoodbyeClient:
		that.goodbyeOnce.Do(func() { close(that.goodbye) })
	default:
		return fmt.Errorf("unexpected message type: %s", messageType)
	}

	return nil
}
