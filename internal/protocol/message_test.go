package protocol

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Run("Reads the message type", func(t *testing.T) {
		messageType, err := Decode([]byte(`{"messageType":"HistoryGetAll","userId":"00000000-0000-0000-0000-000000000000"}`))

		require.NoError(t, err)
		assert.Equal(t, TypeHistoryGetAll, messageType)
	})

	t.Run("Missing message type", func(t *testing.T) {
		_, err := Decode([]byte(`{"userId":"x"}`))

		assert.Error(t, err)
	})

	t.Run("Not JSON", func(t *testing.T) {
		_, err := Decode([]byte(`hello`))

		assert.Error(t, err)
	})
}

func TestHistoryPush_WireFormat(t *testing.T) {
	// Given: a finished match pushed by a known client
	userID := uuid.MustParse("3b241101-e2bb-4255-8caf-4136c566a962")
	record := entity.History{PlayerOneName: "Ann", PlayerTwoName: "Bob", PlayerTwoWinner: true}

	// When: the push message is encoded
	raw, err := json.Marshal(NewHistoryPush(userID, record))
	require.NoError(t, err)

	// Then: the field names match the history server format
	assert.JSONEq(t, `{
		"messageType": "HistoryPush",
		"userId": "3b241101-e2bb-4255-8caf-4136c566a962",
		"playerOneName": "Ann",
		"playerTwoName": "Bob",
		"playerOneWinner": false,
		"playerTwoWinner": true
	}`, string(raw))

	var decoded HistoryPush
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, record, *decoded.Record())
}
