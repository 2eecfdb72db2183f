package repository

import (
	"testing"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository(st.Storage)

	// Given: a client session
	session := entity.NewClientSession("6f1c1c5e-9a36-4f39-9d3c-000000000001")

	// When: CreateOrUpdate is called
	err := sessionRepo.CreateOrUpdate(ctx, session)

	// Then: no error should be returned and the key expires eventually
	require.NoError(t, err)

	ttl, err := st.Storage.TTL(ctx, sessionKey(session.ID)).Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)
}

func TestSessionRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage)

		session := entity.NewClientSession("abc")
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// When: GetByID is called with an existing ID
		retrieved, err := sessionRepo.GetByID(ctx, session.ID)

		// Then: the stored session is returned
		require.NoError(t, err)
		assert.Equal(t, session.ID, retrieved.ID)
		assert.True(t, session.ConnectedAt.Equal(retrieved.ConnectedAt))
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage)

		// When: GetByID is called with an unknown ID
		retrieved, err := sessionRepo.GetByID(ctx, "missing")

		// Then: ErrSessionNotFound is returned
		require.ErrorIs(t, err, ErrSessionNotFound)
		assert.Nil(t, retrieved)
	})
}

func TestSessionRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage)

		session := entity.NewClientSession("abc")
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// When: DeleteByID is called with an existing ID
		err := sessionRepo.DeleteByID(ctx, session.ID)

		// Then: the session is gone
		require.NoError(t, err)

		_, err = sessionRepo.GetByID(ctx, session.ID)
		require.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage)

		err := sessionRepo.DeleteByID(ctx, "missing")

		require.ErrorIs(t, err, ErrSessionNotFound)
	})
}
