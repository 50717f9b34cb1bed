package store

import (
	"errors"
	"testing"
	"time"

	"github.com/jrrodriguez/meatdealer-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSessionRoundtrip(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "juan@example.com", "09171234567", "customer")

	session, err := CreateSession(db, &user)
	require.NoError(t, err)
	require.NotEmpty(t, session.ID)
	assert.Equal(t, user.ID, session.UserID)
	assert.Equal(t, "Test User", session.UserName)
	assert.WithinDuration(t, time.Now().Add(SessionTTL), session.ExpiresAt, time.Minute)

	got, err := GetSession(db, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, "customer", got.UserRole)
}

func TestSessionExpiry(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "juan@example.com", "09171234567", "customer")

	session, err := CreateSession(db, &user)
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Session{}).
		Where("id = ?", session.ID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	_, err = GetSession(db, session.ID)
	assert.ErrorIs(t, err, ErrSessionExpired)

	// Expired sessions are dropped on sight.
	_, err = GetSession(db, session.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionExpiryCleanupFailure(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "juan@example.com", "09171234567", "customer")

	session, err := CreateSession(db, &user)
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Session{}).
		Where("id = ?", session.ID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	require.NoError(t, db.Callback().Delete().Before("gorm:delete").Register("fail_delete", func(tx *gorm.DB) {
		tx.AddError(errors.New("storage failure"))
	}))

	// A failed cleanup is reported, not swallowed as a plain expiry.
	_, err = GetSession(db, session.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionExpired)

	require.NoError(t, db.Callback().Delete().Remove("fail_delete"))
}

func TestDeleteSession(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "juan@example.com", "09171234567", "customer")

	session, err := CreateSession(db, &user)
	require.NoError(t, err)

	require.NoError(t, DeleteSession(db, session.ID))

	_, err = GetSession(db, session.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Revoking twice is fine.
	assert.NoError(t, DeleteSession(db, session.ID))
}
