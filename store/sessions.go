package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jrrodriguez/meatdealer-api/models"
	"gorm.io/gorm"
)

// SessionTTL bounds how long a login stays valid without re-authenticating.
const SessionTTL = 24 * time.Hour

func CreateSession(db *gorm.DB, user *models.User) (*models.Session, error) {
	now := time.Now()
	session := models.Session{
		ID:         uuid.NewString(),
		UserID:     user.ID,
		UserName:   user.FullName(),
		UserEmail:  user.Email,
		UserRole:   user.Role,
		LoggedInAt: now,
		ExpiresAt:  now.Add(SessionTTL),
	}
	if err := db.Create(&session).Error; err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &session, nil
}

// GetSession looks the record up fresh on every call. Expired sessions are
// removed on sight.
func GetSession(db *gorm.DB, id string) (*models.Session, error) {
	var session models.Session
	err := db.Where("id = ?", id).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		if err := db.Delete(&models.Session{}, "id = ?", id).Error; err != nil {
			return nil, fmt.Errorf("drop expired session: %w", err)
		}
		return nil, ErrSessionExpired
	}
	return &session, nil
}

// DeleteSession revokes a login. Deleting a session that no longer exists
// is not an error.
func DeleteSession(db *gorm.DB, id string) error {
	if err := db.Delete(&models.Session{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
