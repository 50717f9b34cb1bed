package models

import "time"

type User struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	FirstName         string    `gorm:"size:100;not null" json:"first_name"`
	LastName          string    `gorm:"size:100;not null" json:"last_name"`
	Email             string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Phone             string    `gorm:"size:20;not null;uniqueIndex" json:"phone"`
	PasswordHash      string    `gorm:"size:255;not null" json:"-"`
	Address           string    `gorm:"type:text" json:"address"`
	CustomerType      string    `gorm:"size:50" json:"customer_type"`
	Role              string    `gorm:"size:20;default:customer;index" json:"role"`
	Status            string    `gorm:"size:20;default:active;index" json:"status"`
	EmailVerified     bool      `gorm:"default:false" json:"email_verified"`
	PhoneVerified     bool      `gorm:"default:false" json:"phone_verified"`
	VerificationToken string    `gorm:"size:255" json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Session is a server-side login record. The bearer token presented by the
// client carries the session id; deleting the row revokes the login.
type Session struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	UserName   string    `gorm:"size:201" json:"user_name"`
	UserEmail  string    `gorm:"size:255" json:"user_email"`
	UserRole   string    `gorm:"size:20" json:"user_role"`
	LoggedInAt time.Time `json:"logged_in_at"`
	ExpiresAt  time.Time `gorm:"index" json:"expires_at"`
}

// PasswordReset tokens are single-use and expire one hour after issue.
type PasswordReset struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Email     string     `gorm:"size:255;not null;index" json:"email"`
	Token     string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedAt time.Time  `json:"created_at"`
}
