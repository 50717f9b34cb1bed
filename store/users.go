package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/jrrodriguez/meatdealer-api/models"
	"github.com/jrrodriguez/meatdealer-api/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	bcryptCost        = 12
	minPasswordLength = 8
	resetTokenTTL     = time.Hour
)

type RegisterInput struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Password     string
	Address      string
	CustomerType string
}

// Register creates a customer account. Email and phone are each globally
// unique. The returned verification token is persisted on the user row and
// handed to the caller for delivery.
func Register(db *gorm.DB, in RegisterInput) (uint, string, error) {
	if len(in.Password) < minPasswordLength {
		return 0, "", invalid("Password must be at least 8 characters long")
	}

	var existing int64
	err := db.Model(&models.User{}).
		Where("email = ? OR phone = ?", in.Email, in.Phone).
		Count(&existing).Error
	if err != nil {
		return 0, "", fmt.Errorf("check existing user: %w", err)
	}
	if existing > 0 {
		return 0, "", conflict("User with this email or phone already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return 0, "", fmt.Errorf("hash password: %w", err)
	}

	token, err := utils.GenerateToken(32)
	if err != nil {
		return 0, "", fmt.Errorf("generate verification token: %w", err)
	}

	user := models.User{
		FirstName:         in.FirstName,
		LastName:          in.LastName,
		Email:             in.Email,
		Phone:             in.Phone,
		PasswordHash:      string(hash),
		Address:           in.Address,
		CustomerType:      in.CustomerType,
		Role:              "customer",
		Status:            "active",
		VerificationToken: token,
	}
	if err := db.Create(&user).Error; err != nil {
		// A concurrent registration can slip past the count above; the
		// unique indexes on email and phone are the real guard.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, "", conflict("User with this email or phone already exists")
		}
		return 0, "", fmt.Errorf("create user: %w", err)
	}
	return user.ID, token, nil
}

// Authenticate verifies credentials against a user matched by email or
// phone. The "no such user" and "wrong password" cases are deliberately
// indistinguishable to the caller.
func Authenticate(db *gorm.DB, identifier, password string) (*models.User, error) {
	var user models.User
	err := db.Where("email = ? OR phone = ?", identifier, identifier).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user.Status != "active" {
		return nil, ErrAccountInactive
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	// Record the login on the user row.
	if err := db.Model(&user).Update("updated_at", time.Now()).Error; err != nil {
		return nil, fmt.Errorf("touch user: %w", err)
	}
	return &user, nil
}

func GetUser(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	err := db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// CreatePasswordReset persists a one-hour reset token for the address when
// an account exists. The found flag lets the caller decide what to deliver
// without changing the response it sends.
func CreatePasswordReset(db *gorm.DB, email string) (string, bool, error) {
	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("find user: %w", err)
	}

	token, err := utils.GenerateToken(32)
	if err != nil {
		return "", false, fmt.Errorf("generate reset token: %w", err)
	}

	reset := models.PasswordReset{
		Email:     user.Email,
		Token:     token,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := db.Create(&reset).Error; err != nil {
		return "", false, fmt.Errorf("save reset token: %w", err)
	}
	return token, true, nil
}

// ResetPassword consumes a stored reset token. Expired or already-used
// tokens are rejected.
func ResetPassword(db *gorm.DB, token, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return invalid("Password must be at least 8 characters long")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var reset models.PasswordReset
		err := tx.Where("token = ? AND used_at IS NULL AND expires_at > ?", token, time.Now()).
			First(&reset).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invalid("Invalid or expired reset token")
		}
		if err != nil {
			return fmt.Errorf("find reset token: %w", err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		res := tx.Model(&models.User{}).Where("email = ?", reset.Email).
			Update("password_hash", string(hash))
		if res.Error != nil {
			return fmt.Errorf("update password: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return invalid("Invalid or expired reset token")
		}

		now := time.Now()
		if err := tx.Model(&reset).Update("used_at", &now).Error; err != nil {
			return fmt.Errorf("consume reset token: %w", err)
		}
		return nil
	})
}

// VerifyEmail marks the account behind a verification token as verified and
// clears the token.
func VerifyEmail(db *gorm.DB, token string) error {
	if token == "" {
		return invalid("Verification token is required")
	}

	res := db.Model(&models.User{}).
		Where("verification_token = ?", token).
		Updates(map[string]interface{}{
			"email_verified":     true,
			"verification_token": "",
		})
	if res.Error != nil {
		return fmt.Errorf("verify email: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return invalid("Invalid or expired verification token")
	}
	return nil
}

// ResendVerification issues a fresh verification token for an unverified
// account.
func ResendVerification(db *gorm.DB, email string) (string, error) {
	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}

	if user.EmailVerified {
		return "", invalid("Email is already verified")
	}

	token, err := utils.GenerateToken(32)
	if err != nil {
		return "", fmt.Errorf("generate verification token: %w", err)
	}
	if err := db.Model(&user).Update("verification_token", token).Error; err != nil {
		return "", fmt.Errorf("save verification token: %w", err)
	}
	return token, nil
}
