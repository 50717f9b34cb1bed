package store

import (
	"testing"
	"time"

	"github.com/jrrodriguez/meatdealer-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	db := openTestDB(t)

	id, token, err := Register(db, RegisterInput{
		FirstName: "Juan",
		LastName:  "Dela Cruz",
		Email:     "juan@example.com",
		Phone:     "09171234567",
		Password:  "correct-horse",
		Address:   "123 Main St",
	})
	require.NoError(t, err)
	require.NotZero(t, id)
	require.NotEmpty(t, token)

	byEmail, err := Authenticate(db, "juan@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, id, byEmail.ID)

	byPhone, err := Authenticate(db, "09171234567", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, id, byPhone.ID)
}

func TestRegisterDuplicate(t *testing.T) {
	db := openTestDB(t)

	in := RegisterInput{
		FirstName: "Juan",
		LastName:  "Dela Cruz",
		Email:     "juan@example.com",
		Phone:     "09171234567",
		Password:  "correct-horse",
	}
	_, _, err := Register(db, in)
	require.NoError(t, err)

	_, _, err = Register(db, in)
	assert.True(t, IsConflict(err))

	// Same phone under a different email is still a conflict.
	in.Email = "other@example.com"
	_, _, err = Register(db, in)
	assert.True(t, IsConflict(err))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegisterConcurrentDuplicate(t *testing.T) {
	db := openTestDB(t)

	// Sneak a conflicting row in between the existence check and the
	// insert, the way a concurrent registration would.
	raced := false
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("race_duplicate", func(tx *gorm.DB) {
		if raced || tx.Statement.Table != "users" {
			return
		}
		raced = true
		tx.Session(&gorm.Session{NewDB: true}).Exec(
			`INSERT INTO users (first_name, last_name, email, phone, password_hash, role, status)
			 VALUES ('Juan', 'Dela Cruz', 'juan@example.com', '09171234567', 'x', 'customer', 'active')`)
	}))

	_, _, err := Register(db, RegisterInput{
		FirstName: "Juan",
		LastName:  "Dela Cruz",
		Email:     "juan@example.com",
		Phone:     "09171234567",
		Password:  "correct-horse",
	})
	assert.True(t, IsConflict(err), "the unique index loss surfaces as a conflict, not an internal error")

	require.NoError(t, db.Callback().Create().Remove("race_duplicate"))
}

func TestRegisterShortPassword(t *testing.T) {
	db := openTestDB(t)

	_, _, err := Register(db, RegisterInput{
		Email:    "juan@example.com",
		Phone:    "09171234567",
		Password: "short",
	})
	assert.True(t, IsValidation(err))
}

func TestAuthenticateFailuresIndistinguishable(t *testing.T) {
	db := openTestDB(t)

	_, _, err := Register(db, RegisterInput{
		FirstName: "Juan",
		LastName:  "Dela Cruz",
		Email:     "juan@example.com",
		Phone:     "09171234567",
		Password:  "correct-horse",
	})
	require.NoError(t, err)

	_, errUnknown := Authenticate(db, "nobody@example.com", "correct-horse")
	_, errWrong := Authenticate(db, "juan@example.com", "wrong-password")

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
}

func TestAuthenticateInactiveAccount(t *testing.T) {
	db := openTestDB(t)

	id, _, err := Register(db, RegisterInput{
		Email:    "juan@example.com",
		Phone:    "09171234567",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", id).Update("status", "suspended").Error)

	_, err = Authenticate(db, "juan@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestPasswordResetFlow(t *testing.T) {
	db := openTestDB(t)

	_, _, err := Register(db, RegisterInput{
		Email:    "juan@example.com",
		Phone:    "09171234567",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	token, found, err := CreatePasswordReset(db, "juan@example.com")
	require.NoError(t, err)
	require.True(t, found)
	require.NotEmpty(t, token)

	require.NoError(t, ResetPassword(db, token, "brand-new-password"))

	_, err = Authenticate(db, "juan@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = Authenticate(db, "juan@example.com", "brand-new-password")
	assert.NoError(t, err)

	// Tokens are single-use.
	err = ResetPassword(db, token, "another-password")
	assert.True(t, IsValidation(err))
}

func TestPasswordResetUnknownEmail(t *testing.T) {
	db := openTestDB(t)

	token, found, err := CreatePasswordReset(db, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, token)
}

func TestPasswordResetExpiredToken(t *testing.T) {
	db := openTestDB(t)

	_, _, err := Register(db, RegisterInput{
		Email:    "juan@example.com",
		Phone:    "09171234567",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	token, _, err := CreatePasswordReset(db, "juan@example.com")
	require.NoError(t, err)

	expired := time.Now().Add(-time.Minute)
	require.NoError(t, db.Model(&models.PasswordReset{}).
		Where("token = ?", token).
		Update("expires_at", expired).Error)

	err = ResetPassword(db, token, "brand-new-password")
	assert.True(t, IsValidation(err))
}

func TestVerifyEmail(t *testing.T) {
	db := openTestDB(t)

	id, token, err := Register(db, RegisterInput{
		Email:    "juan@example.com",
		Phone:    "09171234567",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	require.NoError(t, VerifyEmail(db, token))

	user, err := GetUser(db, id)
	require.NoError(t, err)
	assert.True(t, user.EmailVerified)

	// The token is cleared on use.
	err = VerifyEmail(db, token)
	assert.True(t, IsValidation(err))

	_, err = ResendVerification(db, "juan@example.com")
	assert.True(t, IsValidation(err), "already verified accounts get no new token")
}

func TestResendVerification(t *testing.T) {
	db := openTestDB(t)

	_, original, err := Register(db, RegisterInput{
		Email:    "juan@example.com",
		Phone:    "09171234567",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	fresh, err := ResendVerification(db, "juan@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, original, fresh)

	require.NoError(t, VerifyEmail(db, fresh))

	_, err = ResendVerification(db, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}
