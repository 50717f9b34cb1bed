package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jrrodriguez/meatdealer-api/middlewares"
	"github.com/jrrodriguez/meatdealer-api/store"
	"github.com/jrrodriguez/meatdealer-api/utils"
	"gorm.io/gorm"
)

const (
	msgInvalidInput      = "Invalid input"
	msgLoginSuccess      = "Login successful"
	msgLogoutSuccess     = "Logout successful"
	msgRegisterSuccess   = "Registration successful! Please check your email for verification."
	msgResetLinkSent     = "If your email exists in our system, you will receive a password reset link"
	msgPasswordReset     = "Password reset successful"
	msgEmailVerified     = "Email verified successfully"
	msgVerificationSent  = "Verification email sent"
	msgFailedToMintToken = "Failed to generate token"
)

type registerBody struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"required,phone_ph"`
	Password     string `json:"password" binding:"required,min=8"`
	Address      string `json:"address" binding:"required"`
	CustomerType string `json:"customer_type" binding:"required"`
}

func Register(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var body registerBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			sendError(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		userID, token, err := store.Register(db, store.RegisterInput{
			FirstName:    body.FirstName,
			LastName:     body.LastName,
			Email:        body.Email,
			Phone:        body.Phone,
			Password:     body.Password,
			Address:      body.Address,
			CustomerType: body.CustomerType,
		})
		if err != nil {
			sendStoreError(ctx, err)
			return
		}

		if err := utils.SendVerificationEmail(body.Email, body.FirstName, token); err != nil {
			log.Println("Error sending verification email:", err)
		}

		log.Println("New user registered:", body.Email)
		sendSuccess(ctx, gin.H{"user_id": userID}, msgRegisterSuccess)
	}
}

type loginBody struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

func Login(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var body loginBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			sendError(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		user, err := store.Authenticate(db, body.Identifier, body.Password)
		if err != nil {
			sendStoreError(ctx, err)
			return
		}

		session, err := store.CreateSession(db, user)
		if err != nil {
			sendStoreError(ctx, err)
			return
		}

		token, err := utils.NewSessionToken(session.ID, user.ID, user.Email, user.Role, session.ExpiresAt)
		if err != nil {
			log.Println("Session token error:", err)
			sendError(ctx, http.StatusInternalServerError, msgFailedToMintToken)
			return
		}

		log.Println("User logged in:", user.Email)
		sendSuccess(ctx, gin.H{
			"token": token,
			"user": gin.H{
				"id":             user.ID,
				"name":           user.FullName(),
				"email":          user.Email,
				"phone":          user.Phone,
				"role":           user.Role,
				"email_verified": user.EmailVerified,
			},
		}, msgLoginSuccess)
	}
}

// Logout destroys the session unconditionally; a missing or stale token is
// not an error.
func Logout(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if session, ok := middlewares.ResolveSession(db, ctx); ok {
			if err := store.DeleteSession(db, session.ID); err != nil {
				sendStoreError(ctx, err)
				return
			}
			log.Println("User logged out:", session.UserEmail)
		}
		sendSuccess(ctx, gin.H{}, msgLogoutSuccess)
	}
}

type forgotPasswordBody struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword always answers with the same message so the response
// cannot be used to probe which addresses have accounts.
func ForgotPassword(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var body forgotPasswordBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			sendError(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		token, found, err := store.CreatePasswordReset(db, body.Email)
		if err != nil {
			sendStoreError(ctx, err)
			return
		}

		if found {
			log.Println("Password reset requested:", body.Email)
			if err := utils.SendPasswordResetEmail(body.Email, body.Email, token); err != nil {
				log.Println("Error sending password reset email:", err)
			}
		}

		sendSuccess(ctx, gin.H{}, msgResetLinkSent)
	}
}

type resetPasswordBody struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

func ResetPassword(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var body resetPasswordBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			sendError(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		if err := store.ResetPassword(db, body.Token, body.Password); err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendSuccess(ctx, gin.H{}, msgPasswordReset)
	}
}

type verifyEmailBody struct {
	Token string `json:"token" binding:"required"`
}

func VerifyEmail(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var body verifyEmailBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			sendError(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		if err := store.VerifyEmail(db, body.Token); err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendSuccess(ctx, gin.H{}, msgEmailVerified)
	}
}

type resendVerificationBody struct {
	Email string `json:"email" binding:"required,email"`
}

func ResendVerification(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var body resendVerificationBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			sendError(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		token, err := store.ResendVerification(db, body.Email)
		if err != nil {
			sendStoreError(ctx, err)
			return
		}

		if err := utils.SendVerificationEmail(body.Email, body.Email, token); err != nil {
			log.Println("Error sending verification email:", err)
		}
		sendSuccess(ctx, gin.H{}, msgVerificationSent)
	}
}

func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		session := middlewares.CurrentSession(ctx)
		user, err := store.GetUser(db, session.UserID)
		if err != nil {
			sendStoreError(ctx, err)
			return
		}

		sendSuccess(ctx, gin.H{
			"user": gin.H{
				"id":             user.ID,
				"name":           user.FullName(),
				"first_name":     user.FirstName,
				"last_name":      user.LastName,
				"email":          user.Email,
				"phone":          user.Phone,
				"address":        user.Address,
				"customer_type":  user.CustomerType,
				"role":           user.Role,
				"email_verified": user.EmailVerified,
				"member_since":   user.CreatedAt,
			},
		}, "Success")
	}
}

// CheckSession never errors: it reports whether the caller holds a live
// session.
func CheckSession(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		session, ok := middlewares.ResolveSession(db, ctx)
		if !ok {
			sendSuccess(ctx, gin.H{"authenticated": false}, "Success")
			return
		}

		sendSuccess(ctx, gin.H{
			"authenticated": true,
			"user": gin.H{
				"id":    session.UserID,
				"name":  session.UserName,
				"email": session.UserEmail,
				"role":  session.UserRole,
			},
		}, "Success")
	}
}
