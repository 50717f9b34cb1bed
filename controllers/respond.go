package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jrrodriguez/meatdealer-api/store"
)

func sendSuccess(ctx *gin.Context, data gin.H, message string) {
	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"message": message,
	})
}

func sendError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}

// sendStoreError maps the store error taxonomy onto HTTP statuses. Unknown
// errors stay internal: logged server-side, generic message to the caller.
func sendStoreError(ctx *gin.Context, err error) {
	switch {
	case store.IsValidation(err), store.IsConflict(err):
		sendError(ctx, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		sendError(ctx, http.StatusNotFound, "Not found")
	case errors.Is(err, store.ErrInvalidCredentials):
		sendError(ctx, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, store.ErrAccountInactive):
		sendError(ctx, http.StatusUnauthorized, err.Error())
	case errors.Is(err, store.ErrSessionExpired):
		sendError(ctx, http.StatusUnauthorized, "Authentication required")
	default:
		log.Println("Internal error:", err)
		sendError(ctx, http.StatusInternalServerError, "Internal server error")
	}
}
