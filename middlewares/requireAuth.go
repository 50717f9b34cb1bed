package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jrrodriguez/meatdealer-api/models"
	"github.com/jrrodriguez/meatdealer-api/store"
	"github.com/jrrodriguez/meatdealer-api/utils"
	"gorm.io/gorm"
)

const SessionKey = "session"

// RequireAuth resolves the bearer token to a live session row and aborts
// with 401 when there is none.
func RequireAuth(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		session, ok := ResolveSession(db, ctx)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Authentication required",
			})
			return
		}

		ctx.Set(SessionKey, session)
		ctx.Next()
	}
}

// ResolveSession extracts and validates the session behind the request's
// Authorization header without aborting.
func ResolveSession(db *gorm.DB, ctx *gin.Context) (*models.Session, bool) {
	header := ctx.GetHeader("Authorization")
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" || token == header {
		return nil, false
	}

	sid, err := utils.ParseSessionToken(token)
	if err != nil {
		return nil, false
	}

	session, err := store.GetSession(db, sid)
	if err != nil {
		return nil, false
	}
	return session, true
}

// CurrentSession returns the session placed in the context by RequireAuth.
func CurrentSession(ctx *gin.Context) *models.Session {
	value, exists := ctx.Get(SessionKey)
	if !exists {
		return nil
	}
	session, ok := value.(*models.Session)
	if !ok {
		return nil
	}
	return session
}
