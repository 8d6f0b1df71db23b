package controllers

import (
	"net/http"
	"strings"
	"time"

	"dumbbell/models"
	"dumbbell/services"

	"github.com/gin-gonic/gin"
)

const ctxUserKey = "auth_user"

// tokenFromHeader accepts "Token <key>" and "Bearer <key>".
func tokenFromHeader(h string) string {
	scheme, key, found := strings.Cut(strings.TrimSpace(h), " ")
	if !found {
		return ""
	}
	switch strings.ToLower(scheme) {
	case "token", "bearer":
		return strings.TrimSpace(key)
	}
	return ""
}

// AuthRequired loads the principal from the API token header or, failing
// that, from the session cookie.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		db, ok := database(c)
		if !ok {
			c.Abort()
			return
		}

		var user models.User
		if h := c.GetHeader("Authorization"); h != "" {
			key := tokenFromHeader(h)
			if key == "" {
				RespondError(c, "cabeçalho Authorization inválido", http.StatusUnauthorized)
				c.Abort()
				return
			}
			ttl := time.Duration(conf.Security.TokenTTLHours) * time.Hour
			u, err := services.UserForToken(db, key, ttl)
			if err != nil {
				RespondError(c, "token inválido", http.StatusUnauthorized)
				c.Abort()
				return
			}
			user = u
		} else if cookie, err := c.Cookie(SESSION_COOKIE); err == nil && cookie != "" {
			userID, err := parseSession(cookie)
			if err != nil {
				RespondError(c, "sessão expirada", http.StatusUnauthorized)
				c.Abort()
				return
			}
			if err := db.First(&user, userID).Error; err != nil {
				RespondError(c, "user not found", http.StatusUnauthorized)
				c.Abort()
				return
			}
		} else {
			RespondError(c, "as credenciais de autenticação não foram fornecidas", http.StatusUnauthorized)
			c.Abort()
			return
		}

		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// GetUserLogged returns the user loaded by AuthRequired.
func GetUserLogged(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}
