package router

import (
	"net/http"

	"dumbbell/controllers"
	"dumbbell/models"

	"github.com/gin-gonic/gin"
)

// guard runs after AuthRequired and aborts with code and msg when the
// logged principal fails allowed.
func guard(code int, msg string, allowed func(models.User) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := controllers.GetUserLogged(c)
		if !ok {
			controllers.RespondError(c, "unauthorized", http.StatusUnauthorized)
			c.Abort()
			return
		}
		if !allowed(user) {
			controllers.RespondError(c, msg, code)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Authorizer blocks principals deactivated after their token was issued.
func Authorizer() gin.HandlerFunc {
	return guard(http.StatusForbidden, "usuário inativo", func(u models.User) bool { return u.IsActive })
}

// Adminizer restricts catalog writes to superusers.
func Adminizer() gin.HandlerFunc {
	return guard(http.StatusForbidden, "admin required", func(u models.User) bool { return u.IsSuperuser })
}
