package controllers

import (
	"net/http"
	"time"

	"dumbbell/models"
	"dumbbell/services"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// POST /api/v1/auth/login, POST /api-token-auth
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	username := req.Username
	if username == "" {
		username = req.Email
	}
	if username == "" || req.Password == "" {
		RespondError(c, "username e password são obrigatórios", http.StatusBadRequest)
		return
	}

	db, ok := database(c)
	if !ok {
		return
	}

	user, err := services.Authenticate(db, username, req.Password)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	token, err := services.IssueToken(db, user.ID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	session, err := signSession(user.ID, time.Now())
	if err != nil {
		RespondError(c, "erro ao assinar sessão", http.StatusInternalServerError)
		return
	}
	setSessionCookie(c.Writer, session, int(sessionTTL().Seconds()))

	RespondSuccess(c, LoginResponse{Token: token.Key, User: user})
}

// POST /api/v1/auth/logout
func Logout(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}

	if err := services.RevokeToken(db, user.ID); err != nil {
		RespondServiceError(c, err)
		return
	}
	setSessionCookie(c.Writer, "", -1)
	RespondSuccess(c, gin.H{"status": "logged out"})
}
