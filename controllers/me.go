package controllers

import (
	"errors"
	"net/http"

	"dumbbell/services"

	"github.com/gin-gonic/gin"
)

// GET /api/v1/auth/user
func Me(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}

	payload := gin.H{"user": user, "student": nil}
	student, err := services.StudentForUser(db, user.ID)
	switch {
	case err == nil:
		payload["student"] = student
	case !errors.Is(err, services.ErrNotFound):
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, payload)
}
