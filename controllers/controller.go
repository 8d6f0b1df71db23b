package controllers

import (
	"errors"
	"log"
	"net/http"

	"dumbbell/config"
	"dumbbell/services"

	"github.com/gin-gonic/gin"
)

var conf config.Configuration

func SetConfigurations(configuration config.Configuration) {
	conf = configuration
}

func RespondError(c *gin.Context, msg string, code int) {
	c.JSON(code, gin.H{"error": msg})
}

func RespondSuccess(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func RespondValidation(c *gin.Context, v *services.ValidationError) {
	c.JSON(http.StatusBadRequest, gin.H{"error": v.Error(), "fields": v.Fields})
}

// RespondServiceError maps a services error onto the HTTP status the API
// promises for it.
func RespondServiceError(c *gin.Context, err error) {
	if v, ok := services.IsValidation(err); ok {
		RespondValidation(c, v)
		return
	}
	switch {
	case errors.Is(err, services.ErrNotFound):
		RespondError(c, "não encontrado", http.StatusNotFound)
	case errors.Is(err, services.ErrForbidden):
		RespondError(c, "você não tem permissão para executar essa ação", http.StatusForbidden)
	case errors.Is(err, services.ErrInvalidCredentials):
		RespondError(c, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		RespondError(c, "erro interno", http.StatusInternalServerError)
	}
}

func quotas() services.QuotaTable {
	return services.QuotaTable(conf.WorkoutQuotas)
}
