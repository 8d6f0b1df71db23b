package controllers

import (
	"net/http"
	"strconv"

	dbpkg "dumbbell/db"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

func ParamID(c *gin.Context, name string) (int64, bool) {
	v := c.Param(name)
	if v == "" {
		RespondError(c, name+" é obrigatório", http.StatusBadRequest)
		return 0, false
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, name+" inválido", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// QueryID parses an optional numeric filter. ok is false when the value
// is present but not a positive id; the response is already written.
func QueryID(c *gin.Context, name string) (id int64, present bool, ok bool) {
	v := c.Query(name)
	if v == "" {
		return 0, false, true
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, name+" inválido", http.StatusBadRequest)
		return 0, true, false
	}
	return id, true, true
}

func database(c *gin.Context) (*gorm.DB, bool) {
	db, ok := dbpkg.FromContext(c)
	if !ok {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return nil, false
	}
	return db, true
}

func bindBody(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, "corpo da requisição inválido: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func queryFlag(c *gin.Context, name string) bool {
	b, _ := strconv.ParseBool(c.Query(name))
	return b
}
