package db

import (
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

const ctxDBKey = "dumbbell.db"

// SetDBtoContext makes the shared handle reachable from every handler.
func SetDBtoContext(database *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxDBKey, database)
		c.Next()
	}
}

// FromContext returns the handle stored by SetDBtoContext.
func FromContext(c *gin.Context) (*gorm.DB, bool) {
	v, _ := c.Get(ctxDBKey)
	database, ok := v.(*gorm.DB)
	return database, ok && database != nil
}
