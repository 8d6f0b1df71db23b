package controllers

import (
	"net/http"

	"dumbbell/models"
	"dumbbell/services"
	"dumbbell/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// POST /api/v1/addresses (public)
// An identical address already on file is returned with 200 instead of
// being inserted again.
func CreateAddress(c *gin.Context) {
	var in services.AddressInput
	if !bindBody(c, &in) {
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}

	addr, created, err := services.FindOrCreateAddress(db, in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if created {
		RespondCreated(c, gin.H{"address": addr})
		return
	}
	RespondSuccess(c, gin.H{"address": addr})
}

// GET /api/v1/addresses
func GetAddresses(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	page, limit := tools.GetPaginationParams(c)

	q := db.Model(&models.Address{})
	if city := c.Query("city"); city != "" {
		q = q.Where("city = ?", city)
	}
	if state := c.Query("state"); state != "" {
		q = q.Where("state = ?", state)
	}

	var total int
	if err := q.Count(&total).Error; err != nil {
		RespondServiceError(c, err)
		return
	}
	addresses := []models.Address{}
	if err := q.Order("id asc").Offset(tools.Offset(page, limit)).Limit(limit).Find(&addresses).Error; err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"addresses": addresses, "pagination": tools.NewPaginationMetadata(total, page, limit)})
}

// GET /api/v1/addresses/:id
func GetAddressByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}

	var addr models.Address
	if err := db.First(&addr, id).Error; err != nil {
		RespondError(c, "endereço não encontrado", http.StatusNotFound)
		return
	}
	RespondSuccess(c, gin.H{"address": addr})
}

// authorizeAddress: superusers or a student living at the address.
func authorizeAddress(db *gorm.DB, c *gin.Context, id int64) bool {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return false
	}
	if user.IsSuperuser {
		return true
	}
	student, err := services.StudentForUser(db, user.ID)
	if err != nil || student.AddressID != id {
		RespondServiceError(c, services.ErrForbidden)
		return false
	}
	return true
}

// PUT /api/v1/addresses/:id
func UpdateAddress(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var in services.AddressInput
	if !bindBody(c, &in) {
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}
	if !authorizeAddress(db, c, id) {
		return
	}

	addr, err := services.UpdateAddress(db, id, in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"address": addr})
}

// DELETE /api/v1/addresses/:id
func DeleteAddress(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}
	if !authorizeAddress(db, c, id) {
		return
	}

	if err := services.DeleteAddress(db, id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"status": "deleted"})
}
