package controllers

import (
	"net/http"

	"dumbbell/models"
	"dumbbell/services"
	"dumbbell/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// loadCard fetches a card and checks the caller may touch it.
func loadCard(c *gin.Context, db *gorm.DB) (models.Card, bool) {
	var card models.Card
	id, ok := ParamID(c, "id")
	if !ok {
		return card, false
	}
	if err := db.First(&card, id).Error; err != nil {
		RespondError(c, "cartão não encontrado", http.StatusNotFound)
		return card, false
	}
	user, _ := GetUserLogged(c)
	if err := authorizeStudent(db, user, card.StudentID); err != nil {
		RespondServiceError(c, err)
		return card, false
	}
	return card, true
}

// GET /api/v1/cards
func GetCards(c *gin.Context) {
	user, _ := GetUserLogged(c)
	db, ok := database(c)
	if !ok {
		return
	}
	page, limit := tools.GetPaginationParams(c)

	q, err := scopeToStudent(db.Model(&models.Card{}), db, user)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	studentID, present, ok := QueryID(c, "student")
	if !ok {
		return
	}
	if present {
		q = q.Where("student_id = ?", studentID)
	}

	var total int
	if err := q.Count(&total).Error; err != nil {
		RespondServiceError(c, err)
		return
	}
	cards := []models.Card{}
	if err := q.Order("id asc").Offset(tools.Offset(page, limit)).Limit(limit).Find(&cards).Error; err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"cards": cards, "pagination": tools.NewPaginationMetadata(total, page, limit)})
}

// GET /api/v1/cards/:id
func GetCardByID(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	card, ok := loadCard(c, db)
	if !ok {
		return
	}
	RespondSuccess(c, gin.H{"card": card})
}

// POST /api/v1/cards
func CreateCard(c *gin.Context) {
	var in services.CardInput
	if !bindBody(c, &in) {
		return
	}
	user, _ := GetUserLogged(c)
	db, ok := database(c)
	if !ok {
		return
	}

	studentID, err := targetStudent(db, user, in.Student)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	in.Student = studentID

	card, err := services.CreateCard(db, in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"card": card})
}

// PUT|PATCH /api/v1/cards/:id
func UpdateCard(c *gin.Context) {
	var patch services.CardPatch
	if !bindBody(c, &patch) {
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}
	card, ok := loadCard(c, db)
	if !ok {
		return
	}

	card, err := services.UpdateCard(db, card.ID, patch)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"card": card})
}

// DELETE /api/v1/cards/:id
func DeleteCard(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	card, ok := loadCard(c, db)
	if !ok {
		return
	}

	if err := services.DeleteCard(db, card.ID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"status": "deleted"})
}
