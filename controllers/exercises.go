package controllers

import (
	"net/http"

	"dumbbell/models"
	"dumbbell/services"
	"dumbbell/tools"

	"github.com/gin-gonic/gin"
)

// GET /api/v1/exercises
func GetExercises(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	page, limit := tools.GetPaginationParams(c)

	q := db.Model(&models.Exercise{}).Where("active = ?", true)
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if group := c.Query("muscle_group"); group != "" {
		q = q.Where("muscle_group = ?", group)
	}

	var total int
	if err := q.Count(&total).Error; err != nil {
		RespondServiceError(c, err)
		return
	}
	exercises := []models.Exercise{}
	if err := q.Order("name asc, id asc").Offset(tools.Offset(page, limit)).Limit(limit).Find(&exercises).Error; err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"exercises": exercises, "pagination": tools.NewPaginationMetadata(total, page, limit)})
}

// GET /api/v1/exercises/:id
func GetExerciseByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}

	var exercise models.Exercise
	if err := db.First(&exercise, id).Error; err != nil {
		RespondError(c, "exercício não encontrado", http.StatusNotFound)
		return
	}
	RespondSuccess(c, gin.H{"exercise": exercise})
}

// POST /api/v1/exercises (admin)
func CreateExercise(c *gin.Context) {
	var in services.ExerciseInput
	if !bindBody(c, &in) {
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}

	exercise, err := services.CreateExercise(db, in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"exercise": exercise})
}

// PUT|PATCH /api/v1/exercises/:id (admin)
func UpdateExercise(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var in services.ExerciseInput
	if !bindBody(c, &in) {
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}

	exercise, err := services.UpdateExercise(db, id, in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"exercise": exercise})
}

// DELETE /api/v1/exercises/:id (admin)
// Workouts keep existing, minus the entries that used this exercise.
func DeleteExercise(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}

	if err := services.DeleteExercise(db, id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"status": "deleted"})
}
