package controllers

import (
	"net/http"

	"dumbbell/models"
	"dumbbell/services"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// GET /api/v1/plans
func GetPlans(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}

	plans, err := services.ListPlans(db, true)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"plans": plans})
}

// GET /api/v1/plans/:id
func GetPlanByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}

	plan, err := services.LoadPlan(db, id, true)
	if err != nil {
		RespondError(c, "plano não encontrado", http.StatusNotFound)
		return
	}
	RespondSuccess(c, gin.H{"plan": plan})
}

// POST /api/v1/plans (admin)
func CreatePlan(c *gin.Context) {
	var in services.PlanInput
	if !bindBody(c, &in) {
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}

	plan, err := services.CreatePlan(db, in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	plan.Modalities = []models.Modality{}
	RespondCreated(c, gin.H{"plan": plan})
}

// PUT|PATCH /api/v1/plans/:id (admin)
func UpdatePlan(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var in services.PlanInput
	if !bindBody(c, &in) {
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}

	if _, err := services.UpdatePlan(db, id, in); err != nil {
		RespondServiceError(c, err)
		return
	}
	respondPlan(c, db, id, http.StatusOK)
}

func respondPlan(c *gin.Context, db *gorm.DB, id int64, code int) {
	plan, err := services.LoadPlan(db, id, false)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(code, gin.H{"plan": plan})
}

// DELETE /api/v1/plans/:id (admin)
// Enrollments and modality links of the plan are deleted with it.
func DeletePlan(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}

	if err := services.DeletePlan(db, id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"status": "deleted"})
}
