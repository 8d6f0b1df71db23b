package controllers

import (
	"net/http"

	"dumbbell/models"
	"dumbbell/services"

	"github.com/gin-gonic/gin"
)

type linkModalityRequest struct {
	Modality int64 `json:"modality" form:"modality"`
}

// GET /api/v1/plans/modalities
func GetModalities(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}

	modalities := []models.Modality{}
	if err := db.Order("id asc").Find(&modalities).Error; err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"modalities": modalities})
}

// GET /api/v1/plans/modalities/:id
func GetModalityByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}

	var modality models.Modality
	if err := db.First(&modality, id).Error; err != nil {
		RespondError(c, "modalidade não encontrada", http.StatusNotFound)
		return
	}
	RespondSuccess(c, gin.H{"modality": modality})
}

// POST /api/v1/plans/modalities (admin)
func CreateModality(c *gin.Context) {
	var in services.ModalityInput
	if !bindBody(c, &in) {
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}

	modality, err := services.CreateModality(db, in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"modality": modality})
}

// PUT|PATCH /api/v1/plans/modalities/:id (admin)
func UpdateModality(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var in services.ModalityInput
	if !bindBody(c, &in) {
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}

	modality, err := services.UpdateModality(db, id, in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"modality": modality})
}

// DELETE /api/v1/plans/modalities/:id (admin)
func DeleteModality(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}

	if err := services.DeleteModality(db, id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"status": "deleted"})
}

// POST /api/v1/plans/:id/modalities (admin)
func LinkPlanModality(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req linkModalityRequest
	if !bindBody(c, &req) {
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}

	if _, err := services.LinkModality(db, id, req.Modality); err != nil {
		RespondServiceError(c, err)
		return
	}
	respondPlan(c, db, id, http.StatusCreated)
}

// DELETE /api/v1/plans/:id/modalities/:modality_id (admin)
func UnlinkPlanModality(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	modalityID, ok := ParamID(c, "modality_id")
	if !ok {
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}

	if err := services.UnlinkModality(db, id, modalityID); err != nil {
		RespondServiceError(c, err)
		return
	}
	respondPlan(c, db, id, http.StatusOK)
}
