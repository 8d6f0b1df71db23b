package controllers

import (
	"net/http"

	"dumbbell/models"
	"dumbbell/services"
	"dumbbell/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// loadActiveEnrollment fetches an active enrollment the caller may touch.
// Deactivated enrollments are 404 here.
func loadActiveEnrollment(c *gin.Context, db *gorm.DB) (models.Enrollment, bool) {
	var enrollment models.Enrollment
	id, ok := ParamID(c, "id")
	if !ok {
		return enrollment, false
	}
	if err := db.Where("id = ? AND active = ?", id, true).First(&enrollment).Error; err != nil {
		RespondError(c, "matrícula não encontrada", http.StatusNotFound)
		return enrollment, false
	}
	user, _ := GetUserLogged(c)
	if err := authorizeStudent(db, user, enrollment.StudentID); err != nil {
		RespondServiceError(c, err)
		return enrollment, false
	}
	return enrollment, true
}

// GET /api/v1/enrollments
// Active enrollments only; superusers may add include_inactive=1 to see history.
func GetEnrollments(c *gin.Context) {
	user, _ := GetUserLogged(c)
	db, ok := database(c)
	if !ok {
		return
	}
	page, limit := tools.GetPaginationParams(c)

	q, err := scopeToStudent(db.Model(&models.Enrollment{}), db, user)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if !(user.IsSuperuser && queryFlag(c, "include_inactive")) {
		q = q.Where("active = ?", true)
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
	enrollments := []models.Enrollment{}
	err = q.Preload("Plan").Order("id asc").Offset(tools.Offset(page, limit)).Limit(limit).Find(&enrollments).Error
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"enrollments": enrollments, "pagination": tools.NewPaginationMetadata(total, page, limit)})
}

// GET /api/v1/enrollments/:id
func GetEnrollmentByID(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	enrollment, ok := loadActiveEnrollment(c, db)
	if !ok {
		return
	}
	RespondSuccess(c, gin.H{"enrollment": enrollment})
}

// POST /api/v1/enrollments
func CreateEnrollment(c *gin.Context) {
	var in services.EnrollmentInput
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

	enrollment, err := services.CreateEnrollment(db, in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"enrollment": enrollment})
}

// PUT|PATCH /api/v1/enrollments/:id
func UpdateEnrollment(c *gin.Context) {
	var patch services.EnrollmentPatch
	if !bindBody(c, &patch) {
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}
	enrollment, ok := loadActiveEnrollment(c, db)
	if !ok {
		return
	}

	enrollment, err := services.UpdateEnrollment(db, enrollment.ID, patch)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"enrollment": enrollment})
}

// DELETE /api/v1/enrollments/:id
// The row is kept with active=false.
func DeleteEnrollment(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	enrollment, ok := loadActiveEnrollment(c, db)
	if !ok {
		return
	}

	if err := services.DeactivateEnrollment(db, enrollment.ID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"status": "deleted"})
}
