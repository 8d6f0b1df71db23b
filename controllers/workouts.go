package controllers

import (
	"dumbbell/models"
	"dumbbell/services"
	"dumbbell/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

func loadWorkout(c *gin.Context, db *gorm.DB) (models.Workout, bool) {
	id, ok := ParamID(c, "id")
	if !ok {
		return models.Workout{}, false
	}
	workout, err := services.LoadWorkout(db, id)
	if err != nil {
		RespondServiceError(c, err)
		return workout, false
	}
	user, _ := GetUserLogged(c)
	if err := authorizeStudent(db, user, workout.StudentID); err != nil {
		RespondServiceError(c, err)
		return workout, false
	}
	return workout, true
}

// GET /api/v1/workouts
func GetWorkouts(c *gin.Context) {
	user, _ := GetUserLogged(c)
	db, ok := database(c)
	if !ok {
		return
	}
	page, limit := tools.GetPaginationParams(c)

	q, err := scopeToStudent(db.Model(&models.Workout{}), db, user)
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
	var ids []int64
	if err := q.Order("id asc").Offset(tools.Offset(page, limit)).Limit(limit).Pluck("id", &ids).Error; err != nil {
		RespondServiceError(c, err)
		return
	}

	workouts := make([]models.Workout, 0, len(ids))
	for _, id := range ids {
		w, err := services.LoadWorkout(db, id)
		if err != nil {
			RespondServiceError(c, err)
			return
		}
		workouts = append(workouts, w)
	}
	RespondSuccess(c, gin.H{"workouts": workouts, "pagination": tools.NewPaginationMetadata(total, page, limit)})
}

// GET /api/v1/workouts/:id
func GetWorkoutByID(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	workout, ok := loadWorkout(c, db)
	if !ok {
		return
	}
	RespondSuccess(c, gin.H{"workout": workout})
}

// POST /api/v1/workouts
// Subject to the plan quota of the student's active enrollment.
func CreateWorkout(c *gin.Context) {
	var in services.WorkoutInput
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

	workout, err := services.CreateWorkout(db, quotas(), in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"workout": workout})
}

// PUT|PATCH /api/v1/workouts/:id
func UpdateWorkout(c *gin.Context) {
	var patch services.WorkoutPatch
	if !bindBody(c, &patch) {
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}
	workout, ok := loadWorkout(c, db)
	if !ok {
		return
	}

	workout, err := services.UpdateWorkout(db, workout.ID, patch)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"workout": workout})
}

// DELETE /api/v1/workouts/:id
func DeleteWorkout(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	workout, ok := loadWorkout(c, db)
	if !ok {
		return
	}

	if err := services.DeleteWorkout(db, workout.ID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"status": "deleted"})
}
