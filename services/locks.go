package services

import (
	"fmt"

	dbpkg "dumbbell/db"
	"dumbbell/models"

	"github.com/jinzhu/gorm"
)

// lockStudent loads the student row inside tx, taking a row lock where the
// dialect has one. Every check-then-insert on a student's enrollments or
// workouts runs after this call.
func lockStudent(tx *gorm.DB, studentID int64) (models.Student, error) {
	q := tx
	if dbpkg.SupportsRowLocks(tx) {
		q = q.Set("gorm:query_option", "FOR UPDATE")
	}

	var student models.Student
	if err := q.First(&student, studentID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return student, NewValidationError("student", "student not found")
		}
		return student, fmt.Errorf("lock student %d: %w", studentID, err)
	}
	return student, nil
}
