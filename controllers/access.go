package controllers

import (
	"errors"

	"dumbbell/models"
	"dumbbell/services"

	"github.com/jinzhu/gorm"
)

// ownStudentID returns the student profile id of a regular principal.
// Principals without a profile can only act as superusers.
func ownStudentID(db *gorm.DB, user models.User) (int64, error) {
	student, err := services.StudentForUser(db, user.ID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return 0, services.ErrForbidden
		}
		return 0, err
	}
	return student.ID, nil
}

// authorizeStudent lets superusers through and everyone else only for
// their own student.
func authorizeStudent(db *gorm.DB, user models.User, studentID int64) error {
	if user.IsSuperuser {
		return nil
	}
	own, err := ownStudentID(db, user)
	if err != nil {
		return err
	}
	if own != studentID {
		return services.ErrForbidden
	}
	return nil
}

// targetStudent picks the student a create acts on: regular users always
// act on themselves, superusers must name one.
func targetStudent(db *gorm.DB, user models.User, requested int64) (int64, error) {
	if user.IsSuperuser {
		if requested <= 0 {
			return 0, services.NewValidationError("student", "campo obrigatório")
		}
		return requested, nil
	}
	own, err := ownStudentID(db, user)
	if err != nil {
		return 0, err
	}
	if requested > 0 && requested != own {
		return 0, services.ErrForbidden
	}
	return own, nil
}

// scopeToStudent restricts a list query to the caller's rows unless the
// caller is a superuser.
func scopeToStudent(q *gorm.DB, db *gorm.DB, user models.User) (*gorm.DB, error) {
	if user.IsSuperuser {
		return q, nil
	}
	own, err := ownStudentID(db, user)
	if err != nil {
		return q, err
	}
	return q.Where("student_id = ?", own), nil
}
