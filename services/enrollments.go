package services

import (
	"fmt"
	"strings"

	dbpkg "dumbbell/db"
	"dumbbell/models"

	"github.com/jinzhu/gorm"
)

const (
	MSG_CARD_REQUIRED     = "card data required for this payment method."
	MSG_CARD_FORBIDDEN    = "do not supply card data for PIX payment."
	MSG_ALREADY_ENROLLED  = "student already has an active enrollment"
	MSG_INVALID_PAYMENT   = "invalid payment method"
	MSG_PLAN_NOT_FOUND    = "plan not found"
	MSG_CARD_NOT_FOUND    = "card not found"
	MSG_CARD_NOT_STUDENTS = "card does not belong to this student"
)

type EnrollmentInput struct {
	Plan          int64  `json:"plan" form:"plan"`
	Student       int64  `json:"student" form:"student"`
	PaymentMethod string `json:"payment_method" form:"payment_method"`
	Card          *int64 `json:"card" form:"card"`
}

type EnrollmentPatch struct {
	Plan          *int64     `json:"plan"`
	PaymentMethod *string    `json:"payment_method"`
	Card          OptionalID `json:"card"`
}

// CheckPaymentMethodCard: credit and debit need a card, PIX must not have one.
func CheckPaymentMethodCard(method string, cardID *int64) error {
	if !models.IsPaymentMethodValid(method) {
		return NewValidationError("payment_method", MSG_INVALID_PAYMENT)
	}
	if models.RequiresCard(method) && cardID == nil {
		return NewValidationError("card", MSG_CARD_REQUIRED)
	}
	if method == models.PAYMENT_METHOD_PIX && cardID != nil {
		return NewValidationError("card", MSG_CARD_FORBIDDEN)
	}
	return nil
}

// CheckSingleActiveEnrollment fails when the student has an active
// enrollment other than excludeID (0 on create). Only active rows count.
func CheckSingleActiveEnrollment(tx *gorm.DB, studentID, excludeID int64) error {
	q := tx.Model(&models.Enrollment{}).Where("student_id = ? AND active = ?", studentID, true)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int
	if err := q.Count(&count).Error; err != nil {
		return fmt.Errorf("count enrollments: %w", err)
	}
	if count > 0 {
		return NewValidationError("student", MSG_ALREADY_ENROLLED)
	}
	return nil
}

func checkPlan(tx *gorm.DB, planID int64) error {
	var plan models.Plan
	err := tx.Where("id = ? AND active = ?", planID, true).First(&plan).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return NewValidationError("plan", MSG_PLAN_NOT_FOUND)
		}
		return err
	}
	return nil
}

func checkCard(tx *gorm.DB, cardID *int64, studentID int64) error {
	if cardID == nil {
		return nil
	}
	var card models.Card
	if err := tx.Where("id = ? AND active = ?", *cardID, true).First(&card).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return NewValidationError("card", MSG_CARD_NOT_FOUND)
		}
		return err
	}
	if card.StudentID != studentID {
		return NewValidationError("card", MSG_CARD_NOT_STUDENTS)
	}
	return nil
}

func saveEnrollmentErr(err error) error {
	if dbpkg.IsUniqueViolation(err) {
		return NewValidationError("student", MSG_ALREADY_ENROLLED)
	}
	return fmt.Errorf("save enrollment: %w", err)
}

// CreateEnrollment validates and inserts in one transaction holding the
// student's row lock. The partial unique index backs the same rule.
func CreateEnrollment(db *gorm.DB, in EnrollmentInput) (models.Enrollment, error) {
	in.PaymentMethod = strings.ToLower(strings.TrimSpace(in.PaymentMethod))
	enrollment := models.Enrollment{
		StudentID:     in.Student,
		PlanID:        in.Plan,
		PaymentMethod: in.PaymentMethod,
		CardID:        in.Card,
	}

	err := dbpkg.Transaction(db, func(tx *gorm.DB) error {
		if err := CheckPaymentMethodCard(in.PaymentMethod, in.Card); err != nil {
			return err
		}
		if _, err := lockStudent(tx, in.Student); err != nil {
			return err
		}
		if err := checkPlan(tx, in.Plan); err != nil {
			return err
		}
		if err := checkCard(tx, in.Card, in.Student); err != nil {
			return err
		}
		if err := CheckSingleActiveEnrollment(tx, in.Student, 0); err != nil {
			return err
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			return saveEnrollmentErr(err)
		}
		return nil
	})
	return enrollment, err
}

// UpdateEnrollment changes plan, payment method or card of an active
// enrollment. The student never changes. Inactive rows are not found.
func UpdateEnrollment(db *gorm.DB, id int64, patch EnrollmentPatch) (models.Enrollment, error) {
	var enrollment models.Enrollment
	err := dbpkg.Transaction(db, func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND active = ?", id, true).First(&enrollment).Error; err != nil {
			return notFoundOr(err, gorm.IsRecordNotFoundError(err))
		}

		if patch.Plan != nil {
			enrollment.PlanID = *patch.Plan
		}
		if patch.PaymentMethod != nil {
			enrollment.PaymentMethod = strings.ToLower(strings.TrimSpace(*patch.PaymentMethod))
		}
		if patch.Card.Set {
			enrollment.CardID = patch.Card.Value
		}

		if err := CheckPaymentMethodCard(enrollment.PaymentMethod, enrollment.CardID); err != nil {
			return err
		}
		if _, err := lockStudent(tx, enrollment.StudentID); err != nil {
			return err
		}
		if err := checkPlan(tx, enrollment.PlanID); err != nil {
			return err
		}
		if err := checkCard(tx, enrollment.CardID, enrollment.StudentID); err != nil {
			return err
		}
		if err := CheckSingleActiveEnrollment(tx, enrollment.StudentID, enrollment.ID); err != nil {
			return err
		}

		err := tx.Model(&enrollment).Updates(map[string]any{
			"plan_id":        enrollment.PlanID,
			"payment_method": enrollment.PaymentMethod,
			"card_id":        enrollment.CardID,
		}).Error
		if err != nil {
			return saveEnrollmentErr(err)
		}
		return nil
	})
	return enrollment, err
}

// DeactivateEnrollment is the delete of an enrollment: the row stays,
// active goes false. Deactivating twice reports not found.
func DeactivateEnrollment(db *gorm.DB, id int64) error {
	res := db.Model(&models.Enrollment{}).
		Where("id = ? AND active = ?", id, true).
		Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ActiveEnrollment returns the student's current enrollment with its plan.
func ActiveEnrollment(db *gorm.DB, studentID int64) (models.Enrollment, error) {
	var enrollment models.Enrollment
	err := db.Preload("Plan").
		Where("student_id = ? AND active = ?", studentID, true).
		First(&enrollment).Error
	if err != nil {
		return enrollment, notFoundOr(err, gorm.IsRecordNotFoundError(err))
	}
	return enrollment, nil
}
