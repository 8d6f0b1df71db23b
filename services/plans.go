package services

import (
	"fmt"
	"strings"

	dbpkg "dumbbell/db"
	"dumbbell/models"
	"dumbbell/tools"

	"github.com/jinzhu/gorm"
)

type PlanInput struct {
	Title       *string   `json:"title"`
	Slug        *string   `json:"slug"`
	PriceCents  *int64    `json:"price_cents"`
	Description *string   `json:"description"`
	Benefits    *[]string `json:"benefits"`
	Active      *bool     `json:"active"`
}

func (in PlanInput) apply(plan *models.Plan) {
	if in.Title != nil {
		plan.Title = strings.TrimSpace(*in.Title)
	}
	if in.Slug != nil {
		plan.Slug = tools.Slugify(*in.Slug)
	}
	if in.PriceCents != nil {
		plan.PriceCents = *in.PriceCents
	}
	if in.Description != nil {
		plan.Description = *in.Description
	}
	if in.Benefits != nil {
		plan.Benefits = models.StringList(*in.Benefits)
	}
	if in.Active != nil {
		plan.Active = *in.Active
	}
	// slug follows the title until someone sets it explicitly
	if plan.Slug == "" {
		plan.Slug = tools.Slugify(plan.Title)
	}
}

func validatePlan(plan models.Plan) error {
	v := &ValidationError{}
	if plan.Title == "" {
		v.Add("title", "campo obrigatório")
	}
	if plan.Slug == "" {
		v.Add("slug", "slug inválido")
	}
	if plan.PriceCents < 0 {
		v.Add("price_cents", "preço não pode ser negativo")
	}
	return v.Err()
}

func CreatePlan(db *gorm.DB, in PlanInput) (models.Plan, error) {
	plan := models.Plan{Benefits: models.StringList{}}
	plan.Active = true
	in.apply(&plan)
	if err := validatePlan(plan); err != nil {
		return plan, err
	}

	// gorm omits a false with a default:true tag from the INSERT and reads
	// the column back as true, so the requested flag is kept aside.
	active := plan.Active
	err := dbpkg.Transaction(db, func(tx *gorm.DB) error {
		if err := tx.Create(&plan).Error; err != nil {
			if dbpkg.IsUniqueViolation(err) {
				return NewValidationError("slug", "já existe um plano com este slug")
			}
			return fmt.Errorf("create plan: %w", err)
		}
		if active {
			return nil
		}
		if err := tx.Model(&plan).Update("active", false).Error; err != nil {
			return fmt.Errorf("deactivate plan: %w", err)
		}
		plan.Active = false
		return nil
	})
	if err != nil {
		return models.Plan{}, err
	}
	return plan, nil
}

func UpdatePlan(db *gorm.DB, id int64, in PlanInput) (models.Plan, error) {
	var plan models.Plan
	if err := db.First(&plan, id).Error; err != nil {
		return plan, notFoundOr(err, gorm.IsRecordNotFoundError(err))
	}
	in.apply(&plan)
	if err := validatePlan(plan); err != nil {
		return plan, err
	}
	if err := db.Save(&plan).Error; err != nil {
		if dbpkg.IsUniqueViolation(err) {
			return plan, NewValidationError("slug", "já existe um plano com este slug")
		}
		return plan, fmt.Errorf("update plan: %w", err)
	}
	return plan, nil
}

// ListPlans returns the plans cheapest first, each with its modalities.
func ListPlans(db *gorm.DB, activeOnly bool) ([]models.Plan, error) {
	q := db.Order("price_cents asc, id asc")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	plans := []models.Plan{}
	if err := q.Find(&plans).Error; err != nil {
		return nil, err
	}
	if err := attachModalities(db, plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func LoadPlan(db *gorm.DB, id int64, activeOnly bool) (models.Plan, error) {
	q := db.Where("id = ?", id)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var plan models.Plan
	if err := q.First(&plan).Error; err != nil {
		return plan, notFoundOr(err, gorm.IsRecordNotFoundError(err))
	}
	plans := []models.Plan{plan}
	if err := attachModalities(db, plans); err != nil {
		return plan, err
	}
	return plans[0], nil
}

// DeletePlan removes the plan with its modality links and every enrollment
// that points at it.
func DeletePlan(db *gorm.DB, id int64) error {
	return dbpkg.Transaction(db, func(tx *gorm.DB) error {
		var plan models.Plan
		if err := tx.First(&plan, id).Error; err != nil {
			return notFoundOr(err, gorm.IsRecordNotFoundError(err))
		}
		if err := tx.Where("plan_id = ?", id).Delete(&models.Enrollment{}).Error; err != nil {
			return fmt.Errorf("delete plan enrollments: %w", err)
		}
		if err := tx.Where("plan_id = ?", id).Delete(&models.PlanModality{}).Error; err != nil {
			return fmt.Errorf("delete plan modalities: %w", err)
		}
		return tx.Delete(&plan).Error
	})
}
