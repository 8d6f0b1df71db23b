package services

import (
	"fmt"
	"strings"

	dbpkg "dumbbell/db"
	"dumbbell/models"

	"github.com/jinzhu/gorm"
)

const (
	MSG_MODALITY_EXISTS    = "modalidade já cadastrada"
	MSG_MODALITY_NOT_FOUND = "modalidade não encontrada"
	MSG_MODALITY_LINKED    = "modalidade já vinculada ao plano"
)

type ModalityInput struct {
	Category *string `json:"category"`
}

func saveModality(db *gorm.DB, modality *models.Modality, save func(any) *gorm.DB) error {
	if !models.IsModalityCategoryValid(modality.Category) {
		return NewValidationError("category", "categoria inválida")
	}
	if err := save(modality).Error; err != nil {
		if dbpkg.IsUniqueViolation(err) {
			return NewValidationError("category", MSG_MODALITY_EXISTS)
		}
		return fmt.Errorf("save modality: %w", err)
	}
	return nil
}

func CreateModality(db *gorm.DB, in ModalityInput) (models.Modality, error) {
	var modality models.Modality
	if in.Category != nil {
		modality.Category = strings.TrimSpace(*in.Category)
	}
	err := saveModality(db, &modality, func(v any) *gorm.DB { return db.Create(v) })
	return modality, err
}

func UpdateModality(db *gorm.DB, id int64, in ModalityInput) (models.Modality, error) {
	var modality models.Modality
	if err := db.First(&modality, id).Error; err != nil {
		return modality, notFoundOr(err, gorm.IsRecordNotFoundError(err))
	}
	if in.Category != nil {
		modality.Category = strings.TrimSpace(*in.Category)
	}
	err := saveModality(db, &modality, func(v any) *gorm.DB { return db.Save(v) })
	return modality, err
}

// DeleteModality unlinks the modality from every plan, then removes it.
func DeleteModality(db *gorm.DB, id int64) error {
	return dbpkg.Transaction(db, func(tx *gorm.DB) error {
		var modality models.Modality
		if err := tx.First(&modality, id).Error; err != nil {
			return notFoundOr(err, gorm.IsRecordNotFoundError(err))
		}
		if err := tx.Where("modality_id = ?", id).Delete(&models.PlanModality{}).Error; err != nil {
			return fmt.Errorf("delete modality links: %w", err)
		}
		return tx.Delete(&modality).Error
	})
}

// LinkModality attaches a modality to a plan. Linking the same pair twice
// is a validation error.
func LinkModality(db *gorm.DB, planID, modalityID int64) (models.PlanModality, error) {
	link := models.PlanModality{PlanID: planID, ModalityID: modalityID}
	err := dbpkg.Transaction(db, func(tx *gorm.DB) error {
		var plan models.Plan
		if err := tx.First(&plan, planID).Error; err != nil {
			return notFoundOr(err, gorm.IsRecordNotFoundError(err))
		}
		var count int
		if err := tx.Model(&models.Modality{}).Where("id = ?", modalityID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return NewValidationError("modality", MSG_MODALITY_NOT_FOUND)
		}
		if err := tx.Create(&link).Error; err != nil {
			if dbpkg.IsUniqueViolation(err) {
				return NewValidationError("modality", MSG_MODALITY_LINKED)
			}
			return fmt.Errorf("link modality: %w", err)
		}
		return nil
	})
	return link, err
}

func UnlinkModality(db *gorm.DB, planID, modalityID int64) error {
	res := db.Where("plan_id = ? AND modality_id = ?", planID, modalityID).Delete(&models.PlanModality{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// attachModalities fills Modalities on each plan, in link order.
func attachModalities(db *gorm.DB, plans []models.Plan) error {
	if len(plans) == 0 {
		return nil
	}
	planIDs := make([]int64, len(plans))
	for i := range plans {
		planIDs[i] = plans[i].ID
		plans[i].Modalities = []models.Modality{}
	}

	var links []models.PlanModality
	if err := db.Where("plan_id IN (?)", planIDs).Order("id asc").Find(&links).Error; err != nil {
		return fmt.Errorf("load plan modalities: %w", err)
	}
	if len(links) == 0 {
		return nil
	}

	modalityIDs := make([]int64, 0, len(links))
	for _, l := range links {
		modalityIDs = append(modalityIDs, l.ModalityID)
	}
	var modalities []models.Modality
	if err := db.Where("id IN (?)", modalityIDs).Find(&modalities).Error; err != nil {
		return fmt.Errorf("load modalities: %w", err)
	}
	byID := make(map[int64]models.Modality, len(modalities))
	for _, m := range modalities {
		byID[m.ID] = m
	}

	index := make(map[int64]int, len(plans))
	for i := range plans {
		index[plans[i].ID] = i
	}
	for _, l := range links {
		if m, ok := byID[l.ModalityID]; ok {
			p := &plans[index[l.PlanID]]
			p.Modalities = append(p.Modalities, m)
		}
	}
	return nil
}
