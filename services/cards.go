package services

import (
	"fmt"
	"strings"
	"time"

	dbpkg "dumbbell/db"
	"dumbbell/models"
	"dumbbell/tools"

	"github.com/jinzhu/gorm"
)

type CardInput struct {
	Student    int64  `json:"student" form:"student"`
	Number     string `json:"number" form:"number"`
	HolderName string `json:"holder_name" form:"holder_name"`
	Expiry     string `json:"expiry" form:"expiry"`
	CVV        string `json:"cvv" form:"cvv"`
	Brand      string `json:"brand" form:"brand"`
}

type CardPatch struct {
	Number     *string `json:"number"`
	HolderName *string `json:"holder_name"`
	Expiry     *string `json:"expiry"`
	CVV        *string `json:"cvv"`
	Brand      *string `json:"brand"`
}

func validateCard(card models.Card, now time.Time) error {
	v := &ValidationError{}
	if err := tools.ValidateCardNumber(card.Number); err != nil {
		v.Add("number", err.Error())
	}
	if strings.TrimSpace(card.HolderName) == "" {
		v.Add("holder_name", "campo obrigatório")
	}
	if err := tools.ValidateCardExpiry(card.Expiry, now); err != nil {
		v.Add("expiry", err.Error())
	}
	if err := tools.ValidateCVV(card.CVV); err != nil {
		v.Add("cvv", err.Error())
	}
	if !models.IsCardBrandValid(card.Brand) {
		v.Add("brand", "bandeira inválida")
	}
	return v.Err()
}

func lastDigits(number string) string {
	if len(number) < 4 {
		return number
	}
	return number[len(number)-4:]
}

func CreateCard(db *gorm.DB, in CardInput) (models.Card, error) {
	card := models.Card{
		StudentID:  in.Student,
		Number:     strings.TrimSpace(in.Number),
		HolderName: strings.TrimSpace(in.HolderName),
		Expiry:     strings.TrimSpace(in.Expiry),
		CVV:        strings.TrimSpace(in.CVV),
		Brand:      strings.TrimSpace(in.Brand),
	}
	if err := validateCard(card, time.Now()); err != nil {
		return card, err
	}

	var count int
	if err := db.Model(&models.Student{}).Where("id = ?", in.Student).Count(&count).Error; err != nil {
		return card, err
	}
	if count == 0 {
		return card, NewValidationError("student", "student not found")
	}

	card.LastDigits = lastDigits(card.Number)
	if err := db.Create(&card).Error; err != nil {
		return card, fmt.Errorf("create card: %w", err)
	}
	return card, nil
}

func UpdateCard(db *gorm.DB, id int64, patch CardPatch) (models.Card, error) {
	var card models.Card
	if err := db.First(&card, id).Error; err != nil {
		return card, notFoundOr(err, gorm.IsRecordNotFoundError(err))
	}

	if patch.Number != nil {
		card.Number = strings.TrimSpace(*patch.Number)
	}
	if patch.HolderName != nil {
		card.HolderName = strings.TrimSpace(*patch.HolderName)
	}
	if patch.Expiry != nil {
		card.Expiry = strings.TrimSpace(*patch.Expiry)
	}
	if patch.CVV != nil {
		card.CVV = strings.TrimSpace(*patch.CVV)
	}
	if patch.Brand != nil {
		card.Brand = strings.TrimSpace(*patch.Brand)
	}
	if err := validateCard(card, time.Now()); err != nil {
		return card, err
	}

	card.LastDigits = lastDigits(card.Number)
	if err := db.Save(&card).Error; err != nil {
		return card, fmt.Errorf("update card: %w", err)
	}
	return card, nil
}

// DeleteCard refuses to drop a card an active enrollment is paid with.
// Inactive enrollments just lose the reference.
func DeleteCard(db *gorm.DB, id int64) error {
	return dbpkg.Transaction(db, func(tx *gorm.DB) error {
		var card models.Card
		if err := tx.First(&card, id).Error; err != nil {
			return notFoundOr(err, gorm.IsRecordNotFoundError(err))
		}
		if _, err := lockStudent(tx, card.StudentID); err != nil {
			return err
		}

		var inUse int
		err := tx.Model(&models.Enrollment{}).
			Where("card_id = ? AND active = ?", id, true).
			Count(&inUse).Error
		if err != nil {
			return err
		}
		if inUse > 0 {
			return NewValidationError("card", "card in use by an active enrollment")
		}

		if err := tx.Model(&models.Enrollment{}).Where("card_id = ?", id).UpdateColumn("card_id", gorm.Expr("NULL")).Error; err != nil {
			return err
		}
		return tx.Delete(&card).Error
	})
}
