package services

import (
	"fmt"
	"strings"

	dbpkg "dumbbell/db"
	"dumbbell/models"
	"dumbbell/tools"

	"github.com/jinzhu/gorm"
)

type AddressInput struct {
	PostalCode   string `json:"postal_code" form:"postal_code"`
	Street       string `json:"street" form:"street"`
	Number       string `json:"number" form:"number"`
	Complement   string `json:"complement" form:"complement"`
	Neighborhood string `json:"neighborhood" form:"neighborhood"`
	City         string `json:"city" form:"city"`
	State        string `json:"state" form:"state"`
}

func (in AddressInput) normalized() AddressInput {
	in.PostalCode = strings.TrimSpace(in.PostalCode)
	in.Street = strings.TrimSpace(in.Street)
	in.Number = strings.TrimSpace(in.Number)
	in.Complement = strings.TrimSpace(in.Complement)
	in.Neighborhood = strings.TrimSpace(in.Neighborhood)
	in.City = strings.TrimSpace(in.City)
	in.State = strings.ToUpper(strings.TrimSpace(in.State))
	return in
}

func (in AddressInput) Validate() error {
	v := &ValidationError{}
	if err := tools.ValidateCEP(in.PostalCode); err != nil {
		v.Add("postal_code", err.Error())
	}
	if in.Street == "" {
		v.Add("street", "campo obrigatório")
	}
	if in.Number == "" {
		v.Add("number", "campo obrigatório")
	}
	if in.Neighborhood == "" {
		v.Add("neighborhood", "campo obrigatório")
	}
	if in.City == "" {
		v.Add("city", "campo obrigatório")
	}
	if err := tools.ValidateState(in.State); err != nil {
		v.Add("state", err.Error())
	}
	return v.Err()
}

func (in AddressInput) model() models.Address {
	return models.Address{
		PostalCode:   in.PostalCode,
		Street:       in.Street,
		Number:       in.Number,
		Complement:   in.Complement,
		Neighborhood: in.Neighborhood,
		City:         in.City,
		State:        in.State,
	}
}

func findAddress(db *gorm.DB, in AddressInput) (models.Address, error) {
	var addr models.Address
	err := db.
		Where("postal_code = ? AND street = ? AND number = ?", in.PostalCode, in.Street, in.Number).
		Where("complement = ? AND neighborhood = ?", in.Complement, in.Neighborhood).
		Where("city = ? AND state = ?", in.City, in.State).
		First(&addr).Error
	return addr, err
}

// FindOrCreateAddress returns the row identical to in when one exists,
// otherwise inserts it. created tells which happened. A concurrent insert of
// the same address loses on the unique index and gets the winner's row.
func FindOrCreateAddress(db *gorm.DB, in AddressInput) (addr models.Address, created bool, err error) {
	in = in.normalized()
	if err := in.Validate(); err != nil {
		return addr, false, err
	}

	addr, err = findAddress(db, in)
	if err == nil {
		return addr, false, nil
	}
	if !gorm.IsRecordNotFoundError(err) {
		return addr, false, fmt.Errorf("find address: %w", err)
	}

	addr = in.model()
	if err := db.Create(&addr).Error; err != nil {
		if dbpkg.IsUniqueViolation(err) {
			existing, ferr := findAddress(db, in)
			if ferr != nil {
				return existing, false, fmt.Errorf("find address after conflict: %w", ferr)
			}
			return existing, false, nil
		}
		return addr, false, fmt.Errorf("create address: %w", err)
	}
	return addr, true, nil
}

// UpdateAddress rewrites every field. Turning an address into a copy of
// another one is refused so the dedup key stays unique.
func UpdateAddress(db *gorm.DB, id int64, in AddressInput) (models.Address, error) {
	in = in.normalized()
	var addr models.Address
	if err := in.Validate(); err != nil {
		return addr, err
	}
	if err := db.First(&addr, id).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return addr, ErrNotFound
		}
		return addr, err
	}

	fields := in.model()
	err := db.Model(&addr).Updates(map[string]any{
		"postal_code":  fields.PostalCode,
		"street":       fields.Street,
		"number":       fields.Number,
		"complement":   fields.Complement,
		"neighborhood": fields.Neighborhood,
		"city":         fields.City,
		"state":        fields.State,
	}).Error
	if err != nil {
		if dbpkg.IsUniqueViolation(err) {
			return addr, NewValidationError("address", "endereço já cadastrado")
		}
		return addr, fmt.Errorf("update address: %w", err)
	}
	return addr, nil
}

// DeleteAddress removes an address nobody lives at.
func DeleteAddress(db *gorm.DB, id int64) error {
	return dbpkg.Transaction(db, func(tx *gorm.DB) error {
		var addr models.Address
		if err := tx.First(&addr, id).Error; err != nil {
			if gorm.IsRecordNotFoundError(err) {
				return ErrNotFound
			}
			return err
		}

		var refs int
		if err := tx.Model(&models.Student{}).Where("address_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return NewValidationError("address", "endereço em uso por um aluno")
		}
		return tx.Delete(&addr).Error
	})
}
