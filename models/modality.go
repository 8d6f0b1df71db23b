package models

// Modality is a kind of activity a plan gives access to. It shares the
// exercise category choices.
type Modality struct {
	Base
	Category string `gorm:"not null;size:30;unique_index" json:"category" form:"category"`
}

func (Modality) TableName() string { return "modalities" }

// PlanModality links a plan to one of its modalities.
type PlanModality struct {
	Base
	PlanID     int64 `gorm:"not null;index" json:"plan"`
	ModalityID int64 `gorm:"not null;index" json:"modality"`
}

func (PlanModality) TableName() string { return "plan_modalities" }

func IsModalityCategoryValid(category string) bool {
	return IsExerciseCategoryValid(category)
}
