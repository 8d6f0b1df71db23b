package models

/************************************************
/**** MARK: EXERCISE CATEGORIES ****/
/************************************************/
const EXERCISE_CATEGORY_BODYBUILDING = "Musculacao"
const EXERCISE_CATEGORY_DANCE = "Dança"
const EXERCISE_CATEGORY_GYMNASTICS = "Ginastica"

var MUSCLE_GROUPS = []string{
	"Biceps", "Triceps", "Peito", "Costas", "Ombro", "Glúteos",
	"Panturrilha", "Quadríceps", "Abdominal", "Lombar", "Trapézio", "Outros",
}

type Exercise struct {
	Base
	Name        string `gorm:"not null" json:"name" form:"name"`
	Description string `gorm:"type:text" json:"description" form:"description"`
	Category    string `gorm:"not null;size:30" json:"category" form:"category"`
	MuscleGroup string `gorm:"size:30" json:"muscle_group" form:"muscle_group"`
	Equipment   string `json:"equipment" form:"equipment"`
}

func (Exercise) TableName() string { return "exercises" }

func IsExerciseCategoryValid(category string) bool {
	switch category {
	case EXERCISE_CATEGORY_BODYBUILDING, EXERCISE_CATEGORY_DANCE, EXERCISE_CATEGORY_GYMNASTICS:
		return true
	}
	return false
}

func IsMuscleGroupValid(group string) bool {
	if group == "" {
		return true
	}
	for _, g := range MUSCLE_GROUPS {
		if g == group {
			return true
		}
	}
	return false
}
