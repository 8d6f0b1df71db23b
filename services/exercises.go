package services

import (
	"fmt"
	"strings"

	dbpkg "dumbbell/db"
	"dumbbell/models"

	"github.com/jinzhu/gorm"
)

type ExerciseInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	MuscleGroup *string `json:"muscle_group"`
	Equipment   *string `json:"equipment"`
}

func (in ExerciseInput) apply(e *models.Exercise) {
	if in.Name != nil {
		e.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		e.Description = *in.Description
	}
	if in.Category != nil {
		e.Category = strings.TrimSpace(*in.Category)
	}
	if in.MuscleGroup != nil {
		e.MuscleGroup = strings.TrimSpace(*in.MuscleGroup)
	}
	if in.Equipment != nil {
		e.Equipment = strings.TrimSpace(*in.Equipment)
	}
}

func validateExercise(e models.Exercise) error {
	v := &ValidationError{}
	if e.Name == "" {
		v.Add("name", "campo obrigatório")
	}
	if !models.IsExerciseCategoryValid(e.Category) {
		v.Add("category", "categoria inválida")
	}
	if !models.IsMuscleGroupValid(e.MuscleGroup) {
		v.Add("muscle_group", "grupo muscular inválido")
	}
	return v.Err()
}

func CreateExercise(db *gorm.DB, in ExerciseInput) (models.Exercise, error) {
	var exercise models.Exercise
	in.apply(&exercise)
	if err := validateExercise(exercise); err != nil {
		return exercise, err
	}
	if err := db.Create(&exercise).Error; err != nil {
		return exercise, fmt.Errorf("create exercise: %w", err)
	}
	return exercise, nil
}

func UpdateExercise(db *gorm.DB, id int64, in ExerciseInput) (models.Exercise, error) {
	var exercise models.Exercise
	if err := db.First(&exercise, id).Error; err != nil {
		return exercise, notFoundOr(err, gorm.IsRecordNotFoundError(err))
	}
	in.apply(&exercise)
	if err := validateExercise(exercise); err != nil {
		return exercise, err
	}
	if err := db.Save(&exercise).Error; err != nil {
		return exercise, fmt.Errorf("update exercise: %w", err)
	}
	return exercise, nil
}

// DeleteExercise drops the exercise from every workout that uses it. The
// workouts themselves stay.
func DeleteExercise(db *gorm.DB, id int64) error {
	return dbpkg.Transaction(db, func(tx *gorm.DB) error {
		var exercise models.Exercise
		if err := tx.First(&exercise, id).Error; err != nil {
			return notFoundOr(err, gorm.IsRecordNotFoundError(err))
		}
		if err := tx.Where("exercise_id = ?", id).Delete(&models.WorkoutExercise{}).Error; err != nil {
			return fmt.Errorf("delete exercise entries: %w", err)
		}
		return tx.Delete(&exercise).Error
	})
}
