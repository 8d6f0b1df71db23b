package services

import (
	"fmt"
	"strings"

	dbpkg "dumbbell/db"
	"dumbbell/models"

	"github.com/jinzhu/gorm"
)

const (
	MSG_NO_ACTIVE_ENROLLMENT = "student has no active enrollment"
	MSG_NO_VALID_PLAN        = "enrollment has no valid plan"
)

// QuotaTable maps a plan slug to the max number of active workouts.
// A negative value is unlimited; a slug missing from the table allows none.
type QuotaTable map[string]int

func (q QuotaTable) Limit(slug string) (limit int, unlimited bool) {
	limit, ok := q[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return 0, false
	}
	if limit < 0 {
		return 0, true
	}
	return limit, false
}

type WorkoutExerciseInput struct {
	Exercise int64    `json:"exercise"`
	Sets     int      `json:"sets"`
	Reps     int      `json:"reps"`
	Load     *float64 `json:"load"`
	Rest     *int     `json:"rest"`
}

type WorkoutInput struct {
	Name         string                 `json:"name"`
	Student      int64                  `json:"student"`
	Objective    string                 `json:"objective"`
	Availability string                 `json:"availability"`
	Notes        string                 `json:"notes"`
	Exercises    []WorkoutExerciseInput `json:"exercises"`
}

// WorkoutPatch merges scalars. Exercises, when present (even empty),
// replaces every entry of the workout.
type WorkoutPatch struct {
	Name         *string                 `json:"name"`
	Objective    *string                 `json:"objective"`
	Availability *string                 `json:"availability"`
	Notes        *string                 `json:"notes"`
	Exercises    *[]WorkoutExerciseInput `json:"exercises"`
}

func validateWorkout(w models.Workout) error {
	v := &ValidationError{}
	if len(w.Name) > 100 {
		v.Add("name", "máximo de 100 caracteres")
	}
	if !models.IsObjectiveValid(w.Objective) {
		v.Add("objective", "objetivo inválido")
	}
	if !models.IsAvailabilityValid(w.Availability) {
		v.Add("availability", "disponibilidade inválida")
	}
	return v.Err()
}

func validateEntries(entries []WorkoutExerciseInput) error {
	v := &ValidationError{}
	for i, e := range entries {
		switch {
		case e.Exercise <= 0:
			v.Add("exercises", fmt.Sprintf("item %d: exercise é obrigatório", i))
		case e.Sets <= 0:
			v.Add("exercises", fmt.Sprintf("item %d: sets deve ser positivo", i))
		case e.Reps <= 0:
			v.Add("exercises", fmt.Sprintf("item %d: reps deve ser positivo", i))
		case e.Load != nil && *e.Load < 0:
			v.Add("exercises", fmt.Sprintf("item %d: load não pode ser negativo", i))
		case e.Rest != nil && *e.Rest < 0:
			v.Add("exercises", fmt.Sprintf("item %d: rest não pode ser negativo", i))
		}
	}
	return v.Err()
}

// insertEntries writes the entries in submitted order. The first missing
// exercise aborts, leaving the caller's transaction to roll back.
func insertEntries(tx *gorm.DB, workoutID int64, entries []WorkoutExerciseInput) ([]models.WorkoutExercise, error) {
	out := make([]models.WorkoutExercise, 0, len(entries))
	for i, e := range entries {
		var count int
		if err := tx.Model(&models.Exercise{}).Where("id = ? AND active = ?", e.Exercise, true).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, NewValidationError("exercises", fmt.Sprintf("exercise %d not found", e.Exercise))
		}

		rest := models.WORKOUT_DEFAULT_REST
		if e.Rest != nil {
			rest = *e.Rest
		}
		row := models.WorkoutExercise{
			WorkoutID:  workoutID,
			ExerciseID: e.Exercise,
			Position:   i,
			Sets:       e.Sets,
			Reps:       e.Reps,
			Load:       e.Load,
			Rest:       rest,
		}
		if err := tx.Create(&row).Error; err != nil {
			return nil, fmt.Errorf("create workout entry: %w", err)
		}
		out = append(out, row)
	}
	return out, nil
}

// checkWorkoutQuota resolves the student's plan and fails when the student
// already holds as many active workouts as the plan allows.
func checkWorkoutQuota(tx *gorm.DB, quotas QuotaTable, studentID int64) error {
	var enrollment models.Enrollment
	err := tx.Where("student_id = ? AND active = ?", studentID, true).First(&enrollment).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return NewValidationError("student", MSG_NO_ACTIVE_ENROLLMENT)
		}
		return err
	}

	var plan models.Plan
	if err := tx.First(&plan, enrollment.PlanID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return NewValidationError("student", MSG_NO_VALID_PLAN)
		}
		return err
	}
	if strings.TrimSpace(plan.Slug) == "" || strings.TrimSpace(plan.Title) == "" {
		return NewValidationError("student", MSG_NO_VALID_PLAN)
	}

	limit, unlimited := quotas.Limit(plan.Slug)
	if unlimited {
		return nil
	}

	var count int
	err = tx.Model(&models.Workout{}).
		Where("student_id = ? AND active = ?", studentID, true).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("count workouts: %w", err)
	}
	if count >= limit {
		return NewValidationError("student",
			fmt.Sprintf("workout limit reached for plan %s (max %d)", plan.Title, limit))
	}
	return nil
}

// CreateWorkout enforces the plan quota, then writes the workout and all of
// its entries in one transaction.
func CreateWorkout(db *gorm.DB, quotas QuotaTable, in WorkoutInput) (models.Workout, error) {
	workout := models.Workout{
		Name:         strings.TrimSpace(in.Name),
		StudentID:    in.Student,
		Objective:    strings.TrimSpace(in.Objective),
		Availability: strings.TrimSpace(in.Availability),
		Notes:        in.Notes,
	}
	if workout.Name == "" {
		workout.Name = models.WORKOUT_DEFAULT_NAME
	}
	if err := validateWorkout(workout); err != nil {
		return workout, err
	}
	if err := validateEntries(in.Exercises); err != nil {
		return workout, err
	}

	err := dbpkg.Transaction(db, func(tx *gorm.DB) error {
		student, err := lockStudent(tx, in.Student)
		if err != nil {
			return err
		}
		if err := checkWorkoutQuota(tx, quotas, in.Student); err != nil {
			return err
		}

		if err := tx.Create(&workout).Error; err != nil {
			return fmt.Errorf("create workout: %w", err)
		}
		entries, err := insertEntries(tx, workout.ID, in.Exercises)
		if err != nil {
			return err
		}
		workout.Exercises = entries
		workout.Weight, workout.Height = student.Weight, student.Height
		return nil
	})
	if err != nil {
		return models.Workout{}, err
	}
	return workout, nil
}

// UpdateWorkout merges the patch. A supplied entries list replaces the old
// entries in the same transaction; an omitted one leaves them alone.
func UpdateWorkout(db *gorm.DB, id int64, patch WorkoutPatch) (models.Workout, error) {
	if patch.Exercises != nil {
		if err := validateEntries(*patch.Exercises); err != nil {
			return models.Workout{}, err
		}
	}

	var workout models.Workout
	err := dbpkg.Transaction(db, func(tx *gorm.DB) error {
		if err := tx.First(&workout, id).Error; err != nil {
			return notFoundOr(err, gorm.IsRecordNotFoundError(err))
		}

		if patch.Name != nil {
			workout.Name = strings.TrimSpace(*patch.Name)
			if workout.Name == "" {
				workout.Name = models.WORKOUT_DEFAULT_NAME
			}
		}
		if patch.Objective != nil {
			workout.Objective = strings.TrimSpace(*patch.Objective)
		}
		if patch.Availability != nil {
			workout.Availability = strings.TrimSpace(*patch.Availability)
		}
		if patch.Notes != nil {
			workout.Notes = *patch.Notes
		}
		if err := validateWorkout(workout); err != nil {
			return err
		}

		err := tx.Model(&workout).Updates(map[string]any{
			"name":         workout.Name,
			"objective":    workout.Objective,
			"availability": workout.Availability,
			"notes":        workout.Notes,
		}).Error
		if err != nil {
			return fmt.Errorf("update workout: %w", err)
		}

		if patch.Exercises == nil {
			return nil
		}
		if err := tx.Where("workout_id = ?", workout.ID).Delete(&models.WorkoutExercise{}).Error; err != nil {
			return fmt.Errorf("clear workout entries: %w", err)
		}
		_, err = insertEntries(tx, workout.ID, *patch.Exercises)
		return err
	})
	if err != nil {
		return models.Workout{}, err
	}
	return LoadWorkout(db, id)
}

// LoadWorkout returns the workout with its entries in order and the
// student's current weight and height.
func LoadWorkout(db *gorm.DB, id int64) (models.Workout, error) {
	var workout models.Workout
	err := db.Preload("Exercises", func(q *gorm.DB) *gorm.DB {
		return q.Order("position asc, id asc")
	}).First(&workout, id).Error
	if err != nil {
		return workout, notFoundOr(err, gorm.IsRecordNotFoundError(err))
	}

	var student models.Student
	if err := db.Select("weight, height").First(&student, workout.StudentID).Error; err == nil {
		workout.Weight, workout.Height = student.Weight, student.Height
	}
	if workout.Exercises == nil {
		workout.Exercises = []models.WorkoutExercise{}
	}
	return workout, nil
}

func DeleteWorkout(db *gorm.DB, id int64) error {
	return dbpkg.Transaction(db, func(tx *gorm.DB) error {
		var workout models.Workout
		if err := tx.First(&workout, id).Error; err != nil {
			return notFoundOr(err, gorm.IsRecordNotFoundError(err))
		}
		if err := tx.Where("workout_id = ?", id).Delete(&models.WorkoutExercise{}).Error; err != nil {
			return err
		}
		return tx.Delete(&workout).Error
	})
}
