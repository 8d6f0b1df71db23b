package models

/************************************************
/**** MARK: WORKOUT OBJECTIVES ****/
/************************************************/
const WORKOUT_OBJECTIVE_HYPERTROPHY = "Hipertrofia"
const WORKOUT_OBJECTIVE_STRENGTH = "Força"
const WORKOUT_OBJECTIVE_ENDURANCE = "Resistência"
const WORKOUT_OBJECTIVE_WEIGHT_LOSS = "Emagrecimento"
const WORKOUT_OBJECTIVE_FLEXIBILITY = "Flexibilidade"

/************************************************
/**** MARK: WORKOUT AVAILABILITY ****/
/************************************************/
const WORKOUT_AVAILABILITY_DAILY = "Diário"
const WORKOUT_AVAILABILITY_ALTERNATE = "Alternado"
const WORKOUT_AVAILABILITY_WEEKLY = "Semanal"

const WORKOUT_DEFAULT_NAME = "Nova Rotina"
const WORKOUT_DEFAULT_REST = 90

// Workout (treino) belongs to one student and owns its ordered entries.
type Workout struct {
	Base
	Name         string `gorm:"not null;size:100" json:"name"`
	StudentID    int64  `gorm:"not null;index" json:"student"`
	Objective    string `gorm:"not null;size:20" json:"objective"`
	Availability string `gorm:"size:20" json:"availability"`
	Notes        string `gorm:"type:text" json:"notes"`

	Exercises []WorkoutExercise `gorm:"foreignkey:WorkoutID;association_autoupdate:false;association_autocreate:false" json:"exercises"`

	// Copied from the student when rendering.
	Weight float64 `gorm:"-" json:"weight"`
	Height float64 `gorm:"-" json:"height"`
}

func (Workout) TableName() string { return "workouts" }

// WorkoutExercise is one line of a workout: which exercise, in which order
// and with which volume.
type WorkoutExercise struct {
	Base
	WorkoutID  int64    `gorm:"not null;index" json:"-"`
	ExerciseID int64    `gorm:"not null;index" json:"exercise"`
	Position   int      `gorm:"not null;default:0" json:"position"`
	Sets       int      `gorm:"not null" json:"sets"`
	Reps       int      `gorm:"not null" json:"reps"`
	Load       *float64 `gorm:"type:numeric(5,2)" json:"load"`
	Rest       int      `gorm:"not null" json:"rest"`
}

func (WorkoutExercise) TableName() string { return "workout_exercises" }

func IsObjectiveValid(objective string) bool {
	switch objective {
	case WORKOUT_OBJECTIVE_HYPERTROPHY, WORKOUT_OBJECTIVE_STRENGTH, WORKOUT_OBJECTIVE_ENDURANCE,
		WORKOUT_OBJECTIVE_WEIGHT_LOSS, WORKOUT_OBJECTIVE_FLEXIBILITY:
		return true
	}
	return false
}

func IsAvailabilityValid(availability string) bool {
	switch availability {
	case "", WORKOUT_AVAILABILITY_DAILY, WORKOUT_AVAILABILITY_ALTERNATE, WORKOUT_AVAILABILITY_WEEKLY:
		return true
	}
	return false
}
