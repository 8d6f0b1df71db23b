package services

import (
	"fmt"
	"testing"

	"dumbbell/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testQuotas = QuotaTable{"starter": 4, "dumbbell": -1}

func workoutFor(studentID int64, exercises ...int64) WorkoutInput {
	in := WorkoutInput{Student: studentID, Objective: models.WORKOUT_OBJECTIVE_HYPERTROPHY}
	for _, id := range exercises {
		in.Exercises = append(in.Exercises, WorkoutExerciseInput{Exercise: id, Sets: 3, Reps: 12})
	}
	return in
}

func TestQuotaTableLimit(t *testing.T) {
	limit, unlimited := testQuotas.Limit("starter")
	assert.Equal(t, 4, limit)
	assert.False(t, unlimited)

	_, unlimited = testQuotas.Limit("Dumbbell")
	assert.True(t, unlimited)

	limit, unlimited = testQuotas.Limit("gold")
	assert.Equal(t, 0, limit, "unknown plans fail closed")
	assert.False(t, unlimited)
}

func TestCreateWorkoutStarterQuota(t *testing.T) {
	db := newTestDB(t)
	s := seedStudent(t, db)
	enroll(t, db, s.Student.ID, seedPlan(t, db, "Starter").ID)
	supino := seedExercise(t, db, "Supino reto")

	for i := 0; i < 4; i++ {
		_, err := CreateWorkout(db, testQuotas, workoutFor(s.Student.ID, supino.ID))
		require.NoError(t, err, "workout %d", i+1)
	}

	_, err := CreateWorkout(db, testQuotas, workoutFor(s.Student.ID, supino.ID))
	requireValidation(t, err, "student", "workout limit reached for plan Starter (max 4)")

	// deleting one frees a slot
	var w models.Workout
	require.NoError(t, db.Where("student_id = ?", s.Student.ID).First(&w).Error)
	require.NoError(t, DeleteWorkout(db, w.ID))
	_, err = CreateWorkout(db, testQuotas, workoutFor(s.Student.ID, supino.ID))
	assert.NoError(t, err)
}

func TestCreateWorkoutDumbbellIsUnlimited(t *testing.T) {
	db := newTestDB(t)
	s := seedStudent(t, db)
	enroll(t, db, s.Student.ID, seedPlan(t, db, "Dumbbell").ID)

	for i := 0; i < 10; i++ {
		_, err := CreateWorkout(db, testQuotas, workoutFor(s.Student.ID))
		require.NoError(t, err)
	}
}

func TestCreateWorkoutUnknownPlanFailsClosed(t *testing.T) {
	db := newTestDB(t)
	s := seedStudent(t, db)
	enroll(t, db, s.Student.ID, seedPlan(t, db, "Gold").ID)

	_, err := CreateWorkout(db, testQuotas, workoutFor(s.Student.ID))
	requireValidation(t, err, "student", "workout limit reached for plan Gold (max 0)")
}

func TestCreateWorkoutWithoutEnrollment(t *testing.T) {
	db := newTestDB(t)
	s := seedStudent(t, db)

	_, err := CreateWorkout(db, testQuotas, workoutFor(s.Student.ID))
	requireValidation(t, err, "student", MSG_NO_ACTIVE_ENROLLMENT)

	// deactivated enrollments do not count either
	e := enroll(t, db, s.Student.ID, seedPlan(t, db, "Starter").ID)
	require.NoError(t, DeactivateEnrollment(db, e.ID))
	_, err = CreateWorkout(db, testQuotas, workoutFor(s.Student.ID))
	requireValidation(t, err, "student", MSG_NO_ACTIVE_ENROLLMENT)
}

func TestCreateWorkoutPlanGone(t *testing.T) {
	db := newTestDB(t)
	s := seedStudent(t, db)
	plan := seedPlan(t, db, "Starter")
	enroll(t, db, s.Student.ID, plan.ID)

	// the plan row disappears behind the enrollment's back
	require.NoError(t, db.Exec("DELETE FROM plans WHERE id = ?", plan.ID).Error)

	_, err := CreateWorkout(db, testQuotas, workoutFor(s.Student.ID))
	requireValidation(t, err, "student", MSG_NO_VALID_PLAN)
}

func TestCreateWorkoutIsAtomic(t *testing.T) {
	db := newTestDB(t)
	s := seedStudent(t, db)
	enroll(t, db, s.Student.ID, seedPlan(t, db, "Dumbbell").ID)
	supino := seedExercise(t, db, "Supino reto")

	_, err := CreateWorkout(db, testQuotas, workoutFor(s.Student.ID, supino.ID, 4242))
	requireValidation(t, err, "exercises", "exercise 4242 not found")

	var workouts, entries int
	db.Model(&models.Workout{}).Count(&workouts)
	db.Model(&models.WorkoutExercise{}).Count(&entries)
	assert.Zero(t, workouts)
	assert.Zero(t, entries)
}

func TestCreateWorkoutDefaults(t *testing.T) {
	db := newTestDB(t)
	s := seedStudent(t, db)
	enroll(t, db, s.Student.ID, seedPlan(t, db, "Dumbbell").ID)
	a := seedExercise(t, db, "Agachamento")
	b := seedExercise(t, db, "Remada")

	in := workoutFor(s.Student.ID, a.ID, b.ID)
	in.Exercises[1].Rest = ptr(60)
	in.Exercises[1].Load = ptr(32.5)

	w, err := CreateWorkout(db, testQuotas, in)
	require.NoError(t, err)
	assert.Equal(t, models.WORKOUT_DEFAULT_NAME, w.Name)
	assert.Equal(t, s.Student.Weight, w.Weight)
	require.Len(t, w.Exercises, 2)
	assert.Equal(t, models.WORKOUT_DEFAULT_REST, w.Exercises[0].Rest)
	assert.Nil(t, w.Exercises[0].Load)
	assert.Equal(t, 60, w.Exercises[1].Rest)
	assert.Equal(t, 1, w.Exercises[1].Position)

	_, err = CreateWorkout(db, testQuotas, WorkoutInput{Student: s.Student.ID, Objective: "Dormir"})
	requireValidation(t, err, "objective", "objetivo inválido")
}

func TestUpdateWorkoutReplacesEntries(t *testing.T) {
	db := newTestDB(t)
	s := seedStudent(t, db)
	enroll(t, db, s.Student.ID, seedPlan(t, db, "Dumbbell").ID)

	var ids []int64
	for i := 0; i < 3; i++ {
		ids = append(ids, seedExercise(t, db, fmt.Sprintf("Exercício %d", i)).ID)
	}
	w, err := CreateWorkout(db, testQuotas, workoutFor(s.Student.ID, ids...))
	require.NoError(t, err)
	require.Len(t, w.Exercises, 3)
	old := map[int64]bool{}
	for _, e := range w.Exercises {
		old[e.ID] = true
	}

	updated, err := UpdateWorkout(db, w.ID, WorkoutPatch{
		Exercises: &[]WorkoutExerciseInput{
			{Exercise: ids[2], Sets: 4, Reps: 8},
			{Exercise: ids[0], Sets: 5, Reps: 5},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Exercises, 2)
	for _, e := range updated.Exercises {
		assert.False(t, old[e.ID], "entry %d survived the replace", e.ID)
	}
	assert.Equal(t, ids[2], updated.Exercises[0].ExerciseID)
	assert.Equal(t, models.WORKOUT_OBJECTIVE_HYPERTROPHY, updated.Objective, "untouched scalar")

	var stored int
	db.Model(&models.WorkoutExercise{}).Where("workout_id = ?", w.ID).Count(&stored)
	assert.Equal(t, 2, stored)
}

func TestUpdateWorkoutScalarsKeepEntries(t *testing.T) {
	db := newTestDB(t)
	s := seedStudent(t, db)
	enroll(t, db, s.Student.ID, seedPlan(t, db, "Dumbbell").ID)
	ex := seedExercise(t, db, "Leg press")

	w, err := CreateWorkout(db, testQuotas, workoutFor(s.Student.ID, ex.ID))
	require.NoError(t, err)

	updated, err := UpdateWorkout(db, w.ID, WorkoutPatch{
		Name:  ptr("Treino A"),
		Notes: ptr("aquecer antes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Treino A", updated.Name)
	assert.Equal(t, "aquecer antes", updated.Notes)
	require.Len(t, updated.Exercises, 1)
	assert.Equal(t, w.Exercises[0].ID, updated.Exercises[0].ID)

	// a bad replacement leaves the old entries in place
	_, err = UpdateWorkout(db, w.ID, WorkoutPatch{
		Exercises: &[]WorkoutExerciseInput{{Exercise: 999, Sets: 1, Reps: 1}},
	})
	require.Error(t, err)
	reloaded, err := LoadWorkout(db, w.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Exercises, 1)

	// an empty list clears them
	cleared, err := UpdateWorkout(db, w.ID, WorkoutPatch{Exercises: &[]WorkoutExerciseInput{}})
	require.NoError(t, err)
	assert.Empty(t, cleared.Exercises)

	_, err = UpdateWorkout(db, 12345, WorkoutPatch{})
	assert.ErrorIs(t, err, ErrNotFound)
}
