package services

import (
	"testing"
	"time"

	"dumbbell/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePlanDerivesSlug(t *testing.T) {
	db := newTestDB(t)

	plan, err := CreatePlan(db, PlanInput{
		Title:    ptr("Plano Musculação"),
		Benefits: &[]string{"Acesso livre", "Avaliação física"},
	})
	require.NoError(t, err)
	assert.Equal(t, "plano-musculacao", plan.Slug)
	assert.True(t, plan.Active)

	var stored models.Plan
	require.NoError(t, db.First(&stored, plan.ID).Error)
	assert.Equal(t, models.StringList{"Acesso livre", "Avaliação física"}, stored.Benefits)

	_, err = CreatePlan(db, PlanInput{Title: ptr("Plano   musculação")})
	requireValidation(t, err, "slug", "já existe um plano com este slug")

}

func TestCreateInactivePlan(t *testing.T) {
	db := newTestDB(t)
	s := seedStudent(t, db)

	hidden, err := CreatePlan(db, PlanInput{Title: ptr("Legado"), Active: ptr(false)})
	require.NoError(t, err)
	assert.False(t, hidden.Active)

	var reloaded models.Plan
	require.NoError(t, db.First(&reloaded, hidden.ID).Error)
	assert.False(t, reloaded.Active)

	plans, err := ListPlans(db, true)
	require.NoError(t, err)
	assert.Empty(t, plans)

	_, err = CreateEnrollment(db, EnrollmentInput{
		Plan:          hidden.ID,
		Student:       s.Student.ID,
		PaymentMethod: models.PAYMENT_METHOD_PIX,
	})
	requireValidation(t, err, "plan", MSG_PLAN_NOT_FOUND)
}

func TestRenamingPlanKeepsQuotaTier(t *testing.T) {
	db := newTestDB(t)
	s := seedStudent(t, db)
	plan := seedPlan(t, db, "Starter")
	enroll(t, db, s.Student.ID, plan.ID)

	renamed, err := UpdatePlan(db, plan.ID, PlanInput{Title: ptr("Starter 2026")})
	require.NoError(t, err)
	assert.Equal(t, "starter", renamed.Slug)

	for i := 0; i < 4; i++ {
		_, err := CreateWorkout(db, testQuotas, workoutFor(s.Student.ID))
		require.NoError(t, err)
	}
	_, err = CreateWorkout(db, testQuotas, workoutFor(s.Student.ID))
	requireValidation(t, err, "student", "workout limit reached for plan Starter 2026 (max 4)")
}

func TestDeletePlanRemovesEnrollments(t *testing.T) {
	db := newTestDB(t)
	s := seedStudent(t, db)
	plan := seedPlan(t, db, "Starter")
	e := enroll(t, db, s.Student.ID, plan.ID)

	require.NoError(t, DeletePlan(db, plan.ID))

	var count int
	db.Model(&models.Enrollment{}).Where("id = ?", e.ID).Count(&count)
	assert.Zero(t, count)
	assert.ErrorIs(t, DeletePlan(db, plan.ID), ErrNotFound)

	// the student may enroll again
	enroll(t, db, s.Student.ID, seedPlan(t, db, "Dumbbell").ID)
}

func TestDeleteExerciseKeepsWorkouts(t *testing.T) {
	db := newTestDB(t)
	s := seedStudent(t, db)
	enroll(t, db, s.Student.ID, seedPlan(t, db, "Dumbbell").ID)
	keep := seedExercise(t, db, "Remada")
	drop := seedExercise(t, db, "Crucifixo")

	w, err := CreateWorkout(db, testQuotas, workoutFor(s.Student.ID, keep.ID, drop.ID))
	require.NoError(t, err)

	require.NoError(t, DeleteExercise(db, drop.ID))

	reloaded, err := LoadWorkout(db, w.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Exercises, 1)
	assert.Equal(t, keep.ID, reloaded.Exercises[0].ExerciseID)
}

func TestExerciseValidation(t *testing.T) {
	db := newTestDB(t)

	_, err := CreateExercise(db, ExerciseInput{Name: ptr("Zumba"), Category: ptr("Natação")})
	requireValidation(t, err, "category", "categoria inválida")

	ex, err := CreateExercise(db, ExerciseInput{Name: ptr("Zumba"), Category: ptr(models.EXERCISE_CATEGORY_DANCE)})
	require.NoError(t, err)

	updated, err := UpdateExercise(db, ex.ID, ExerciseInput{Equipment: ptr("Nenhum")})
	require.NoError(t, err)
	assert.Equal(t, "Zumba", updated.Name)
	assert.Equal(t, "Nenhum", updated.Equipment)
}

func TestCardValidation(t *testing.T) {
	db := newTestDB(t)
	s := seedStudent(t, db)

	_, err := CreateCard(db, CardInput{
		Student: s.Student.ID, Number: "4111", HolderName: "", Expiry: "2001/01", CVV: "12", Brand: "Amex",
	})
	v, ok := IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "Número do cartão deve ter 16 dígitos.", v.Fields["number"])
	assert.Equal(t, "Cartão expirado.", v.Fields["expiry"])
	assert.Contains(t, v.Fields, "cvv")
	assert.Contains(t, v.Fields, "brand")
	assert.Contains(t, v.Fields, "holder_name")

	card := seedCard(t, db, s.Student.ID)
	assert.Equal(t, "1111", card.LastDigits)

	updated, err := UpdateCard(db, card.ID, CardPatch{Number: ptr("5555444433332222"), Brand: ptr(models.CARD_BRAND_MASTERCARD)})
	require.NoError(t, err)
	assert.Equal(t, "2222", updated.LastDigits)

	next := time.Now().AddDate(0, 1, 0).Format("2006/01")
	_, err = UpdateCard(db, card.ID, CardPatch{Expiry: &next})
	assert.NoError(t, err)
}

func TestAuthTokens(t *testing.T) {
	db := newTestDB(t)
	res := seedStudent(t, db)

	_, err := Authenticate(db, res.User.Username, "errada")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	token, err := IssueToken(db, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Token, token.Key, "one token per user")

	user, err := UserForToken(db, token.Key, 0)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, user.ID)

	_, err = UserForToken(db, token.Key, time.Nanosecond)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, RevokeToken(db, res.User.ID))
	_, err = UserForToken(db, token.Key, 0)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, db.Model(&res.User).Update("is_active", false).Error)
	_, err = Authenticate(db, res.User.Username, "segredo123")
	assert.ErrorIs(t, err, ErrForbidden)

	admin, err := CreateSuperuser(db, "Admin@Dumbbell.com", "admin123", "Admin", testCost)
	require.NoError(t, err)
	assert.True(t, admin.IsSuperuser)
	assert.Equal(t, "admin@dumbbell.com", admin.Username)
}
