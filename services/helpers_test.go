package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	dbpkg "dumbbell/db"
	"dumbbell/models"

	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/require"
)

const testCost = 4

var seq int64

func ptr[T any](v T) *T { return &v }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := dbpkg.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func seedAddress(t *testing.T, db *gorm.DB) models.Address {
	t.Helper()
	addr, _, err := FindOrCreateAddress(db, AddressInput{
		PostalCode:   "01310-100",
		Street:       "Avenida Paulista",
		Number:       "1000",
		Neighborhood: "Bela Vista",
		City:         "São Paulo",
		State:        "SP",
	})
	require.NoError(t, err)
	return addr
}

func seedStudent(t *testing.T, db *gorm.DB) SignUpResult {
	t.Helper()
	n := atomic.AddInt64(&seq, 1)
	addr := seedAddress(t, db)
	res, err := SignUp(db, SignUpInput{
		Name:      fmt.Sprintf("Aluno %d", n),
		CPF:       fmt.Sprintf("123.456.%03d-%02d", n%1000, n%100),
		Email:     fmt.Sprintf("aluno%d@dumbbell.com", n),
		Sex:       "F",
		BirthDate: "1995-04-10",
		Address:   addr.ID,
		Weight:    62.5,
		Height:    1.68,
		Password:  "segredo123",
	}, testCost)
	require.NoError(t, err)
	return res
}

func seedPlan(t *testing.T, db *gorm.DB, title string) models.Plan {
	t.Helper()
	plan, err := CreatePlan(db, PlanInput{Title: ptr(title), PriceCents: ptr(int64(9900))})
	require.NoError(t, err)
	return plan
}

func seedExercise(t *testing.T, db *gorm.DB, name string) models.Exercise {
	t.Helper()
	ex, err := CreateExercise(db, ExerciseInput{
		Name:        ptr(name),
		Category:    ptr(models.EXERCISE_CATEGORY_BODYBUILDING),
		MuscleGroup: ptr("Peito"),
	})
	require.NoError(t, err)
	return ex
}

func seedCard(t *testing.T, db *gorm.DB, studentID int64) models.Card {
	t.Helper()
	card, err := CreateCard(db, CardInput{
		Student:    studentID,
		Number:     "4111111111111111",
		HolderName: "ALUNO TESTE",
		Expiry:     "2099/12",
		CVV:        "123",
		Brand:      models.CARD_BRAND_VISA,
	})
	require.NoError(t, err)
	return card
}

func enroll(t *testing.T, db *gorm.DB, studentID, planID int64) models.Enrollment {
	t.Helper()
	e, err := CreateEnrollment(db, EnrollmentInput{
		Plan:          planID,
		Student:       studentID,
		PaymentMethod: models.PAYMENT_METHOD_PIX,
	})
	require.NoError(t, err)
	return e
}

func requireValidation(t *testing.T, err error, field, msg string) {
	t.Helper()
	require.Error(t, err)
	v, ok := IsValidation(err)
	require.True(t, ok, "expected validation error, got %v", err)
	require.Equal(t, msg, v.Fields[field], "fields: %v", v.Fields)
}
