package db

import (
	"errors"
	"testing"

	"dumbbell/models"

	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := Open("sqlite3", ":memory:")
	require.NoError(t, err)
	require.NoError(t, Migrate(database))
	t.Cleanup(func() { database.Close() })
	return database
}

func TestMigrateEnforcesOneActiveEnrollment(t *testing.T) {
	database := openTestDB(t)

	first := models.Enrollment{StudentID: 1, PlanID: 1, PaymentMethod: models.PAYMENT_METHOD_PIX}
	require.NoError(t, database.Create(&first).Error)

	second := models.Enrollment{StudentID: 1, PlanID: 2, PaymentMethod: models.PAYMENT_METHOD_PIX}
	err := database.Create(&second).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	// inactive rows do not count
	require.NoError(t, database.Model(&first).Update("active", false).Error)
	require.NoError(t, database.Create(&models.Enrollment{StudentID: 1, PlanID: 2, PaymentMethod: models.PAYMENT_METHOD_PIX}).Error)
}

func TestMigrateEnforcesAddressUniqueness(t *testing.T) {
	database := openTestDB(t)

	addr := models.Address{PostalCode: "01001-000", Street: "Praça da Sé", Number: "1",
		Neighborhood: "Sé", City: "São Paulo", State: "SP"}
	require.NoError(t, database.Create(&addr).Error)

	dup := addr
	dup.ID = 0
	err := database.Create(&dup).Error
	assert.True(t, IsUniqueViolation(err))
}

func TestTransactionRollsBack(t *testing.T) {
	database := openTestDB(t)

	boom := errors.New("boom")
	err := Transaction(database, func(tx *gorm.DB) error {
		if err := tx.Create(&models.Exercise{Name: "Supino", Category: models.EXERCISE_CATEGORY_BODYBUILDING}).Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int
	database.Model(&models.Exercise{}).Count(&count)
	assert.Equal(t, 0, count)
}

func TestIsUniqueViolationIgnoresOtherErrors(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("x")))
	assert.False(t, SupportsRowLocks(openTestDB(t)))
}
