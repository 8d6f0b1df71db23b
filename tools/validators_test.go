package tools

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateCEP(t *testing.T) {
	assert.NoError(t, ValidateCEP("12345-678"))
	assert.Error(t, ValidateCEP("12345678"))
	assert.Error(t, ValidateCEP("1234-567"))
}

func TestValidateCPF(t *testing.T) {
	assert.NoError(t, ValidateCPF("123.456.789-01"))
	assert.Error(t, ValidateCPF("12345678901"))
}

func TestValidateCardNumberAndCVV(t *testing.T) {
	assert.NoError(t, ValidateCardNumber("1234567890123456"))
	assert.Error(t, ValidateCardNumber("123456789012345"))
	assert.Error(t, ValidateCardNumber("12345678901234567"))
	assert.Error(t, ValidateCardNumber("123456789012345a"))

	assert.NoError(t, ValidateCVV("123"))
	assert.Error(t, ValidateCVV("12"))
	assert.Error(t, ValidateCVV("1234"))
}

func TestValidateCardExpiry(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateCardExpiry("2026/03", now), "current month is still valid")
	assert.NoError(t, ValidateCardExpiry("2030/12", now))
	assert.EqualError(t, ValidateCardExpiry("2026/02", now), "Cartão expirado.")
	assert.EqualError(t, ValidateCardExpiry("2026-12", now), "Formato inválido. Use AAAA/MM.")
	assert.Error(t, ValidateCardExpiry("2026/13", now))
}

func TestValidateStateAndBirthDate(t *testing.T) {
	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateState("SP"))
	assert.NoError(t, ValidateState("rj"))
	assert.Error(t, ValidateState("XX"))

	assert.NoError(t, ValidateBirthDate("1990-05-20", now))
	assert.Error(t, ValidateBirthDate("20/05/1990", now))
	assert.Error(t, ValidateBirthDate("1990-02-30", now))
	assert.Error(t, ValidateBirthDate("2030-01-01", now))
}

func TestValidateEmailAndPassword(t *testing.T) {
	assert.True(t, ValidateEmail("ana@dumbbell.com.br"))
	assert.False(t, ValidateEmail("ana@"))
	assert.Equal(t, "password", CheckPassword("123"))
	assert.Equal(t, "", CheckPassword("123456"))
}
