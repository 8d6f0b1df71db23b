package tools

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"dumbbell/models"
)

var (
	emailRe  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	cepRe    = regexp.MustCompile(`^\d{5}-\d{3}$`)
	cpfRe    = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
	digitsRe = regexp.MustCompile(`^\d+$`)
	expiryRe = regexp.MustCompile(`^(\d{4})/(0[1-9]|1[0-2])$`)
	dateRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

// CheckPassword returns the offending field name, or "" when the password is acceptable.
func CheckPassword(password string) string {
	if len(password) < 6 {
		return "password"
	}
	return ""
}

func ValidateCEP(value string) error {
	if !cepRe.MatchString(value) {
		return errors.New("CEP deve estar no formato 99999-999")
	}
	return nil
}

func ValidateCPF(value string) error {
	if !cpfRe.MatchString(value) {
		return errors.New("CPF deve estar no formato 999.999.999-99")
	}
	return nil
}

func ValidateCardNumber(value string) error {
	if len(value) != 16 || !digitsRe.MatchString(value) {
		return errors.New("Número do cartão deve ter 16 dígitos.")
	}
	return nil
}

func ValidateCVV(value string) error {
	if len(value) != 3 || !digitsRe.MatchString(value) {
		return errors.New("CVV deve ter 3 dígitos.")
	}
	return nil
}

// ValidateCardExpiry checks the AAAA/MM format and that the month is not
// before the current one.
func ValidateCardExpiry(value string, now time.Time) error {
	m := expiryRe.FindStringSubmatch(value)
	if m == nil {
		return errors.New("Formato inválido. Use AAAA/MM.")
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])

	expiry := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if expiry.Before(current) {
		return errors.New("Cartão expirado.")
	}
	return nil
}

func ValidateState(value string) error {
	if _, ok := models.STATES[strings.ToUpper(value)]; !ok {
		return errors.New("UF inválida")
	}
	return nil
}

// ValidateBirthDate accepts AAAA-MM-DD dates that are not in the future.
func ValidateBirthDate(value string, now time.Time) error {
	if !dateRe.MatchString(value) {
		return errors.New("Data deve estar no formato AAAA-MM-DD")
	}
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return errors.New("Data inválida")
	}
	if d.After(now) {
		return errors.New("Data de nascimento no futuro")
	}
	return nil
}
