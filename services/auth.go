package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	dbpkg "dumbbell/db"
	"dumbbell/models"
	"dumbbell/tools"

	"github.com/jinzhu/gorm"
)

var ErrInvalidCredentials = errors.New("usuário ou senha inválidos")

// Authenticate checks username (or e-mail) and password and stamps last_login.
func Authenticate(db *gorm.DB, username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	var user models.User
	if username == "" || password == "" {
		return user, ErrInvalidCredentials
	}

	err := db.Where("username = ? OR email = ?", username, username).First(&user).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return user, ErrInvalidCredentials
		}
		return user, err
	}
	if !tools.CheckPasswordHash(user.Password, password) {
		return models.User{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return models.User{}, ErrForbidden
	}

	now := time.Now()
	if err := db.Model(&user).UpdateColumn("last_login", &now).Error; err != nil {
		return user, fmt.Errorf("update last_login: %w", err)
	}
	return user, nil
}

// IssueToken returns the user's API token, creating it on first use.
func IssueToken(db *gorm.DB, userID int64) (models.AuthToken, error) {
	var token models.AuthToken
	err := db.Where("user_id = ?", userID).First(&token).Error
	if err == nil {
		return token, nil
	}
	if !gorm.IsRecordNotFoundError(err) {
		return token, err
	}

	token = models.AuthToken{Key: tools.NewTokenKey(), UserID: userID}
	if err := db.Create(&token).Error; err != nil {
		return token, fmt.Errorf("create token: %w", err)
	}
	return token, nil
}

func RevokeToken(db *gorm.DB, userID int64) error {
	return db.Where("user_id = ?", userID).Delete(&models.AuthToken{}).Error
}

// UserForToken resolves an API token. ttl <= 0 means tokens never expire.
func UserForToken(db *gorm.DB, key string, ttl time.Duration) (models.User, error) {
	var user models.User
	var token models.AuthToken
	if err := db.Where("token_key = ?", key).First(&token).Error; err != nil {
		return user, notFoundOr(err, gorm.IsRecordNotFoundError(err))
	}
	if token.IsExpired(time.Now(), ttl) {
		return user, ErrNotFound
	}
	if err := db.First(&user, token.UserID).Error; err != nil {
		return user, notFoundOr(err, gorm.IsRecordNotFoundError(err))
	}
	return user, nil
}

// CreateSuperuser provisions an admin principal without a student profile.
func CreateSuperuser(db *gorm.DB, email, password, name string, bcryptCost int) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	v := &ValidationError{}
	if !tools.ValidateEmail(email) {
		v.Add("email", "E-mail inválido!")
	}
	if tools.CheckPassword(password) != "" {
		v.Add("password", "senha deve ter ao menos 6 caracteres")
	}
	if err := v.Err(); err != nil {
		return models.User{}, err
	}

	hashed, err := tools.HashPassword(password, bcryptCost)
	if err != nil {
		return models.User{}, err
	}
	user := models.User{
		Username:    email,
		Email:       email,
		Password:    hashed,
		FirstName:   name,
		IsSuperuser: true,
		IsActive:    true,
	}
	if err := db.Create(&user).Error; err != nil {
		if dbpkg.IsUniqueViolation(err) {
			return user, NewValidationError("email", "Usuário já existe")
		}
		return user, err
	}
	return user, nil
}
