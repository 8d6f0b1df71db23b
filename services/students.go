package services

import (
	"fmt"
	"strings"
	"time"

	dbpkg "dumbbell/db"
	"dumbbell/models"
	"dumbbell/tools"

	"github.com/jinzhu/gorm"
)

// SignUpInput is the student registration payload. Email doubles as the
// login username.
type SignUpInput struct {
	Name      string  `json:"name" form:"name"`
	CPF       string  `json:"cpf" form:"cpf"`
	Email     string  `json:"email" form:"email"`
	Sex       string  `json:"sex" form:"sex"`
	BirthDate string  `json:"birth_date" form:"birth_date"`
	Address   int64   `json:"address" form:"address"`
	Weight    float64 `json:"weight" form:"weight"`
	Height    float64 `json:"height" form:"height"`
	Password  string  `json:"password" form:"password"`
}

type SignUpResult struct {
	Student models.Student
	User    models.User
	Token   string
}

// StudentPatch holds the fields an update may change. Nil means untouched.
type StudentPatch struct {
	Name      *string  `json:"name"`
	CPF       *string  `json:"cpf"`
	Email     *string  `json:"email"`
	Sex       *string  `json:"sex"`
	BirthDate *string  `json:"birth_date"`
	Address   *int64   `json:"address"`
	Weight    *float64 `json:"weight"`
	Height    *float64 `json:"height"`
	Password  *string  `json:"password"`
}

func validateStudent(tx *gorm.DB, s models.Student, v *ValidationError) {
	if strings.TrimSpace(s.Name) == "" {
		v.Add("name", "campo obrigatório")
	}
	if err := tools.ValidateCPF(s.CPF); err != nil {
		v.Add("cpf", err.Error())
	}
	if !tools.ValidateEmail(s.Email) {
		v.Add("email", "E-mail inválido!")
	}
	if !models.IsSexValid(s.Sex) {
		v.Add("sex", "valor inválido, use M, F ou O")
	}
	if err := tools.ValidateBirthDate(s.BirthDate, time.Now()); err != nil {
		v.Add("birth_date", err.Error())
	}
	if s.Weight <= 0 || s.Weight >= 1000 {
		v.Add("weight", "peso inválido")
	}
	if s.Height <= 0 || s.Height >= 10 {
		v.Add("height", "altura inválida")
	}

	if s.AddressID <= 0 {
		v.Add("address", "campo obrigatório")
		return
	}
	var count int
	if err := tx.Model(&models.Address{}).Where("id = ?", s.AddressID).Count(&count).Error; err != nil || count == 0 {
		v.Add("address", "endereço não encontrado")
	}
}

// SignUp creates the principal, the student and its API token together.
func SignUp(db *gorm.DB, in SignUpInput, bcryptCost int) (SignUpResult, error) {
	var res SignUpResult

	email := strings.ToLower(strings.TrimSpace(in.Email))
	student := models.Student{
		Name:      strings.TrimSpace(in.Name),
		CPF:       strings.TrimSpace(in.CPF),
		Email:     email,
		Sex:       strings.ToUpper(strings.TrimSpace(in.Sex)),
		BirthDate: strings.TrimSpace(in.BirthDate),
		AddressID: in.Address,
		Weight:    in.Weight,
		Height:    in.Height,
	}

	v := &ValidationError{}
	validateStudent(db, student, v)
	if tools.CheckPassword(in.Password) != "" {
		v.Add("password", "senha deve ter ao menos 6 caracteres")
	}
	if err := v.Err(); err != nil {
		return res, err
	}

	hashed, err := tools.HashPassword(in.Password, bcryptCost)
	if err != nil {
		return res, err
	}

	err = dbpkg.Transaction(db, func(tx *gorm.DB) error {
		user := models.User{
			Username:  email,
			Email:     email,
			Password:  hashed,
			FirstName: student.Name,
			IsActive:  true,
		}
		if err := tx.Create(&user).Error; err != nil {
			if dbpkg.IsUniqueViolation(err) {
				return NewValidationError("email", "Usuário já existe")
			}
			return fmt.Errorf("create user: %w", err)
		}

		student.UserID = &user.ID
		if err := tx.Create(&student).Error; err != nil {
			if dbpkg.IsUniqueViolation(err) {
				return NewValidationError("cpf", "CPF já cadastrado")
			}
			return fmt.Errorf("create student: %w", err)
		}

		token, err := IssueToken(tx, user.ID)
		if err != nil {
			return err
		}

		res = SignUpResult{Student: student, User: user, Token: token.Key}
		return nil
	})
	return res, err
}

// StudentForUser returns the student profile owned by a principal.
func StudentForUser(db *gorm.DB, userID int64) (models.Student, error) {
	var student models.Student
	err := db.Where("user_id = ?", userID).First(&student).Error
	if err != nil {
		return student, notFoundOr(err, gorm.IsRecordNotFoundError(err))
	}
	return student, nil
}

// UpdateStudent merges patch onto the stored student. E-mail and password
// changes are mirrored on the principal.
func UpdateStudent(db *gorm.DB, id int64, patch StudentPatch, bcryptCost int) (models.Student, error) {
	var student models.Student
	err := dbpkg.Transaction(db, func(tx *gorm.DB) error {
		if err := tx.First(&student, id).Error; err != nil {
			return notFoundOr(err, gorm.IsRecordNotFoundError(err))
		}

		if patch.Name != nil {
			student.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.CPF != nil {
			student.CPF = strings.TrimSpace(*patch.CPF)
		}
		if patch.Email != nil {
			student.Email = strings.ToLower(strings.TrimSpace(*patch.Email))
		}
		if patch.Sex != nil {
			student.Sex = strings.ToUpper(strings.TrimSpace(*patch.Sex))
		}
		if patch.BirthDate != nil {
			student.BirthDate = strings.TrimSpace(*patch.BirthDate)
		}
		if patch.Address != nil {
			student.AddressID = *patch.Address
		}
		if patch.Weight != nil {
			student.Weight = *patch.Weight
		}
		if patch.Height != nil {
			student.Height = *patch.Height
		}

		v := &ValidationError{}
		validateStudent(tx, student, v)
		if patch.Password != nil && tools.CheckPassword(*patch.Password) != "" {
			v.Add("password", "senha deve ter ao menos 6 caracteres")
		}
		if err := v.Err(); err != nil {
			return err
		}

		if err := tx.Save(&student).Error; err != nil {
			if dbpkg.IsUniqueViolation(err) {
				return NewValidationError("cpf", "CPF já cadastrado")
			}
			return fmt.Errorf("update student: %w", err)
		}

		if student.UserID == nil {
			return nil
		}
		userFields := map[string]any{"first_name": student.Name}
		if patch.Email != nil {
			userFields["username"] = student.Email
			userFields["email"] = student.Email
		}
		if patch.Password != nil {
			hashed, err := tools.HashPassword(*patch.Password, bcryptCost)
			if err != nil {
				return err
			}
			userFields["password"] = hashed
		}
		err := tx.Model(&models.User{}).Where("id = ?", *student.UserID).Updates(userFields).Error
		if err != nil {
			if dbpkg.IsUniqueViolation(err) {
				return NewValidationError("email", "Usuário já existe")
			}
			return fmt.Errorf("update user: %w", err)
		}
		return nil
	})
	return student, err
}

// DeleteStudent removes the student with everything it owns, its principal
// included.
func DeleteStudent(db *gorm.DB, id int64) error {
	return dbpkg.Transaction(db, func(tx *gorm.DB) error {
		student, err := lockStudent(tx, id)
		if err != nil {
			if _, ok := IsValidation(err); ok {
				return ErrNotFound
			}
			return err
		}

		workoutIDs := tx.Model(&models.Workout{}).Where("student_id = ?", id).Select("id").QueryExpr()
		steps := []*gorm.DB{
			tx.Where("workout_id IN (?)", workoutIDs).Delete(&models.WorkoutExercise{}),
			tx.Where("student_id = ?", id).Delete(&models.Workout{}),
			tx.Where("student_id = ?", id).Delete(&models.Enrollment{}),
			tx.Where("student_id = ?", id).Delete(&models.Card{}),
		}
		for _, step := range steps {
			if step.Error != nil {
				return fmt.Errorf("delete student %d: %w", id, step.Error)
			}
		}

		if err := tx.Delete(&student).Error; err != nil {
			return err
		}
		if student.UserID == nil {
			return nil
		}
		if err := RevokeToken(tx, *student.UserID); err != nil {
			return err
		}
		return tx.Where("id = ?", *student.UserID).Delete(&models.User{}).Error
	})
}
