package models

/************************************************
/**** MARK: STUDENT SEX ****/
/************************************************/
const STUDENT_SEX_MALE = "M"
const STUDENT_SEX_FEMALE = "F"
const STUDENT_SEX_OTHER = "O"

// Student representa um aluno da academia, ligado 1:1 a um User.
// CPF e e-mail são dados de escrita: nunca voltam nas respostas.
type Student struct {
	Base
	UserID    *int64  `gorm:"unique_index" json:"user_id"`
	Name      string  `gorm:"not null" json:"name"`
	CPF       string  `gorm:"column:cpf;not null;size:14;unique_index" json:"-"`
	Email     string  `gorm:"not null;size:150" json:"-"`
	Sex       string  `gorm:"not null;size:1" json:"sex"`
	BirthDate string  `gorm:"not null;size:10" json:"birth_date"` // AAAA-MM-DD
	AddressID int64   `gorm:"not null;index" json:"address"`
	Weight    float64 `gorm:"type:numeric(5,2)" json:"weight"`
	Height    float64 `gorm:"type:numeric(4,2)" json:"height"`
}

func (Student) TableName() string { return "students" }

func IsSexValid(sex string) bool {
	switch sex {
	case STUDENT_SEX_MALE, STUDENT_SEX_FEMALE, STUDENT_SEX_OTHER:
		return true
	}
	return false
}
