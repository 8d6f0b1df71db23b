package models

/************************************************
/**** MARK: PAYMENT METHODS ****/
/************************************************/
const PAYMENT_METHOD_CREDIT = "credit"
const PAYMENT_METHOD_PIX = "pix"
const PAYMENT_METHOD_DEBIT = "debit"

// Enrollment (matrícula) links a student to a plan. Deleting it only clears
// Active; at most one active row per student is allowed.
type Enrollment struct {
	Base
	StudentID     int64  `gorm:"not null;index" json:"student"`
	PlanID        int64  `gorm:"not null;index" json:"plan"`
	PaymentMethod string `gorm:"not null;size:10" json:"payment_method"`
	CardID        *int64 `gorm:"index" json:"card"`

	Plan *Plan `gorm:"foreignkey:PlanID;association_autoupdate:false;association_autocreate:false" json:"plan_detail,omitempty"`
}

func (Enrollment) TableName() string { return "enrollments" }

func IsPaymentMethodValid(method string) bool {
	switch method {
	case PAYMENT_METHOD_CREDIT, PAYMENT_METHOD_PIX, PAYMENT_METHOD_DEBIT:
		return true
	}
	return false
}

// RequiresCard reports whether the method is paid with a card.
func RequiresCard(method string) bool {
	return method == PAYMENT_METHOD_CREDIT || method == PAYMENT_METHOD_DEBIT
}
