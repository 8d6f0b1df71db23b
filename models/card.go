package models

/************************************************
/**** MARK: CARD BRANDS ****/
/************************************************/
const CARD_BRAND_MASTERCARD = "Mastercard"
const CARD_BRAND_VISA = "Visa"
const CARD_BRAND_ELO = "Elo"

// Card belongs to exactly one student. Number, holder and CVV are write-only;
// responses only expose the last four digits.
type Card struct {
	Base
	StudentID  int64  `gorm:"not null;index" json:"student"`
	Number     string `gorm:"not null;size:16" json:"-"`
	LastDigits string `gorm:"not null;size:4" json:"last_digits"`
	HolderName string `gorm:"not null" json:"-"`
	Expiry     string `gorm:"not null;size:7" json:"expiry"` // AAAA/MM
	CVV        string `gorm:"column:cvv;not null;size:3" json:"-"`
	Brand      string `gorm:"not null;size:10" json:"brand"`
}

func (Card) TableName() string { return "cards" }

func IsCardBrandValid(brand string) bool {
	switch brand {
	case CARD_BRAND_MASTERCARD, CARD_BRAND_VISA, CARD_BRAND_ELO:
		return true
	}
	return false
}
