package models

// Plan is a subscription tier. Slug is the stable key the workout quota
// table is looked up by, so renaming Title does not change the tier.
type Plan struct {
	Base
	Title       string     `gorm:"not null" json:"title" form:"title"`
	Slug        string     `gorm:"not null;unique_index;size:64" json:"slug" form:"slug"`
	PriceCents  int64      `gorm:"not null;default:0" json:"price_cents" form:"price_cents"`
	Description string     `gorm:"type:text" json:"description" form:"description"`
	Benefits    StringList `gorm:"type:text" json:"benefits"`

	Modalities []Modality `gorm:"-" json:"modalities"`
}

func (Plan) TableName() string { return "plans" }
