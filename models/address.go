package models

// Address is deduplicated on create: an identical row is reused.
// Complement is never NULL so the composite unique index covers it.
type Address struct {
	Base
	PostalCode   string `gorm:"not null;size:9" json:"postal_code" form:"postal_code"`
	Street       string `gorm:"not null" json:"street" form:"street"`
	Number       string `gorm:"not null;size:20" json:"number" form:"number"`
	Complement   string `gorm:"not null;default:''" json:"complement" form:"complement"`
	Neighborhood string `gorm:"not null" json:"neighborhood" form:"neighborhood"`
	City         string `gorm:"not null" json:"city" form:"city"`
	State        string `gorm:"not null;size:2" json:"state" form:"state"`
}

func (Address) TableName() string { return "addresses" }

// ADDRESS_UNIQUE_COLUMNS is the exact-match key used for dedup.
var ADDRESS_UNIQUE_COLUMNS = []string{
	"postal_code", "street", "number", "complement", "neighborhood", "city", "state",
}

/************************************************
/**** MARK: BRAZILIAN STATES ****/
/************************************************/
var STATES = map[string]string{
	"AC": "Acre", "AL": "Alagoas", "AP": "Amapá", "AM": "Amazonas", "BA": "Bahia",
	"CE": "Ceará", "DF": "Distrito Federal", "ES": "Espírito Santo", "GO": "Goiás",
	"MA": "Maranhão", "MT": "Mato Grosso", "MS": "Mato Grosso do Sul", "MG": "Minas Gerais",
	"PA": "Pará", "PB": "Paraíba", "PR": "Paraná", "PE": "Pernambuco", "PI": "Piauí",
	"RJ": "Rio de Janeiro", "RN": "Rio Grande do Norte", "RS": "Rio Grande do Sul",
	"RO": "Rondônia", "RR": "Roraima", "SC": "Santa Catarina", "SP": "São Paulo",
	"SE": "Sergipe", "TO": "Tocantins",
}
