package models

// Currency is one of the fixed set of currencies a project can be denominated in.
// Amounts are always stored EUR-canonical; the project currency only drives display.
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyCFA Currency = "CFA"
)

// DisplayCode returns the ISO 4217 code used at display boundaries.
// CFA is stored under its colloquial name but rendered as XOF.
func (c Currency) DisplayCode() string {
	if c == CurrencyCFA {
		return "XOF"
	}
	return string(c)
}

// Project represents a shared expense/budget project.
type Project struct {
	Base
	Name        string   `gorm:"not null" json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Color       string   `json:"color"`
	Currency    Currency `gorm:"not null;default:'EUR'" json:"currency"`
	CreatedBy   string   `gorm:"type:uuid;not null;index" json:"created_by"`

	// Relationships
	Owner        User          `gorm:"foreignKey:CreatedBy" json:"-"`
	Members      []ProjectUser `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
	Categories   []Category    `gorm:"foreignKey:ProjectID" json:"categories,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:ProjectID" json:"transactions,omitempty"`
}
