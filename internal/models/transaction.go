package models

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeBudget  TransactionType = "budget"
)

// Transaction represents a single expense or budget entry. Amount is stored
// EUR-canonical regardless of the project's display currency; conversion
// happens at presentation time. Transactions are immutable once created
// except for deletion.
type Transaction struct {
	Base
	ProjectID   string          `gorm:"type:uuid;not null;index" json:"project_id"`
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID  *string         `gorm:"type:uuid" json:"category_id,omitempty"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Title       string          `gorm:"not null" json:"title"`
	Description string          `json:"description"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Author   User      `gorm:"foreignKey:UserID" json:"-"`
	Notes    []Note    `gorm:"foreignKey:TransactionID" json:"notes,omitempty"`
}
