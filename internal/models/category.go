package models

// MaxCategoryDepth caps the category hierarchy at three levels.
const MaxCategoryDepth = 3

// Category represents a node in a project's category forest.
// Level is 1 for roots and parent.Level+1 otherwise; the parent must belong
// to the same project.
type Category struct {
	Base
	ProjectID string  `gorm:"type:uuid;not null;index" json:"project_id"`
	Name      string  `gorm:"not null" json:"name"`
	ParentID  *string `gorm:"type:uuid" json:"parent_id,omitempty"`
	Level     int     `gorm:"not null;default:1" json:"level"`

	// Relationships
	Parent       *Category     `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children     []Category    `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
}
