package models

// User represents an account holder identified by a display name and a PIN.
// Exactly one user is the admin; the bootstrap routine enforces this.
type User struct {
	Base
	Name    string `gorm:"not null;uniqueIndex" json:"name"`
	PINHash string `gorm:"not null" json:"-"`
	IsAdmin bool   `gorm:"default:false" json:"is_admin"`

	// Relationships
	Projects     []Project     `gorm:"foreignKey:CreatedBy" json:"projects,omitempty"`
	Memberships  []ProjectUser `gorm:"foreignKey:UserID" json:"memberships,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
}
