package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"expenshare/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed PIN and unique name.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithName(t, db, fmt.Sprintf("user%d", nextID()))
}

// CreateTestUserWithName creates a user with the given name. The PIN is
// always "1234".
func CreateTestUserWithName(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash PIN: %v", err)
	}

	user := &models.User{
		Name:    name,
		PINHash: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAdmin creates an admin user and records it as the admin account
// in settings.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	admin := CreateTestUserWithName(t, db, fmt.Sprintf("admin%d", nextID()))
	admin.IsAdmin = true
	if err := db.Save(admin).Error; err != nil {
		t.Fatalf("failed to promote test admin: %v", err)
	}
	setting := &models.Setting{Key: models.SettingAdminUserID, Value: admin.ID}
	if err := db.Save(setting).Error; err != nil {
		t.Fatalf("failed to record admin setting: %v", err)
	}
	return admin
}

// CreateTestProject creates a project owned by the given user, including the
// owner membership row.
func CreateTestProject(t *testing.T, db *gorm.DB, ownerID string) *models.Project {
	t.Helper()

	project := &models.Project{
		Name:      fmt.Sprintf("Test Project %d", nextID()),
		Currency:  models.CurrencyEUR,
		CreatedBy: ownerID,
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("failed to create test project: %v", err)
	}

	membership := &models.ProjectUser{
		ProjectID: project.ID,
		UserID:    ownerID,
		Role:      models.RoleOwner,
	}
	if err := db.Create(membership).Error; err != nil {
		t.Fatalf("failed to create owner membership: %v", err)
	}
	return project
}

// AddTestMember adds a user to a project with the given role.
func AddTestMember(t *testing.T, db *gorm.DB, projectID, userID string, role models.MemberRole) *models.ProjectUser {
	t.Helper()

	membership := &models.ProjectUser{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}
	if err := db.Create(membership).Error; err != nil {
		t.Fatalf("failed to add test member: %v", err)
	}
	return membership
}

// CreateTestCategory creates a root category in the project.
func CreateTestCategory(t *testing.T, db *gorm.DB, projectID string) *models.Category {
	t.Helper()
	return CreateTestCategoryWithParent(t, db, projectID, nil)
}

// CreateTestCategoryWithParent creates a category under the given parent.
// Level is derived from the parent.
func CreateTestCategoryWithParent(t *testing.T, db *gorm.DB, projectID string, parent *models.Category) *models.Category {
	t.Helper()

	level := 1
	var parentID *string
	if parent != nil {
		level = parent.Level + 1
		parentID = &parent.ID
	}

	category := &models.Category{
		ProjectID: projectID,
		Name:      fmt.Sprintf("Test Category %d", nextID()),
		ParentID:  parentID,
		Level:     level,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction of the given type and EUR amount.
func CreateTestTransaction(t *testing.T, db *gorm.DB, projectID, userID string, txType models.TransactionType, amount float64) *models.Transaction {
	t.Helper()
	return CreateTestTransactionInCategory(t, db, projectID, userID, nil, txType, amount)
}

// CreateTestTransactionInCategory creates a transaction attached to a category.
func CreateTestTransactionInCategory(t *testing.T, db *gorm.DB, projectID, userID string, categoryID *string, txType models.TransactionType, amount float64) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		ProjectID:  projectID,
		UserID:     userID,
		CategoryID: categoryID,
		Type:       txType,
		Amount:     amount,
		Title:      fmt.Sprintf("Test Transaction %d", nextID()),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestNote attaches a text note to a transaction.
func CreateTestNote(t *testing.T, db *gorm.DB, transactionID string) *models.Note {
	t.Helper()

	note := &models.Note{
		TransactionID: transactionID,
		ContentType:   models.NoteContentText,
		Content:       fmt.Sprintf("Test note %d", nextID()),
	}
	if err := db.Create(note).Error; err != nil {
		t.Fatalf("failed to create test note: %v", err)
	}
	return note
}
