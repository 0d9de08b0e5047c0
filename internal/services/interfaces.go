package services

import (
	"time"

	"expenshare/internal/models"
	"expenshare/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	Register(name, pin string) (*models.User, error)
	CheckName(name string) (bool, error)
	AttemptLogin(name, pin string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	ListUsers() ([]models.User, error)
	EnsureAdmin(name, pin string) (*models.User, error)
	DeleteUser(adminID, targetID string) error
}

// ProjectServicer defines the contract for project and membership logic.
type ProjectServicer interface {
	CreateProject(userID, name, description, icon, color string, currency models.Currency) (*models.Project, error)
	GetUserProjects(userID string) ([]models.Project, error)
	GetProjectByID(userID, projectID string) (*models.Project, error)
	ListAllProjects() ([]models.Project, error)
	UpdateProject(userID, projectID, name, description, icon, color string, currency *models.Currency) (*models.Project, error)
	DeleteProject(userID, projectID string) error

	AddMember(ownerID, projectID, userID string, role models.MemberRole) (*models.ProjectUser, error)
	RemoveMember(ownerID, projectID, userID string) error
	UpdateMemberRole(ownerID, projectID, userID string, role models.MemberRole) (*models.ProjectUser, error)
	ListMembers(userID, projectID string) ([]models.ProjectUser, error)

	// Authorize reports whether userID may read (write=false) or mutate
	// (write=true) the project. Denial is the typed FORBIDDEN error, never a
	// silent empty result.
	Authorize(userID, projectID string, write bool) error
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID, projectID, name string, parentID *string) (*models.Category, error)
	GetProjectCategories(userID, projectID string) ([]models.Category, error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	UpdateCategory(userID, categoryID, name string) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	Type       *models.TransactionType
	CategoryID *string
}

// TransactionServicer defines the contract for transaction and note logic.
type TransactionServicer interface {
	CreateTransaction(userID, projectID string, categoryID *string, transactionType models.TransactionType, amount float64, title, description string) (*models.Transaction, error)
	GetProjectTransactions(userID, projectID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error

	AddNote(userID, transactionID string, contentType models.NoteContentType, content, filePath string) (*models.Note, error)
	GetNotes(userID, transactionID string) ([]models.Note, error)
	DeleteNote(userID, noteID string) error
}

// SettingsServicer defines the contract for the key-value preference store.
type SettingsServicer interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error

	UserCurrency(userID string) (models.Currency, error)
	SetUserCurrency(userID string, currency models.Currency) error
	SetUserRates(userID string, eurToCFA, eurToUSD *float64) error
	SetProjectRates(projectID string, eurToCFA, eurToUSD *float64) error

	// ResolveRates resolves the exchange rate pair for a project/user pair:
	// project-level settings win, then user-level, then the defaults.
	// Either ID may be empty to skip that level.
	ResolveRates(projectID, userID string) (eurToCFA, eurToUSD float64, err error)

	AdminUserID() (string, error)
	SetAdminUserID(userID string) error
}
