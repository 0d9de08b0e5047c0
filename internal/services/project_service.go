package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "expenshare/internal/errors"
	"expenshare/internal/models"
)

// projectService handles project and membership business logic.
type projectService struct {
	db *gorm.DB
}

// NewProjectService creates a new ProjectServicer.
func NewProjectService(db *gorm.DB) ProjectServicer {
	return &projectService{db: db}
}

// CreateProject creates a project and its owner membership atomically.
func (s *projectService) CreateProject(userID, name, description, icon, color string, currency models.Currency) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "project name is required")
	}
	switch currency {
	case models.CurrencyEUR, models.CurrencyUSD, models.CurrencyCFA:
	case "":
		currency = models.CurrencyEUR
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported currency")
	}

	var count int64
	if err := s.db.Model(&models.Project{}).
		Where("created_by = ? AND name = ?", userID, name).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateProject
	}

	project := &models.Project{
		Name:        name,
		Description: description,
		Icon:        icon,
		Color:       color,
		Currency:    currency,
		CreatedBy:   userID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		owner := &models.ProjectUser{
			ProjectID: project.ID,
			UserID:    userID,
			Role:      models.RoleOwner,
		}
		return tx.Create(owner).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return project, nil
}

// GetUserProjects returns every project the user owns or is a member of.
func (s *projectService) GetUserProjects(userID string) ([]models.Project, error) {
	memberOf := s.db.Model(&models.ProjectUser{}).
		Select("project_id").
		Where("user_id = ?", userID)

	var projects []models.Project
	if err := s.db.
		Where("created_by = ? OR id IN (?)", userID, memberOf).
		Order("created_at").
		Find(&projects).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return projects, nil
}

// GetProjectByID returns a project the user is authorized to read.
func (s *projectService) GetProjectByID(userID, projectID string) (*models.Project, error) {
	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}
	if err := s.Authorize(userID, projectID, false); err != nil {
		return nil, err
	}
	return project, nil
}

// ListAllProjects returns every project in the system, unscoped. Reserved for
// the admin management views; handlers gate it behind the admin middleware.
func (s *projectService) ListAllProjects() ([]models.Project, error) {
	var projects []models.Project
	if err := s.db.Order("created_at").Find(&projects).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return projects, nil
}

// UpdateProject updates project fields. Owner only.
func (s *projectService) UpdateProject(userID, projectID, name, description, icon, color string, currency *models.Currency) (*models.Project, error) {
	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}
	if project.CreatedBy != userID {
		return nil, apperrors.ErrForbidden
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = strings.TrimSpace(name)
	}
	if description != "" {
		updates["description"] = description
	}
	if icon != "" {
		updates["icon"] = icon
	}
	if color != "" {
		updates["color"] = color
	}
	if currency != nil {
		switch *currency {
		case models.CurrencyEUR, models.CurrencyUSD, models.CurrencyCFA:
			updates["currency"] = *currency
		default:
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported currency")
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(project).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return project, nil
}

// DeleteProject removes a project and all of its data: notes, transactions,
// categories, and memberships, in one database transaction. Owner only.
func (s *projectService) DeleteProject(userID, projectID string) error {
	project, err := s.findProject(projectID)
	if err != nil {
		return err
	}
	if project.CreatedBy != userID {
		return apperrors.ErrForbidden
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		txIDs := tx.Model(&models.Transaction{}).
			Select("id").
			Where("project_id = ?", projectID)
		if err := tx.Where("transaction_id IN (?)", txIDs).Delete(&models.Note{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.Category{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectUser{}).Error; err != nil {
			return err
		}
		return tx.Delete(project).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// AddMember adds a user to a project. Owner only; the owner role itself is
// assigned at creation and never through this path.
func (s *projectService) AddMember(ownerID, projectID, userID string, role models.MemberRole) (*models.ProjectUser, error) {
	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}
	if project.CreatedBy != ownerID {
		return nil, apperrors.ErrForbidden
	}

	switch role {
	case models.RoleMember, models.RoleViewer:
	case "":
		role = models.RoleMember
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "role must be member or viewer")
	}

	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var count int64
	if err := s.db.Model(&models.ProjectUser{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrMemberExists
	}

	member := &models.ProjectUser{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}
	if err := s.db.Create(member).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return member, nil
}

// RemoveMember removes a member from a project. The owner row is non-removable.
func (s *projectService) RemoveMember(ownerID, projectID, userID string) error {
	member, err := s.findMember(ownerID, projectID, userID)
	if err != nil {
		return err
	}
	if member.Role == models.RoleOwner {
		return apperrors.ErrOwnerImmutable
	}

	if err := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectUser{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// UpdateMemberRole changes a member's role. The owner role is immutable in
// both directions.
func (s *projectService) UpdateMemberRole(ownerID, projectID, userID string, role models.MemberRole) (*models.ProjectUser, error) {
	member, err := s.findMember(ownerID, projectID, userID)
	if err != nil {
		return nil, err
	}
	if member.Role == models.RoleOwner {
		return nil, apperrors.ErrOwnerImmutable
	}
	switch role {
	case models.RoleMember, models.RoleViewer:
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "role must be member or viewer")
	}

	if err := s.db.Model(&models.ProjectUser{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Update("role", role).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	member.Role = role
	return member, nil
}

// ListMembers returns a project's memberships with users preloaded. Any
// member may view the roster.
func (s *projectService) ListMembers(userID, projectID string) ([]models.ProjectUser, error) {
	if err := s.Authorize(userID, projectID, false); err != nil {
		return nil, err
	}

	var members []models.ProjectUser
	if err := s.db.Preload("User").
		Where("project_id = ?", projectID).
		Order("added_at").
		Find(&members).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return members, nil
}

// Authorize checks the caller's access to a project. Owners and members may
// write; viewers may only read. Denial is always the typed FORBIDDEN error.
func (s *projectService) Authorize(userID, projectID string, write bool) error {
	project, err := s.findProject(projectID)
	if err != nil {
		return err
	}
	if project.CreatedBy == userID {
		return nil
	}

	var member models.ProjectUser
	if err := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrForbidden
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if write && member.Role == models.RoleViewer {
		return apperrors.ErrForbidden
	}
	return nil
}

func (s *projectService) findProject(projectID string) (*models.Project, error) {
	var project models.Project
	if err := s.db.Where("id = ?", projectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &project, nil
}

// findMember loads a membership row after verifying the caller owns the project.
func (s *projectService) findMember(ownerID, projectID, userID string) (*models.ProjectUser, error) {
	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}
	if project.CreatedBy != ownerID {
		return nil, apperrors.ErrForbidden
	}

	var member models.ProjectUser
	if err := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMemberNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &member, nil
}
