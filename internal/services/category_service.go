package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "expenshare/internal/errors"
	"expenshare/internal/models"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db       *gorm.DB
	projects ProjectServicer
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB, projects ProjectServicer) CategoryServicer {
	return &categoryService{db: db, projects: projects}
}

// CreateCategory creates a category in a project. The level is derived from
// the parent (roots are level 1) and the hierarchy is capped at three levels.
func (s *categoryService) CreateCategory(userID, projectID, name string, parentID *string) (*models.Category, error) {
	if err := s.projects.Authorize(userID, projectID, true); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	level := 1
	if parentID != nil && *parentID != "" {
		var parent models.Category
		if err := s.db.Where("id = ? AND project_id = ?", *parentID, projectID).
			First(&parent).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.WithMessage(apperrors.ErrCategoryNotFound, "parent category not found")
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if parent.Level >= models.MaxCategoryDepth {
			return nil, apperrors.ErrMaxDepthExceeded
		}
		level = parent.Level + 1
	} else {
		parentID = nil
	}

	// Duplicate names are rejected per (project, parent) slot.
	dup := s.db.Model(&models.Category{}).
		Where("project_id = ? AND name = ?", projectID, name)
	if parentID == nil {
		dup = dup.Where("parent_id IS NULL")
	} else {
		dup = dup.Where("parent_id = ?", *parentID)
	}
	var count int64
	if err := dup.Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category with this name already exists")
	}

	category := &models.Category{
		ProjectID: projectID,
		Name:      name,
		ParentID:  parentID,
		Level:     level,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// GetProjectCategories returns the flat category list for a project.
func (s *categoryService) GetProjectCategories(userID, projectID string) ([]models.Category, error) {
	if err := s.projects.Authorize(userID, projectID, false); err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := s.db.Where("project_id = ?", projectID).
		Order("level, name").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category the caller is authorized to read.
func (s *categoryService) GetCategoryByID(userID, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.projects.Authorize(userID, category.ProjectID, false); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory renames a category. Reparenting is intentionally not
// supported: it would silently change the level of an entire subtree.
func (s *categoryService) UpdateCategory(userID, categoryID, name string) (*models.Category, error) {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return nil, err
	}
	if err := s.projects.Authorize(userID, category.ProjectID, true); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	if err := s.db.Model(category).Update("name", name).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// DeleteCategory removes a leaf category. Transactions referencing it keep
// their category_id; aggregation surfaces them as "uncategorized".
func (s *categoryService) DeleteCategory(userID, categoryID string) error {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return err
	}
	if err := s.projects.Authorize(userID, category.ProjectID, true); err != nil {
		return err
	}

	var childCount int64
	if err := s.db.Model(&models.Category{}).
		Where("parent_id = ?", categoryID).
		Count(&childCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if childCount > 0 {
		return apperrors.ErrCategoryHasChildren
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
