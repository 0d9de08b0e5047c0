package services

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "expenshare/internal/errors"
	"expenshare/internal/logger"
	"expenshare/internal/models"
)

var pinFormat = regexp.MustCompile(`^\d{4,8}$`)

// userService handles user-related business logic.
type userService struct {
	db       *gorm.DB
	settings SettingsServicer
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB, settings SettingsServicer) UserServicer {
	return &userService{db: db, settings: settings}
}

// Register creates a new user with a bcrypt-hashed PIN.
func (s *userService) Register(name, pin string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if !pinFormat.MatchString(pin) {
		return nil, apperrors.ErrInvalidPIN
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateName
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Name:    name,
		PINHash: string(hash),
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// CheckName reports whether a user with the given name exists. This drives
// the signup wizard: an unknown name proceeds to setup, a known name to login.
func (s *userService) CheckName(name string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("name = ?", strings.TrimSpace(name)).Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}

// AttemptLogin verifies the name/PIN pair and returns the user.
func (s *userService) AttemptLogin(name, pin string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("name = ?", strings.TrimSpace(name)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PINHash), []byte(pin)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return &user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// ListUsers returns every user. Intended for the admin management views.
func (s *userService) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("created_at").Find(&users).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return users, nil
}

// EnsureAdmin bootstraps the single admin user. It is idempotent: if an admin
// already exists it only refreshes the admin_user_id setting.
func (s *userService) EnsureAdmin(name, pin string) (*models.User, error) {
	var admin models.User
	err := s.db.Where("is_admin = ?", true).First(&admin).Error
	switch {
	case err == nil:
		if err := s.settings.SetAdminUserID(admin.ID); err != nil {
			return nil, err
		}
		return &admin, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fall through to creation
	default:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	admin = models.User{
		Name:    name,
		PINHash: string(hash),
		IsAdmin: true,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.settings.SetAdminUserID(admin.ID); err != nil {
		return nil, err
	}

	logger.Get().Infow("admin user bootstrapped", "user_id", admin.ID, "name", admin.Name)
	return &admin, nil
}

// DeleteUser removes a user and reassigns everything they own to the admin:
// projects they created, transactions they authored. Their memberships are
// dropped. All steps run in one database transaction so a partial failure
// leaves no orphaned reassignments.
func (s *userService) DeleteUser(adminID, targetID string) error {
	admin, err := s.GetUserByID(adminID)
	if err != nil {
		return err
	}
	if !admin.IsAdmin {
		return apperrors.ErrForbidden
	}
	if adminID == targetID {
		return apperrors.ErrAdminProtected
	}

	target, err := s.GetUserByID(targetID)
	if err != nil {
		return err
	}
	if target.IsAdmin {
		return apperrors.ErrAdminProtected
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Project{}).
			Where("created_by = ?", targetID).
			Update("created_by", adminID).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Transaction{}).
			Where("user_id = ?", targetID).
			Update("user_id", adminID).Error; err != nil {
			return err
		}
		// Reassigned projects need an owner membership row for the admin;
		// replace the target's owner rows rather than dropping them.
		if err := tx.Model(&models.ProjectUser{}).
			Where("user_id = ? AND role = ?", targetID, models.RoleOwner).
			Where("project_id NOT IN (?)", tx.Model(&models.ProjectUser{}).
				Select("project_id").Where("user_id = ?", adminID)).
			Update("user_id", adminID).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", targetID).
			Delete(&models.ProjectUser{}).Error; err != nil {
			return err
		}
		return tx.Delete(target).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("user deleted and reassigned", "target_id", targetID, "admin_id", adminID)
	return nil
}
