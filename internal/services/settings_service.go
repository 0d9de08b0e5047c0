package services

import (
	"errors"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "expenshare/internal/errors"
	"expenshare/internal/models"
)

// Default exchange rates applied when neither project- nor user-level rates
// are configured. 1 EUR = rate x target currency.
const (
	DefaultEURToCFA = 655.957
	DefaultEURToUSD = 1.0
)

// settingsService handles the namespaced key-value preference store.
type settingsService struct {
	db *gorm.DB
}

// NewSettingsService creates a new SettingsServicer.
func NewSettingsService(db *gorm.DB) SettingsServicer {
	return &settingsService{db: db}
}

// Get returns the raw value for a key and whether it was present.
func (s *settingsService) Get(key string) (string, bool, error) {
	var setting models.Setting
	if err := s.db.Where("key = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return setting.Value, true, nil
}

// Set upserts a setting.
func (s *settingsService) Set(key, value string) error {
	setting := models.Setting{Key: key, Value: value}
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&setting).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// UserCurrency returns the user's display currency, defaulting to EUR.
func (s *settingsService) UserCurrency(userID string) (models.Currency, error) {
	value, ok, err := s.Get(models.UserCurrencyKey(userID))
	if err != nil {
		return "", err
	}
	if !ok {
		return models.CurrencyEUR, nil
	}
	switch currency := models.Currency(value); currency {
	case models.CurrencyEUR, models.CurrencyUSD, models.CurrencyCFA:
		return currency, nil
	default:
		return models.CurrencyEUR, nil
	}
}

// SetUserCurrency stores the user's display currency.
func (s *settingsService) SetUserCurrency(userID string, currency models.Currency) error {
	switch currency {
	case models.CurrencyEUR, models.CurrencyUSD, models.CurrencyCFA:
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported currency")
	}
	return s.Set(models.UserCurrencyKey(userID), string(currency))
}

// SetUserRates stores user-level exchange rates. Nil values are left unchanged.
func (s *settingsService) SetUserRates(userID string, eurToCFA, eurToUSD *float64) error {
	return s.setRates(models.UserRateKey(userID, "cfa"), models.UserRateKey(userID, "usd"), eurToCFA, eurToUSD)
}

// SetProjectRates stores project-level exchange rates. Nil values are left unchanged.
func (s *settingsService) SetProjectRates(projectID string, eurToCFA, eurToUSD *float64) error {
	return s.setRates(models.ProjectRateKey(projectID, "cfa"), models.ProjectRateKey(projectID, "usd"), eurToCFA, eurToUSD)
}

func (s *settingsService) setRates(cfaKey, usdKey string, eurToCFA, eurToUSD *float64) error {
	if eurToCFA != nil {
		if *eurToCFA <= 0 {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "exchange rate must be positive")
		}
		if err := s.Set(cfaKey, strconv.FormatFloat(*eurToCFA, 'f', -1, 64)); err != nil {
			return err
		}
	}
	if eurToUSD != nil {
		if *eurToUSD <= 0 {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "exchange rate must be positive")
		}
		if err := s.Set(usdKey, strconv.FormatFloat(*eurToUSD, 'f', -1, 64)); err != nil {
			return err
		}
	}
	return nil
}

// ResolveRates resolves the rate pair with the project -> user -> default
// chain. Rates are read fresh on every call so a rate change takes effect
// without recomputing stored sums.
func (s *settingsService) ResolveRates(projectID, userID string) (float64, float64, error) {
	eurToCFA := DefaultEURToCFA
	eurToUSD := DefaultEURToUSD

	resolve := func(key string, target *float64) error {
		value, ok, err := s.Get(key)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		rate, err := strconv.ParseFloat(value, 64)
		if err != nil || rate <= 0 {
			// A malformed stored rate falls through to the lower level.
			return nil
		}
		*target = rate
		return nil
	}

	// User level first so project-level values overwrite it.
	if userID != "" {
		if err := resolve(models.UserRateKey(userID, "cfa"), &eurToCFA); err != nil {
			return 0, 0, err
		}
		if err := resolve(models.UserRateKey(userID, "usd"), &eurToUSD); err != nil {
			return 0, 0, err
		}
	}
	if projectID != "" {
		if err := resolve(models.ProjectRateKey(projectID, "cfa"), &eurToCFA); err != nil {
			return 0, 0, err
		}
		if err := resolve(models.ProjectRateKey(projectID, "usd"), &eurToUSD); err != nil {
			return 0, 0, err
		}
	}

	return eurToCFA, eurToUSD, nil
}

// AdminUserID returns the bootstrapped admin user's ID, or empty when the
// bootstrap has not run yet.
func (s *settingsService) AdminUserID() (string, error) {
	value, _, err := s.Get(models.SettingAdminUserID)
	return value, err
}

// SetAdminUserID records the admin user's ID.
func (s *settingsService) SetAdminUserID(userID string) error {
	return s.Set(models.SettingAdminUserID, userID)
}
