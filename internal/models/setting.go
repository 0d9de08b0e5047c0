package models

import "fmt"

// Setting is a key-value preference row. Keys are namespaced strings, e.g.
// "user:<id>:currency" or "project:<id>:eur_to_cfa".
type Setting struct {
	Key   string `gorm:"primaryKey" json:"key"`
	Value string `gorm:"not null" json:"value"`
}

// Well-known setting keys.
const SettingAdminUserID = "admin_user_id"

// UserCurrencyKey returns the settings key holding a user's display currency.
func UserCurrencyKey(userID string) string {
	return fmt.Sprintf("user:%s:currency", userID)
}

// UserRateKey returns the settings key for a user-level exchange rate.
// Target is "cfa" or "usd".
func UserRateKey(userID, target string) string {
	return fmt.Sprintf("user:%s:eur_to_%s", userID, target)
}

// ProjectRateKey returns the settings key for a project-level exchange rate.
func ProjectRateKey(projectID, target string) string {
	return fmt.Sprintf("project:%s:eur_to_%s", projectID, target)
}
