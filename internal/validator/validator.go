// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	pinRegex      = regexp.MustCompile(`^\d{4,8}$`)
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currency", validateCurrency)
		_ = v.RegisterValidation("hex_color", validateHexColor)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("member_role", validateMemberRole)
		_ = v.RegisterValidation("note_content_type", validateNoteContentType)
		_ = v.RegisterValidation("pin", validatePIN)
	}
}

// validateCurrency accepts the project currency set. CFA is the stored alias
// for ISO "XOF"; the ISO code is only used at display boundaries.
func validateCurrency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "EUR", "USD", "CFA":
		return true
	}
	return false
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "expense", "budget":
		return true
	}
	return false
}

func validateMemberRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "member", "viewer":
		// "owner" is assigned at project creation, never via the API.
		return true
	}
	return false
}

func validateNoteContentType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "text", "image", "audio":
		return true
	}
	return false
}

func validatePIN(fl validator.FieldLevel) bool {
	return pinRegex.MatchString(fl.Field().String())
}
