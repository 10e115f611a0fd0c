package validation

import (
	"github.com/go-playground/validator/v10"

	"tescilofisi-backend/internal/domain"
	"tescilofisi-backend/pkg/slug"
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("slug", Slug)
	_ = v.RegisterValidation("category", Category)
}

// Slug validates that a string is a well-formed URL slug (lowercase ASCII,
// hyphen-separated). Empty passes; the server derives one from the title when
// none is supplied.
func Slug(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return slug.Valid(val)
}

// Category validates that a string is one of the fixed blog categories.
func Category(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return domain.ValidCategory(val)
}
