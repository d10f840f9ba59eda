package dto

import (
	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/clothing-shop/pkg/util"
)

var validate = validator.New()

// Validate checks struct tags and converts failures into validation errors
// with per-field details.
func Validate(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = fe.Tag()
	}
	return apperrors.NewValidationError("invalid payload", details)
}
