// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/brightcart/storefront/internal/apperrors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("slug", validateSlug)
	validate.RegisterValidation("role", validateRole)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

var slugPattern = regexp.MustCompile("^[a-z0-9]+(?:-[a-z0-9]+)*$")

func validateSlug(fl validator.FieldLevel) bool {
	slug := fl.Field().String()
	if len(slug) < 1 || len(slug) > 255 {
		return false
	}
	return slugPattern.MatchString(slug)
}

func validateRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "customer", "support", "merchandiser", "admin":
		return true
	}
	return false
}

// ValidationErrorFrom converts validator failures into the domain
// ValidationError so every violated field is reported, not just the first.
func ValidationErrorFrom(err error) *apperrors.ValidationError {
	if err == nil {
		return nil
	}

	ve := &apperrors.ValidationError{Message: "invalid input"}
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			ve.Fields = append(ve.Fields, apperrors.FieldError{
				Field:   strings.ToLower(e.Field()[:1]) + e.Field()[1:],
				Message: validationMessage(e),
			})
		}
	} else {
		ve.Message = err.Error()
	}
	return ve
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "gte":
		return "must be at least " + e.Param()
	case "len":
		return "must be exactly " + e.Param() + " characters"
	case "slug":
		return "must be lowercase letters, digits and hyphens"
	case "role":
		return "must be one of customer, support, merchandiser, admin"
	case "oneof":
		return "must be one of " + e.Param()
	default:
		return "is invalid"
	}
}
