package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"tokoadmin/internal/apperror"
	"tokoadmin/internal/models"

	"github.com/go-playground/validator/v10"
)

// newValidator returns a validator that reports fields by their JSON name
// and knows the "category" tag.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.IsValidCategory(fl.Field().String())
	})
	return v
}

// fieldErrors validates s and returns a message per failing field.
func fieldErrors(v *validator.Validate, s interface{}) map[string]string {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"payload": "invalid payload"}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = formatFieldError(fe)
	}
	return out
}

func validationError(fields map[string]string) error {
	return apperror.Validation("Validation failed: "+apperror.JoinFields(fields), fields)
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "category":
		return "must be one of: " + strings.Join(models.Categories, ", ")
	}
	return "failed on the '" + fe.Tag() + "' rule"
}
