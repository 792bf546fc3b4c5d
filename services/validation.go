package services

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var mobilePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return mobilePattern.MatchString(fl.Field().String())
	})
	return v
}

// ValidMobile reports whether phone is a 10-digit mobile number starting 6-9.
func ValidMobile(phone string) bool {
	return mobilePattern.MatchString(phone)
}

// Validate runs struct tag validation and folds the failures into one
// validation error.
func Validate(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Validation("%s", err.Error())
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe.Field(), fe.Tag(), fe.Param()))
	}
	return Validation("%s", strings.Join(msgs, "; "))
}

// validateField checks a single value, used for patch fields.
func validateField(name string, value any, tag string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return Validation("%s", describe(name, fieldErrs[0].Tag(), fieldErrs[0].Param()))
	}
	return Validation("%s is invalid", name)
}

func describe(field, tag, param string) string {
	switch tag {
	case "required":
		return field + " is required"
	case "mobile":
		return field + " must be a valid 10-digit mobile number starting with 6-9"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, param)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	case "url":
		return field + " must be a valid URL"
	case "latitude", "longitude":
		return fmt.Sprintf("%s must be a valid %s", field, tag)
	}
	return fmt.Sprintf("%s failed on the '%s' rule", field, tag)
}
