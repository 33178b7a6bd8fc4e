package validator

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

var ifscPattern = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Payment method validation
	validate.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		method := fl.Field().String()
		validMethods := []string{"CARD", "UPI", "CASH"}
		for _, m := range validMethods {
			if method == m {
				return true
			}
		}
		return false
	})

	// Withdrawal status validation (closed enum, no free-form strings)
	validate.RegisterValidation("withdrawal_status", func(fl validator.FieldLevel) bool {
		status := fl.Field().String()
		validStatuses := []string{"REQUESTED", "PROCESSING", "COMPLETED", "FAILED"}
		for _, s := range validStatuses {
			if status == s {
				return true
			}
		}
		return false
	})

	// IFSC bank routing code validation
	validate.RegisterValidation("ifsc", func(fl validator.FieldLevel) bool {
		return ifscPattern.MatchString(fl.Field().String())
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "min":
			errors[field] = "Value is too short"
		case "max":
			errors[field] = "Value is too long"
		case "uuid":
			errors[field] = "Must be a valid UUID"
		case "payment_method":
			errors[field] = "Must be one of CARD, UPI, CASH"
		case "withdrawal_status":
			errors[field] = "Must be one of REQUESTED, PROCESSING, COMPLETED, FAILED"
		case "ifsc":
			errors[field] = "Must be a valid IFSC code"
		default:
			errors[field] = "Invalid value"
		}
	}
	return errors
}
