package validators

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"gopet/internal/utils"
)

var validate *validator.Validate

var yearPattern = regexp.MustCompile(`^\d{4}$`)

func init() {
	validate = validator.New()

	// Report fields by their JSON names.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterValidation("iso8601", validateISO8601)
	validate.RegisterValidation("model_year", validateModelYear)
}

// ValidateStruct runs the struct's validate tags. It returns nil or a
// *utils.FieldError keyed by JSON field path.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	details := make(map[string]string, len(fieldErrors))
	for _, fe := range fieldErrors {
		details[fieldPath(fe)] = getErrorMessage(fe)
	}
	return &utils.FieldError{Fields: details}
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "email":
		return "must be a valid email"
	case "min":
		if err.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", err.Param())
		}
		return fmt.Sprintf("must be at least %s characters", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", err.Param())
	case "oneof":
		return "must be one of: " + err.Param()
	case "iso8601":
		return "must be an ISO-8601 date"
	case "model_year":
		return "must be a 4-digit year"
	default:
		return "failed " + err.Tag() + " validation"
	}
}

func validateISO8601(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := utils.ParseTimeISO(value)
	return err == nil
}

func validateModelYear(fl validator.FieldLevel) bool {
	return yearPattern.MatchString(fl.Field().String())
}
