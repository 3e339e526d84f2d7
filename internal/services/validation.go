package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"esatalim/internal/common"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	if err := v.RegisterValidation("trphone", func(fl validator.FieldLevel) bool {
		return common.ValidTurkishPhone(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	// Profile fields that an empty string clears
	v.RegisterAlias("phone_or_empty", "eq=|trphone")
	v.RegisterAlias("url_or_empty", "eq=|url")
	return v
}

// validateStruct runs the struct's validate tags and collects every failure
// into one ValidationError. The result is never nil.
func validateStruct(s interface{}) *common.ValidationError {
	verr := &common.ValidationError{}
	err := validate.Struct(s)
	if err == nil {
		return verr
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.Add("", err.Error(), nil)
		return verr
	}
	for _, fe := range fieldErrs {
		verr.Add(fieldPath(fe), fieldMessage(fe), fe.Value())
	}
	return verr
}

// fieldPath drops the struct name from the namespace: "location.city"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	name := fe.Field()
	isText := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "min":
		if isText {
			return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
		}
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return fmt.Sprintf("%s must contain at least %s items", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max":
		if isText {
			return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
		}
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return fmt.Sprintf("%s must contain at most %s items", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "email":
		return "Please provide a valid email address"
	case "trphone", "phone_or_empty":
		return "Please provide a valid Turkish phone number"
	case "uuid":
		return fmt.Sprintf("%s must be a valid id", name)
	case "url", "url_or_empty":
		return fmt.Sprintf("%s must be a valid URL", name)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}
