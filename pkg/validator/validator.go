package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report field names from json tags
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidators()
}

func registerCustomValidators() {
	// 3-letter currency code, any casing
	validate.RegisterValidation("currency_code", func(fl validator.FieldLevel) bool {
		code := fl.Field().String()
		if len(code) != 3 {
			return false
		}
		for _, char := range code {
			if !((char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z')) {
				return false
			}
		}
		return true
	})
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func GetValidator() *validator.Validate {
	return validate
}
