package utils

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"p9e.in/lms/pkg/apperr"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared struct validator with the registration
// specific tags (pincode, mobile, ifsc, gst) registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("pincode", func(fl validator.FieldLevel) bool {
			return ValidatePinCode(fl.Field().String())
		})
		_ = v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
			return ValidateMobileNumber(fl.Field().String())
		})
		_ = v.RegisterValidation("ifsc", func(fl validator.FieldLevel) bool {
			return ValidateIFSC(fl.Field().String())
		})
		_ = v.RegisterValidation("gst", func(fl validator.FieldLevel) bool {
			return ValidateGST(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// ValidateStruct runs tag validation on s and converts failures into a
// validation error keyed by json field path.
func ValidateStruct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.BadRequest("invalid request: %v", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe)] = fieldMessage(fe)
	}
	return apperr.ValidationFields(fields)
}

// fieldPath drops the top level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "pincode":
		return "invalid PIN code format"
	case "mobile":
		return "invalid mobile number format"
	case "ifsc":
		return "invalid IFSC code format"
	case "gst":
		return "invalid GST number format"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
