package serverutils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"parish-portal-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("strongpassword", strongPassword)
		_ = validate.RegisterValidation("notblank", validators.NotBlank)
		_ = validate.RegisterValidation("filled_if", filledIf)
	})
	return validate
}

// ValidateRequest runs the `validate` tags of req and reports the first failure
// as a validation error. A field may carry a `msg` tag that replaces the
// generated message when a required rule fails.
func ValidateRequest(req interface{}) error {
	err := getValidator().Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperror.Validation(err.Error())
	}

	fe := verrs[0]
	if isPresenceRule(fe.Tag()) {
		if msg := customMessage(req, fe.StructField()); msg != "" {
			return apperror.Validation(msg)
		}
	}
	return apperror.Validation(describe(fe))
}

func isPresenceRule(tag string) bool {
	return strings.HasPrefix(tag, "required") || tag == "filled_if" || tag == "notblank"
}

func customMessage(req interface{}, structField string) string {
	t := reflect.TypeOf(req)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return ""
	}
	f, ok := t.FieldByName(structField)
	if !ok {
		return ""
	}
	return f.Tag.Get("msg")
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "filled_if", "notblank":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "strongpassword":
		return "Password must be at least 8 characters and include uppercase, lowercase, number and special character"
	case "len":
		return fmt.Sprintf("%s must be %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// filledIf is required_if for strings that also refuses whitespace-only
// values: "filled_if=Kind BAPTISM" demands content when the sibling field Kind
// equals BAPTISM.
func filledIf(fl validator.FieldLevel) bool {
	params := strings.Fields(fl.Param())
	if len(params) != 2 {
		return false
	}
	parent := reflect.Indirect(fl.Parent())
	if parent.Kind() != reflect.Struct {
		return false
	}
	other := parent.FieldByName(params[0])
	if !other.IsValid() || other.Kind() != reflect.String {
		return false
	}
	if other.String() != params[1] {
		return true
	}
	return strings.TrimSpace(fl.Field().String()) != ""
}

// strongPassword: at least 8 characters with an upper, a lower, a digit and
// one of @$!%*?&.
func strongPassword(fl validator.FieldLevel) bool {
	pw := fl.Field().String()
	if len(pw) < 8 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune("@$!%*?&", r):
			special = true
		}
	}
	return upper && lower && digit && special
}
