package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/campusjobboard/portal/internal/core/domain"
	"github.com/campusjobboard/portal/internal/core/validation"
)

// Custom tags backed by the portal's field checks.
var fieldChecks = map[string]func(string) string{
	"password":     validation.Password,
	"portal_email": validation.Email,
	"fullname":     validation.FullName,
	"signup_role":  validation.SignupRole,
}

var requiredMessages = map[string]string{
	domain.FieldEmail:    "Email is required.",
	domain.FieldPassword: "Password is required.",
}

// echoValidator wraps go-playground/validator so Echo can call c.Validate(form).
// Failures come back as domain.FieldErrors keyed by the form field name.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	for tag, check := range fieldChecks {
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String()) == ""
		}); err != nil {
			panic(fmt.Sprintf("validator: register %s: %v", tag, err))
		}
	}
	// confirms=Field compares the value with the named sibling field.
	if err := v.RegisterValidation("confirms", func(fl validator.FieldLevel) bool {
		other, _, ok := fl.GetStructFieldOK()
		if !ok {
			return false
		}
		return validation.ConfirmPassword(other.String(), fl.Field().String()) == ""
	}); err != nil {
		panic(fmt.Sprintf("validator: register confirms: %v", err))
	}
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fe := domain.FieldErrors{}
			for _, e := range ve {
				fe.Add(e.Field(), fieldError(e))
			}
			return fe
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into the message shown next to the field.
func fieldError(fe validator.FieldError) string {
	value, _ := fe.Value().(string)
	if check, ok := fieldChecks[fe.Tag()]; ok {
		return check(value)
	}
	switch fe.Tag() {
	case "required":
		if msg, ok := requiredMessages[fe.Field()]; ok {
			return msg
		}
		return "This field is required."
	case "confirms":
		return validation.MsgPasswordMismatch
	default:
		return fmt.Sprintf("%s failed validation (%s)", fe.Field(), fe.Tag())
	}
}
