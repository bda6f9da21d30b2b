// ABOUTME: Local form validation for login, signup, and password recovery
// ABOUTME: Wraps go-playground/validator and turns failures into user-facing messages

package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is enforced on signup and password reset
const MinPasswordLength = 6

// LoginForm is the login screen input
type LoginForm struct {
	Email    string `label:"Email" validate:"required,email"`
	Password string `label:"Password" validate:"required"`
}

// SignupForm is the signup screen input
type SignupForm struct {
	Name     string `label:"Full name" validate:"required"`
	Email    string `label:"Email" validate:"required,email"`
	Password string `label:"Password" validate:"required,min=6"`
}

// EmailForm is step one of password recovery
type EmailForm struct {
	Email string `label:"Email" validate:"required,email"`
}

// OTPForm is step two of password recovery
type OTPForm struct {
	OTP string `label:"OTP" validate:"required"`
}

// ResetForm is step three of password recovery
type ResetForm struct {
	Password string `label:"Password" validate:"required,min=6"`
	Confirm  string `label:"Confirm password" validate:"required,eqfield=Password"`
}

// FieldError is a single failed constraint
type FieldError struct {
	Field   string
	Message string
}

// ValidationError reports local input problems. It never reaches the network.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

// First returns the first message, for screens that show a single line
func (e *ValidationError) First() string {
	if len(e.Fields) == 0 {
		return ""
	}
	return e.Fields[0].Message
}

// IsValidation reports whether err is a *ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			if label := f.Tag.Get("label"); label != "" {
				return label
			}
			return f.Name
		})
	})
	return validate
}

// Validate checks a form struct and returns a *ValidationError on failure
func Validate(form any) error {
	err := instance().Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating form: %w", err)
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.StructField(),
			Message: message(fe.Field(), fe.Tag(), fe.Param()),
		})
	}
	return out
}

// Check validates a single value against a validator tag, for inline field validation
func Check(label, value, tag string) error {
	err := instance().Var(value, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validating %s: %w", label, err)
	}
	fe := verrs[0]
	return &ValidationError{Fields: []FieldError{{Field: label, Message: message(label, fe.Tag(), fe.Param())}}}
}

func message(label, tag, param string) string {
	switch tag {
	case "required":
		return label + " is required"
	case "email":
		return "Enter a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, param)
	case "eqfield":
		return "Passwords do not match"
	default:
		return label + " is invalid"
	}
}
