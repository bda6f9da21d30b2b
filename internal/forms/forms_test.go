package forms

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_LoginForm(t *testing.T) {
	assert.NoError(t, Validate(LoginForm{Email: "jane@example.com", Password: "x"}))

	err := Validate(LoginForm{})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Fields, 2)
	assert.Equal(t, "Email is required", ve.Fields[0].Message)
	assert.Equal(t, "Password is required", ve.Fields[1].Message)
	assert.Equal(t, "Email", ve.Fields[0].Field)
}

func TestValidate_InvalidEmail(t *testing.T) {
	err := Validate(EmailForm{Email: "not-an-email"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Enter a valid email address", ve.First())
}

func TestValidate_ResetForm(t *testing.T) {
	tests := []struct {
		name string
		form ResetForm
		want string
	}{
		{"mismatch", ResetForm{Password: "secret1", Confirm: "secret2"}, "Passwords do not match"},
		{"too short", ResetForm{Password: "abc", Confirm: "abc"}, "Password must be at least 6 characters"},
		{"missing confirm", ResetForm{Password: "secret1"}, "Confirm password is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.form)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.want, ve.First())
		})
	}

	assert.NoError(t, Validate(ResetForm{Password: "secret1", Confirm: "secret1"}))
}

func TestValidate_SignupForm(t *testing.T) {
	err := Validate(SignupForm{Name: "Jane", Email: "jane@example.com", Password: "12345"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Password must be at least 6 characters", ve.First())

	assert.NoError(t, Validate(SignupForm{Name: "Jane", Email: "jane@example.com", Password: "123456"}))
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check("OTP", "123456", "required"))

	err := Check("OTP", "", "required")
	assert.True(t, IsValidation(err))
	assert.EqualError(t, err, "OTP is required")
}

func TestIsValidation(t *testing.T) {
	assert.False(t, IsValidation(errors.New("boom")))
	assert.True(t, IsValidation(&ValidationError{Fields: []FieldError{{Message: "x"}}}))
}
