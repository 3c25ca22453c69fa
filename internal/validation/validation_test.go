package validation

import (
	"errors"
	"math"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"farmer@example.com", true},
		{"a.b@c.co.in", true},
		{"no-at-sign.com", false},
		{"missing@tld", false},
		{"has space@example.com", false},
		{"@example.com", false},
		{"two@@example.com", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidEmail(tt.input), "IsValidEmail(%q)", tt.input)
	}
}

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"9876543210", true},
		{"123-456 7890", true},
		{"98765 43210", true},
		{"12345", false},
		{"98765432101", false},
		{"98765abcde", false},
		{"+919876543210", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidPhone(tt.input), "IsValidPhone(%q)", tt.input)
	}
}

func TestIsValidAadhaar(t *testing.T) {
	assert.True(t, IsValidAadhaar("123412341234"))
	assert.False(t, IsValidAadhaar("1234 1234 1234"))
	assert.False(t, IsValidAadhaar("12341234123"))
}

func TestIsNotEmpty(t *testing.T) {
	assert.True(t, IsNotEmpty("Rice"))
	assert.True(t, IsNotEmpty("  x  "))
	assert.False(t, IsNotEmpty(""))
	assert.False(t, IsNotEmpty(" \t\n"))
}

func TestIsInRange(t *testing.T) {
	assert.True(t, IsInRange(5, 1, 10))
	assert.True(t, IsInRange(1, 1, 10))
	assert.True(t, IsInRange(10, 1, 10))
	assert.False(t, IsInRange(0.99, 1, 10))
	assert.False(t, IsInRange(11, 1, 10))
	assert.False(t, IsInRange(math.NaN(), 1, 10))
}

func TestIsPositive(t *testing.T) {
	assert.True(t, IsPositive(0.1))
	assert.False(t, IsPositive(0))
	assert.False(t, IsPositive(-2))
	assert.False(t, IsPositive(math.NaN()))
}

func TestChecker(t *testing.T) {
	var c Checker
	c.Check(IsNotEmpty("Rice"), "crop", "is required")
	require.NoError(t, c.Err())

	c.Check(IsPositive(0), "area", "must be greater than 0")
	c.Check(IsValidPhone("12345"), "phone", "must be a 10 digit phone number")

	err := c.Err()
	require.Error(t, err)

	var errs Errors
	require.True(t, errors.As(err, &errs))
	assert.Equal(t, Errors{
		{Field: "area", Message: "must be greater than 0"},
		{Field: "phone", Message: "must be a 10 digit phone number"},
	}, errs)
	assert.Contains(t, err.Error(), "area: must be greater than 0")
}

type profileForm struct {
	Name    string  `json:"name" validate:"notblank"`
	Email   string  `json:"email" validate:"omitempty,farm_email"`
	Phone   string  `json:"phone" validate:"farm_phone"`
	Aadhaar string  `json:"aadhar" validate:"omitempty,aadhaar"`
	Area    float64 `json:"area" validate:"positive"`
}

func TestRegister(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	valid := profileForm{Name: "Sunita", Phone: "98765-43210", Aadhaar: "123412341234", Area: 2}
	assert.NoError(t, v.Struct(valid))

	invalid := profileForm{Name: "  ", Email: "nope", Phone: "12345", Aadhaar: "12", Area: 0}
	err := v.Struct(invalid)
	require.Error(t, err)

	errs := FromError(err)
	fields := map[string]string{}
	for _, fe := range errs {
		fields[fe.Field] = fe.Message
	}
	assert.Equal(t, map[string]string{
		"name":   "is required",
		"email":  "must be a valid email address",
		"phone":  "must be a 10 digit phone number",
		"aadhar": "must be a 12 digit Aadhaar number",
		"area":   "must be greater than 0",
	}, fields)
}

func TestFromError_NonValidatorError(t *testing.T) {
	errs := FromError(errors.New("unexpected EOF"))
	assert.Equal(t, Errors{{Field: "body", Message: "unexpected EOF"}}, errs)
}
