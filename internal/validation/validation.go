// Package validation holds the form checks run before records are built.
//
// The predicates are pure functions. Register exposes the same checks as
// struct tags on a go-playground validator so request bodies bound by gin are
// checked by the same rules.
package validation

import (
	"math"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneSeparators = regexp.MustCompile(`[-\s]`)
	phonePattern    = regexp.MustCompile(`^\d{10}$`)
	aadhaarPattern  = regexp.MustCompile(`^\d{12}$`)
)

// IsValidEmail reports whether s looks like local@domain.tld
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidPhone reports whether s is ten digits once hyphens and spaces are removed
func IsValidPhone(s string) bool {
	return phonePattern.MatchString(phoneSeparators.ReplaceAllString(s, ""))
}

// IsValidAadhaar reports whether s is a twelve digit Aadhaar number
func IsValidAadhaar(s string) bool {
	return aadhaarPattern.MatchString(s)
}

// IsNotEmpty reports whether s has anything but whitespace
func IsNotEmpty(s string) bool {
	return len(strings.TrimSpace(s)) > 0
}

// IsInRange reports whether min <= n <= max
func IsInRange(n, min, max float64) bool {
	return n >= min && n <= max
}

// IsPositive reports whether n > 0
func IsPositive(n float64) bool {
	return n > 0
}

// Tag names registered by Register
const (
	TagEmail    = "farm_email"
	TagPhone    = "farm_phone"
	TagAadhaar  = "aadhaar"
	TagNotBlank = "notblank"
	TagPositive = "positive"
)

// Register adds the checks of this package to v as struct tags and makes v
// report fields by their JSON names
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonName)

	checks := map[string]validator.Func{
		TagEmail:    stringCheck(IsValidEmail),
		TagPhone:    stringCheck(IsValidPhone),
		TagAadhaar:  stringCheck(IsValidAadhaar),
		TagNotBlank: stringCheck(IsNotEmpty),
		TagPositive: func(fl validator.FieldLevel) bool {
			n, ok := numericValue(fl.Field())
			return ok && IsPositive(n)
		},
	}
	for tag, fn := range checks {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

func stringCheck(pred func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		return pred(fl.Field().String())
	}
}

func numericValue(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	default:
		return math.NaN(), false
	}
}
