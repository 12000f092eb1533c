package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// Student ids are "s" followed by lowercase letters or digits
	StudentIDPattern = `^s[0-9a-z]{1,15}$`

	// Room ids are "R" followed by digits
	RoomIDPattern = `^R\d{2,5}$`

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100

	// Free text fields (notes, achievements, certificates)
	TextMaxLength = 500

	// Percentages: attendance and marks
	PercentMin = 0.0
	PercentMax = 100.0
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	StudentID *regexp.Regexp
	RoomID    *regexp.Regexp
}{
	StudentID: regexp.MustCompile(StudentIDPattern),
	RoomID:    regexp.MustCompile(RoomIDPattern),
}

// StringValidation checks a string against length and pattern rules
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation, trimming value
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    strings.TrimSpace(value),
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return !v.Required
	}
	length := len([]rune(v.Value))
	if v.MinLen > 0 && length < v.MinLen {
		return false
	}
	if v.MaxLen > 0 && length > v.MaxLen {
		return false
	}
	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}
	return true
}

// RangeValidation checks that a number lies within inclusive bounds
type RangeValidation struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

// NewPercentValidation checks value against the 0..100 percentage range
func NewPercentValidation(field string, value float64) *RangeValidation {
	return &RangeValidation{Field: field, Value: value, Min: PercentMin, Max: PercentMax}
}

// Validate returns a descriptive error when the value is out of range
func (v *RangeValidation) Validate() error {
	if v.Value < v.Min || v.Value > v.Max {
		return fmt.Errorf("%s must be between %g and %g, got %g", v.Field, v.Min, v.Max, v.Value)
	}
	return nil
}

// IsName reports whether s is an acceptable student name
func IsName(s string) bool {
	return NewStringValidation(s).WithMinLength(NameMinLength).WithMaxLength(NameMaxLength).Validate()
}

// RegisterRules adds the custom binding tags used by request DTOs:
// "percent", "studentid" and "roomid"
func RegisterRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"percent": func(fl validator.FieldLevel) bool {
			return NewPercentValidation(fl.FieldName(), fl.Field().Float()).Validate() == nil
		},
		"studentid": func(fl validator.FieldLevel) bool {
			return CompiledPatterns.StudentID.MatchString(fl.Field().String())
		},
		"roomid": func(fl validator.FieldLevel) bool {
			return CompiledPatterns.RoomID.MatchString(fl.Field().String())
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s rule: %w", tag, err)
		}
	}
	return nil
}
