package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringValidation(t *testing.T) {
	assert.True(t, IsName("Aman Kumar"))
	assert.True(t, IsName("  Li  "))
	assert.False(t, IsName("A"))
	assert.False(t, IsName("   "))
	assert.True(t, NewStringValidation("").WithRequired(false).Validate())
	assert.False(t, NewStringValidation("R1").WithPattern(CompiledPatterns.RoomID).Validate())
}

func TestPercentValidation(t *testing.T) {
	assert.NoError(t, NewPercentValidation("marks", 0).Validate())
	assert.NoError(t, NewPercentValidation("marks", 100).Validate())
	err := NewPercentValidation("attendance", 100.5).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "attendance")
	assert.Error(t, NewPercentValidation("marks", -1).Validate())
}

func TestRegisterRules(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterRules(v))

	type req struct {
		Marks     float64 `validate:"percent"`
		StudentID string  `validate:"studentid"`
		RoomID    string  `validate:"omitempty,roomid"`
	}

	assert.NoError(t, v.Struct(req{Marks: 55, StudentID: "s1", RoomID: "R101"}))
	assert.NoError(t, v.Struct(req{Marks: 100, StudentID: "s1234ab"}))
	assert.Error(t, v.Struct(req{Marks: 101, StudentID: "s1"}))
	assert.Error(t, v.Struct(req{Marks: 50, StudentID: "x1"}))
	assert.Error(t, v.Struct(req{Marks: 50, StudentID: "s1", RoomID: "room"}))
}
