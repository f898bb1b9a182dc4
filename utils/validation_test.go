package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+966501234567"))
	assert.True(t, ValidatePhone("+966 50 123-4567"))
	assert.False(t, ValidatePhone("(050) 1234567"))
	assert.False(t, ValidatePhone("phone"))
	assert.False(t, ValidatePhone(""))
}

type line struct {
	Price int `json:"price" validate:"gt=0"`
}

type order struct {
	When  time.Time `json:"when" validate:"required"`
	Phone string    `json:"phone" validate:"omitempty,phone"`
	Lines []line    `json:"lines" validate:"required,min=1,dive"`
}

func TestValidateStructNamesFields(t *testing.T) {
	err := ValidateStruct(order{Phone: "x", Lines: []line{{Price: 1}, {Price: 0}}}, "Invalid order")

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, KindValidation, appErr.Kind)
	assert.Equal(t, "Invalid order", appErr.Message)
	assert.Equal(t, map[string]string{
		"when":           "is required",
		"phone":          "must be a valid phone number",
		"lines[1].price": "must satisfy gt=0",
	}, appErr.Fields)

	assert.NoError(t, ValidateStruct(order{When: time.Now(), Lines: []line{{Price: 3}}}, "Invalid order"))
}
