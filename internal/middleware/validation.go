package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/tenacity/erp/internal/app/models/dto"
	"github.com/tenacity/erp/internal/pkg/validation"
)

// RegisterValidators adds the custom field rules to gin's binding validator
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}
	return validation.RegisterRules(v)
}

// BindJSON binds and validates the request body into obj. On failure it writes a
// 400 response listing each invalid field and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		verrs := dto.NewValidationErrors()
		for _, fe := range fieldErrs {
			verrs.AddError(fe.Field(), formatValidationError(fe))
		}
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").WithDetails(verrs.Errors)
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}

	errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request format").WithDetails(err.Error())
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
	return false
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "percent":
		return e.Field() + " must be between 0 and 100"
	case "studentid":
		return e.Field() + " must be a student id such as s1"
	case "roomid":
		return e.Field() + " must be a room id such as R101"
	case "datetime":
		return e.Field() + " must be a date in the format " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
