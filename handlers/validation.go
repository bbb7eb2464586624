package handlers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// fieldError is one entry of the `details` array returned on
// validation failure.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// validationDetails converts validator errors into per-field messages.
// Returns nil when err did not come from the validator (malformed JSON,
// wrong types) so callers can fall back to a generic message.
func validationDetails(err error) []fieldError {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	out := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fieldError{Field: jsonField(fe.Field()), Message: fieldMessage(fe)})
	}
	return out
}

func jsonField(goField string) string {
	if goField == "" {
		return goField
	}
	return strings.ToLower(goField[:1]) + goField[1:]
}

func fieldMessage(fe validator.FieldError) string {
	field := jsonField(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// bindingFailure writes the 400 response for a failed bind: structured
// per-field details when the validator produced them, a generic error
// otherwise.
func bindingFailure(c *gin.Context, err error) {
	if details := validationDetails(err); details != nil {
		c.JSON(400, gin.H{"success": false, "error": "validation error", "details": details})
		return
	}
	c.JSON(400, gin.H{"success": false, "error": "invalid request body"})
}
