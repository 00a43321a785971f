package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/astra-capstone/astra-backend/internal/platform/apierr"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// Detail writes the error envelope every non-2xx response uses:
// {"detail": <string or field error list>}.
func Detail(c *gin.Context, status int, detail any) {
	c.JSON(status, gin.H{"detail": detail})
}

// FromError maps a service error onto the wire. apierr statuses pass
// through; anything else is an internal error with no payload contract.
func FromError(c *gin.Context, err error) {
	status := apierr.StatusOf(err)
	if status == http.StatusInternalServerError {
		Detail(c, status, "internal server error")
		return
	}
	Detail(c, status, err.Error())
}

// Validation writes a 422 with field-level detail when the binding error
// carries it, falling back to the raw message for malformed bodies.
func Validation(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, FieldError{
				Field:   strings.ToLower(fe.Field()),
				Message: validationMessage(fe),
			})
		}
		Detail(c, http.StatusUnprocessableEntity, out)
		return
	}
	Detail(c, http.StatusUnprocessableEntity, err.Error())
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "dive":
		return "invalid element"
	default:
		return "failed validation: " + fe.Tag()
	}
}
