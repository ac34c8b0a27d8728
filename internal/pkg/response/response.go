// internal/pkg/response/response.go
package response

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"journal-service/internal/pkg/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorBody is the wire shape of every error the API returns.
type ErrorBody struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details"`
	Timestamp string                 `json:"timestamp"`
}

type errorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// JSON sends a successful response.
func JSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Err renders any error as the structured error envelope with the status
// mapped from its taxonomy code. Unclassified errors become a generic 500.
func Err(c *gin.Context, err error) {
	appErr := apierror.From(err)
	c.Abort()
	c.JSON(apierror.StatusOf(appErr.Code), errorEnvelope{
		Error: ErrorBody{
			Code:      string(appErr.Code),
			Message:   appErr.Message,
			Details:   appErr.Details,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// BindingErr converts a request-shape failure (missing field, wrong type,
// failed binding tag) into a VALIDATION_ERROR through the same envelope, so
// callers see one error contract regardless of where validation happened.
func BindingErr(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		field := strings.ToLower(first.Field())
		Err(c, apierror.Validation("Invalid value for "+field, field, first.Tag()))
		return
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		Err(c, apierror.Validation("Invalid type for "+typeErr.Field, typeErr.Field, "type"))
		return
	}

	Err(c, apierror.Validation("Malformed request body", "", ""))
}
