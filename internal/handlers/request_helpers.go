package handlers

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/httperr"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/middleware"
)

// bindJSON decodes the body into dst. Malformed JSON and wrongly typed
// fields are answered as validation errors; it reports false when a
// response has been written.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "_"
		}
		httperr.Respond(c, httperr.ErrValidation("invalid_request", map[string]string{
			field: "must be a " + typeErr.Type.String(),
		}))
	case errors.Is(err, io.EOF):
		httperr.Respond(c, httperr.ErrValidation("invalid_request", map[string]string{
			"_": "request body is required",
		}))
	default:
		httperr.BadRequest(c, "invalid_json", "Request body is not valid JSON.")
	}
	return false
}

// bindObject decodes the body as a JSON object, leaving field types to the
// caller so every violation can be reported at once.
func bindObject(c *gin.Context) (map[string]any, bool) {
	var raw map[string]any
	err := c.ShouldBindJSON(&raw)
	switch {
	case err == nil && raw != nil:
		return raw, true
	case err == nil, errors.Is(err, io.EOF):
		httperr.Respond(c, httperr.ErrValidation("invalid_request", map[string]string{
			"_": "request body is required",
		}))
	default:
		httperr.BadRequest(c, "invalid_json", "Request body is not a JSON object.")
	}
	return nil, false
}

func currentUserID(c *gin.Context) string {
	return c.MustGet(middleware.ContextUserID).(string)
}
