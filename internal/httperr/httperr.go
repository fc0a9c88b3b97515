package httperr

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string            `json:"error_code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Respond maps err to a status and body. Non-business errors are logged and
// answered with a generic 500.
func Respond(c *gin.Context, err error) {
	status, body := Describe(c.Request.Method+" "+c.FullPath(), err)
	c.JSON(status, body)
}

// Describe is Respond without the writer, for handlers that extend the body.
func Describe(op string, err error) (int, HTTPError) {
	var be BusinessError
	if !errors.As(err, &be) {
		log.Printf("%s: unexpected error: %v", op, err)
		return http.StatusInternalServerError, HTTPError{
			Code:    "unexpected_error",
			Message: "Something went wrong.",
		}
	}

	if be.Kind == KindUpstream {
		log.Printf("%s: upstream error: %v", op, be)
	}

	msg := be.Message
	if msg == "" {
		msg = be.Code
	}
	return be.Kind.Status(), HTTPError{
		Code:    be.Code,
		Message: msg,
		Fields:  be.Fields,
	}
}
