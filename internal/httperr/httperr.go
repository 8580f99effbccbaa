package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HTTPError is the body of every error answer.
type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

// businessStatus maps business codes onto HTTP statuses. Codes missing
// here are client mistakes and answer 400.
var businessStatus = map[string]int{
	"time_conflict":         http.StatusConflict,
	"appointment_not_found": http.StatusNotFound,
}

// wireCodes renames business codes whose public name differs.
var wireCodes = map[string]string{
	"time_conflict": "slot_conflict",
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

// Business writes a business rule violation.
func Business(c *gin.Context, be BusinessError, message string) {
	status, ok := businessStatus[be.Code]
	if !ok {
		status = http.StatusBadRequest
	}
	code := be.Code
	if wire, ok := wireCodes[code]; ok {
		code = wire
	}
	Write(c, status, code, message)
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}
