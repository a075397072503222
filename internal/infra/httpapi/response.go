package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fardannozami/ecoplay/internal/domain"
)

// Response is the envelope of every JSON reply.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func respond(c *gin.Context, status, code int, message string, data interface{}) {
	c.JSON(status, Response{Code: code, Message: message, Data: data})
}

func success(c *gin.Context, data interface{}) {
	respond(c, http.StatusOK, 0, "success", data)
}

func fail(c *gin.Context, status, code int, message string) {
	respond(c, status, code, message, nil)
}

type errorMapping struct {
	err    error
	status int
	code   int
}

// errorMappings is checked in order with errors.Is.
var errorMappings = []errorMapping{
	{domain.ErrValidation, http.StatusBadRequest, 40001},
	{domain.ErrMissingEvidence, http.StatusBadRequest, 40002},
	{domain.ErrMissingNote, http.StatusBadRequest, 40003},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, 40101},
	{domain.ErrForbidden, http.StatusForbidden, 40301},
	{domain.ErrUserNotFound, http.StatusNotFound, 40401},
	{domain.ErrQuizNotFound, http.StatusNotFound, 40402},
	{domain.ErrEventNotFound, http.StatusNotFound, 40403},
	{domain.ErrSubmissionNotFound, http.StatusNotFound, 40404},
	{domain.ErrDuplicateSubmission, http.StatusConflict, 40901},
	{domain.ErrAlreadyJoined, http.StatusConflict, 40902},
	{domain.ErrUsernameTaken, http.StatusConflict, 40903},
	{domain.ErrEmailTaken, http.StatusConflict, 40904},
	{domain.ErrInsufficientPoints, http.StatusUnprocessableEntity, 42201},
	{domain.ErrStorageUnavailable, http.StatusServiceUnavailable, 50301},
}

// writeError maps a usecase error to its HTTP status. Unknown errors are
// reported as 500 without their text.
func writeError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			msg := err.Error()
			if m.err == domain.ErrStorageUnavailable {
				msg = domain.ErrStorageUnavailable.Error()
			}
			fail(c, m.status, m.code, msg)
			_ = c.Error(err)
			return
		}
	}
	fail(c, http.StatusInternalServerError, 50001, "internal server error")
	_ = c.Error(err)
}
