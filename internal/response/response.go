package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shareloop/service-rental/internal/domain"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, payload)
}

// NoContent writes a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 response with a validation-shaped body.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorBody{
		Error: message,
		Code:  string(domain.CodeValidation),
	})
}

// Error maps a domain error to its HTTP status and writes the error body.
// Unrecognized errors become opaque 500s so internals never leak.
func Error(c *gin.Context, err error) {
	code := domain.CodeOf(err)

	status := http.StatusInternalServerError
	message := err.Error()

	switch code {
	case domain.CodeValidation, domain.CodeUnknownState:
		status = http.StatusBadRequest
	case domain.CodeConflict:
		status = http.StatusConflict
	case domain.CodeNotFound, domain.CodeEntityNotFound:
		status = http.StatusNotFound
	case domain.CodeForbidden:
		status = http.StatusForbidden
	default:
		message = "internal server error"
	}

	c.JSON(status, ErrorBody{
		Error: message,
		Code:  string(code),
	})
}
