package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shareloop/service-rental/internal/response"
)

// HeaderSharerUserID carries the acting user's identity on every request
// that needs one. The gateway in front of this service authenticates the
// user and injects the header.
const HeaderSharerUserID = "X-Sharer-User-Id"

// sharerID extracts the acting user's id from the identity header. It writes
// a 400 response and returns false when the header is missing or malformed.
func sharerID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetHeader(HeaderSharerUserID)
	if raw == "" {
		response.BadRequest(c, "X-Sharer-User-Id header is required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.BadRequest(c, "X-Sharer-User-Id header must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}
