package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an id, keeping one sent by the caller.
func RequestID(ctx *gin.Context) {
	id := ctx.GetHeader(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	ctx.Set("requestId", id)
	ctx.Header(RequestIDHeader, id)
	ctx.Next()
}
