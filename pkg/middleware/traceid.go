package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripwise/pkg/utils"
)

const TraceIDHeader = "X-Trace-ID"

// maxTraceIDLen caps client supplied ids before they reach logs.
const maxTraceIDLen = 128

// TraceIDMiddleware reuses a client supplied X-Trace-ID or mints a UUID.
func TraceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceIDHeader)
		if traceID == "" || len(traceID) > maxTraceIDLen {
			traceID = uuid.New().String()
		}
		c.Set(utils.TraceIDKey, traceID)
		c.Writer.Header().Set(TraceIDHeader, traceID)
		c.Next()
	}
}
