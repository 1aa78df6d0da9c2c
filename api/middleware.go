package api

import (
	"github.com/gin-gonic/gin"
	uuid "github.com/satori/go.uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestID tags every request with an id, reusing the one sent by the client if present
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			rawID, err := uuid.NewV4()
			if err != nil {
				log.Warn("can not generate request id", "error", err)
			} else {
				id = rawID.String()
			}
		}

		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()

		log.Debug("request served", "id", id, "method", c.Request.Method, "path", c.Request.URL.Path,
			"status", c.Writer.Status())
	}
}
