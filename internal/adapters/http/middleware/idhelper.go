package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxIDLength caps inbound IDs; longer values are replaced.
const maxIDLength = 128

// enricher copies an ID into the request context.
type enricher func(ctx context.Context, id string) context.Context

// idMiddleware reads header, or generates a UUID, then exposes the ID on the
// gin context, the response header and the request context.
func idMiddleware(header, key string, enrich ...enricher) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(header)
		if id == "" || len(id) > maxIDLength {
			id = uuid.NewString()
		}

		c.Set(key, id)
		c.Header(header, id)

		ctx := c.Request.Context()
		for _, e := range enrich {
			ctx = e(ctx, id)
		}

		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func ginString(c *gin.Context, key string) string {
	return c.GetString(key)
}
