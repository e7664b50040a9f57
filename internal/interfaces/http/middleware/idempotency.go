package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"paylance.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is the time the in-progress marker is held
	LockDuration = 30 * time.Second
	// RetentionDuration is how long a replayable response is kept
	RetentionDuration = 24 * time.Hour

	processingMarker = "processing"
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware ensures a request carrying an Idempotency-Key is not
// processed twice: a concurrent duplicate gets 409, a later duplicate gets
// the cached first response. Requests without the header pass through.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		storageKey := fmt.Sprintf("idempotency:%s:%s", c.FullPath(), key)

		acquired, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil {
			// Redis being down must not block payments; process without the
			// idempotency guarantee.
			c.Next()
			return
		}
		if !acquired {
			val, err := redisGet(ctx, storageKey)
			if err == nil && val == processingMarker {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{
					"code":    http.StatusConflict,
					"message": "request with this idempotency key is already in progress",
				})
				return
			}
			if err == nil {
				c.Header("Content-Type", "application/json")
				c.Header("X-Idempotency-Hit", "true")
				c.String(http.StatusOK, val)
				c.Abort()
				return
			}
			// Marker expired between SetNX and Get; fall through and process.
		}

		w := responseWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = w

		c.Next()

		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			_ = redisSet(ctx, storageKey, w.body.String(), RetentionDuration)
		} else {
			// Failed requests may be retried with the same key.
			_ = redisDel(ctx, storageKey)
		}
	}
}
