package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Idempotency guards POST mutations behind an Idempotency-Key header. A short
// redis lock rejects a duplicate while the first request is still in flight;
// repeating a finished Approve/Cancel is already rejected by the state check,
// so no response caching is needed here.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		actorID := c.GetString("employee_id")
		lockKey := fmt.Sprintf("idemp:%s:%s:%s:lock", c.FullPath(), actorID, idempKey)

		// SetNX with a short expiry so a crashed request releases itself.
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", 30*time.Second).Result()
		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "PROCESSING",
				"message": "A request with this idempotency key is still being processed",
			})
			return
		}

		c.Next()

		_ = rdb.Del(c.Request.Context(), lockKey).Err()
	}
}
