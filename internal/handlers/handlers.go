package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func trimmed(s string) string {
	return strings.TrimSpace(s)
}

// pagination reads limit/offset query params with bounds, mirroring the
// defaults the web client sends.
func pagination(c *gin.Context, defaultLimit int) (int, int) {
	limit := defaultLimit
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	offset := 0
	if o := c.Query("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	return limit, offset
}
