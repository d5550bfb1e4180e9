package service

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/invoiceflow/site/config"
)

// Guards the /api guards
func Guards(cfg config.Config) map[string]gin.HandlerFunc {
	return map[string]gin.HandlerFunc{
		"cross-origin": guardCrossOrigin(cfg.AllowFrom), // Cross-Origin Resource Sharing
		"json-body":    guardJSONBody,                   // POST bodies must be JSON
	}
}

// guardCrossOrigin any origin when allows is empty, else only the listed origins
func guardCrossOrigin(allows []string) gin.HandlerFunc {
	origins := map[string]bool{}
	for _, origin := range allows {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin != "" {
			origins[origin] = true
		}
	}

	return func(c *gin.Context) {
		header := c.Writer.Header()
		origin := c.GetHeader("Origin")

		switch {
		case len(origins) == 0:
			header.Set("Access-Control-Allow-Origin", "*")
		case origins[origin]:
			header.Set("Access-Control-Allow-Origin", origin)
			header.Add("Vary", "Origin")
		default:
			if c.Request.Method == http.MethodOptions {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
			c.Next()
			return
		}

		header.Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Accept, Origin, Cache-Control, X-Requested-With, X-Request-ID")
		header.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		header.Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func guardJSONBody(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.Next()
		return
	}
	if c.ContentType() != gin.MIMEJSON {
		c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{
			"code":    http.StatusUnsupportedMediaType,
			"message": "the request body must be application/json",
		})
		return
	}
	c.Next()
}
