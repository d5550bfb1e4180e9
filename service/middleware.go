package service

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yaoapp/kun/exception"
	"github.com/yaoapp/kun/log"
)

// RequestIDHeader the request id header, echoed when the client sends one
const RequestIDHeader = "X-Request-ID"

const maxRequestID = 64

// Middlewares the global middlewares, applied before recovery
var Middlewares = []gin.HandlerFunc{
	withRequestID,
	withLogger,
}

func withRequestID(c *gin.Context) {
	rid := c.GetHeader(RequestIDHeader)
	if rid == "" || len(rid) > maxRequestID {
		rid = uuid.New().String()
	}
	c.Set("__rid", rid)
	c.Header(RequestIDHeader, rid)
	c.Next()
}

func withLogger(c *gin.Context) {
	start := time.Now()
	c.Next()

	status := c.Writer.Status()
	entry := log.With(log.F{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  status,
		"latency": time.Since(start).String(),
		"rid":     c.GetString("__rid"),
		"ip":      c.ClientIP(),
	})

	switch {
	case status >= http.StatusInternalServerError:
		entry.Error("[service] %s %s", c.Request.Method, c.Request.URL.Path)
	case status >= http.StatusBadRequest:
		entry.Warn("[service] %s %s", c.Request.Method, c.Request.URL.Path)
	default:
		entry.Info("[service] %s %s", c.Request.Method, c.Request.URL.Path)
	}
}

func withSecurityHeaders(c *gin.Context) {
	header := c.Writer.Header()
	header.Set("X-Content-Type-Options", "nosniff")
	header.Set("X-Frame-Options", "DENY")
	header.Set("Referrer-Policy", "strict-origin-when-cross-origin")
	header.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
	if c.Request.TLS != nil {
		header.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
	}
	c.Next()
}

// recovered turn a panic into a JSON error, exceptions keep their code
func recovered(c *gin.Context, recovered interface{}) {

	var code = http.StatusInternalServerError
	var message = http.StatusText(code)

	switch err := recovered.(type) {
	case exception.Exception:
		code, message = err.Code, err.Message
	case *exception.Exception:
		code, message = err.Code, err.Message
	case string:
		message = err
	case error:
		message = err.Error()
	default:
		message = fmt.Sprintf("%v", recovered)
	}

	if code < 400 || code > 599 {
		code = http.StatusInternalServerError
	}

	log.With(log.F{"path": c.Request.URL.Path, "rid": c.GetString("__rid")}).Error("[service] panic: %s", message)
	if code >= http.StatusInternalServerError {
		message = http.StatusText(code)
	}
	c.AbortWithStatusJSON(code, gin.H{"code": code, "message": message})
}
