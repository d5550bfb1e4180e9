package service

import (
	"compress/gzip"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

var gzipPool = sync.Pool{
	New: func() interface{} { return gzip.NewWriter(nil) },
}

// compressible content types, images and documents are already compressed
var compressible = []string{
	"text/",
	"application/json",
	"application/xml",
	"application/rss+xml",
	"application/atom+xml",
	"application/javascript",
	"image/svg+xml",
}

// withGzip compress the response when the client accepts gzip and the
// content type is worth compressing
func withGzip(c *gin.Context) {
	if c.Request.Method == http.MethodHead || !strings.Contains(c.GetHeader("Accept-Encoding"), "gzip") {
		c.Next()
		return
	}

	writer := &gzipResponseWriter{ResponseWriter: c.Writer}
	c.Writer = writer
	c.Header("Vary", "Accept-Encoding")
	defer func() {
		writer.close()
		c.Writer = writer.ResponseWriter
	}()
	c.Next()
}

type gzipResponseWriter struct {
	gin.ResponseWriter
	gz      *gzip.Writer
	decided bool
}

// start pick compression on the first write, the headers are still pending
func (w *gzipResponseWriter) start() {
	w.decided = true
	header := w.ResponseWriter.Header()
	if header.Get("Content-Encoding") != "" {
		return
	}
	status := w.ResponseWriter.Status()
	if status == http.StatusNoContent || status == http.StatusNotModified {
		return
	}

	contentType := header.Get("Content-Type")
	for _, prefix := range compressible {
		if strings.HasPrefix(contentType, prefix) {
			header.Set("Content-Encoding", "gzip")
			header.Del("Content-Length")
			w.gz = gzipPool.Get().(*gzip.Writer)
			w.gz.Reset(w.ResponseWriter)
			return
		}
	}
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	if !w.decided {
		w.start()
	}
	if w.gz == nil {
		return w.ResponseWriter.Write(b)
	}
	w.ResponseWriter.WriteHeaderNow()
	return w.gz.Write(b)
}

func (w *gzipResponseWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

func (w *gzipResponseWriter) Flush() {
	if w.gz != nil {
		w.gz.Flush()
	}
	w.ResponseWriter.Flush()
}

func (w *gzipResponseWriter) close() {
	if w.gz == nil {
		return
	}
	w.gz.Close()
	gzipPool.Put(w.gz)
	w.gz = nil
}
