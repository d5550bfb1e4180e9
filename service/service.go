package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/invoiceflow/site/api"
	"github.com/invoiceflow/site/config"
	"github.com/invoiceflow/site/pages"
	"github.com/yaoapp/kun/log"
)

// Server events
const (
	READY uint8 = iota
	CLOSED
	ERROR
)

// Server the running HTTP server
type Server struct {
	http     *http.Server
	listener net.Listener
	event    chan uint8
	ready    bool
	timeout  time.Duration
	mu       sync.RWMutex
}

// Router the site router, pages at the root and the JSON endpoints under /api
func Router(cfg config.Config) (*gin.Engine, error) {
	site, err := pages.New(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(Middlewares...)
	router.Use(gin.CustomRecovery(recovered), withSecurityHeaders)
	if cfg.Gzip {
		router.Use(withGzip)
	}

	guards := Guards(cfg)
	group := router.Group("/api", guards["cross-origin"], guards["json-body"])
	group.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	api.Attach(group)

	site.Attach(router)
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "not found"})
			return
		}
		site.NotFound(c)
	})
	return router, nil
}

// Start listen on the configured address and serve in the background,
// READY is sent on Event() once the listener is open.
func Start(cfg config.Config) (*Server, error) {
	router, err := Router(cfg)
	if err != nil {
		return nil, err
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	srv := &Server{
		http: &http.Server{
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		listener: listener,
		event:    make(chan uint8, 2),
		timeout:  time.Duration(cfg.Timeout) * time.Second,
	}

	go srv.serve(cfg.Cert, cfg.Key)
	return srv, nil
}

func (srv *Server) serve(cert string, key string) {
	srv.mu.Lock()
	srv.ready = true
	srv.mu.Unlock()
	srv.event <- READY

	var err error
	if cert != "" && key != "" {
		err = srv.http.ServeTLS(srv.listener, cert, key)
	} else {
		err = srv.http.Serve(srv.listener)
	}

	srv.mu.Lock()
	srv.ready = false
	srv.mu.Unlock()

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("[service] %s", err.Error())
		srv.event <- ERROR
		return
	}
	srv.event <- CLOSED
}

// Event the server events channel
func (srv *Server) Event() <-chan uint8 {
	return srv.event
}

// Ready the server is accepting connections
func (srv *Server) Ready() bool {
	srv.mu.RLock()
	defer srv.mu.RUnlock()
	return srv.ready
}

// Port the listening port
func (srv *Server) Port() (int, error) {
	addr, ok := srv.listener.Addr().(*net.TCPAddr)
	if !ok {
		return 0, fmt.Errorf("unexpected listener address %s", srv.listener.Addr().String())
	}
	return addr.Port, nil
}

// Stop shut the server down, in-flight requests finish until ctx is done
func (srv *Server) Stop(ctx context.Context) error {
	return srv.http.Shutdown(ctx)
}

// Stop shut the server down within the configured timeout
func Stop(srv *Server) error {
	if srv == nil {
		return nil
	}
	timeout := srv.timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		log.Error("[service] stop: %s", err.Error())
		return err
	}
	log.Info("[service] stopped")
	return nil
}
