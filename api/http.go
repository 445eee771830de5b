package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Routes mounts the handler for POST and OPTIONS on each path.
func (h *Handler) Routes(r gin.IRoutes, paths ...string) {
	for _, path := range paths {
		r.POST(path, h.serve)
		r.OPTIONS(path, h.serve)
	}
}

// NewRouter returns a gin engine serving the handler on the configured paths.
func NewRouter(h *Handler, paths ...string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), access(h.logger))

	h.Routes(r, paths...)

	return r
}

func (h *Handler) serve(c *gin.Context) {
	var rs Response

	if body, err := c.GetRawData(); err != nil {
		rs = h.failed(h.logger, fmt.Errorf("Unable to read request body (%w)", err))
	} else {
		rs = h.Handle(c.Request.Context(), Request{
			Method: c.Request.Method,
			Header: c.Request.Header,
			Body:   body,
		})
	}

	for k, v := range rs.Headers {
		c.Header(k, v)
	}

	c.Data(rs.StatusCode, rs.Headers["Content-Type"], rs.Body)
}

func access(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		if c.Writer.Status() == http.StatusNotFound {
			logger.Warn("not found",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Duration("duration", time.Since(start)))
		}
	}
}
