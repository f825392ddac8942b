package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"zetra/internal/domain"
	"zetra/internal/services/identity"
)

const (
	// PassphraseHeader carries the passphrase for sealed import and export.
	PassphraseHeader = "X-Zetra-Passphrase"

	greeting = "ZETRA CORE backend: hello from zetra-server!"

	maxBodySize = 1 << 20
)

// Health is the /health response.
type Health struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

// Server routes HTTP requests to an identity service.
type Server struct {
	ids     domain.IdentityService
	log     zerolog.Logger
	metrics *Metrics
	now     func() time.Time
}

// Option customises a Server.
type Option func(*Server)

// WithLogger sets the access and error logger.
func WithLogger(l zerolog.Logger) Option { return func(s *Server) { s.log = l } }

// WithMetrics replaces the server's metrics.
func WithMetrics(m *Metrics) Option { return func(s *Server) { s.metrics = m } }

// WithClock replaces time.Now for /health timestamps.
func WithClock(now func() time.Time) Option { return func(s *Server) { s.now = now } }

// New returns a Server backed by ids.
func New(ids domain.IdentityService, opts ...Option) *Server {
	s := &Server{ids: ids, log: zerolog.Nop(), now: time.Now}
	for _, o := range opts {
		o(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	return s
}

// Metrics returns the server's metrics.
func (s *Server) Metrics() *Metrics { return s.metrics }

// Router builds the gin engine serving the API.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.accessLog(), s.metrics.Middleware())

	r.GET("/health", s.health)
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, greeting) })
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	v1 := r.Group("/v1/profile")
	v1.GET("", s.current)
	v1.POST("", s.create)
	v1.DELETE("", s.reset)
	v1.POST("/import", s.importProfile)
	v1.GET("/export", s.export)
	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, Health{Status: "ok", Timestamp: s.now().UnixMilli()})
}

func (s *Server) current(c *gin.Context) {
	p, ok, err := s.ids.Current(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	if !ok {
		s.fail(c, domain.ErrNoProfile)
		return
	}
	c.JSON(http.StatusOK, p.View())
}

func (s *Server) create(c *gin.Context) {
	var req domain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		s.fail(c, fmt.Errorf("%w: %v", identity.ErrInvalidRequest, err))
		return
	}
	p, err := s.ids.Create(c.Request.Context(), req)
	s.metrics.observe("create", err)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p.View())
}

func (s *Server) importProfile(c *gin.Context) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)
	p, err := s.ids.Recover(c.Request.Context(), body, c.GetHeader(PassphraseHeader))
	s.metrics.observe("recover", err)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p.View())
}

func (s *Server) export(c *gin.Context) {
	data, filename, err := s.ids.Export(c.Request.Context(), c.GetHeader(PassphraseHeader))
	s.metrics.observe("export", err)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", data)
}

func (s *Server) reset(c *gin.Context) {
	err := s.ids.Reset(c.Request.Context())
	s.metrics.observe("reset", err)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.AbortWithStatusJSON(status, errorBody{Error: identity.Notice(err)})
}

// accessLog records method, path, remote, status, bytes and duration.
func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("remote", c.ClientIP()).
			Int("status", c.Writer.Status()).
			Int("bytes", c.Writer.Size()).
			Dur("duration", time.Since(start)).
			Msg("http")
	}
}
