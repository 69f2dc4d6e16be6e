package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tableflip.dev/liftlog/pkg/app"
	"tableflip.dev/liftlog/pkg/entry"
	"tableflip.dev/liftlog/pkg/logger"
)

// Error messages returned in {"error": ...} bodies.
const (
	msgDateRequired    = "date parameter required (YYYY-MM-DD)"
	msgCreateRequired  = "date, weight, reps and sets are required"
	msgUpdateRequired  = "weight, reps and sets are required"
	msgInvalidBody     = "invalid JSON body"
	msgEntryNotFound   = "Entry not found"
	msgInternalFailure = "internal error"
)

// Server exposes an app.Service over HTTP.
type Server struct {
	Service *app.Service
	Logger  *zap.Logger
}

type createRequest struct {
	Date string `json:"date"`
	entry.Fields
}

type deleteResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// Routes builds the gin engine.
func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLog())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/entries", s.listEntries)
		api.POST("/entries", s.createEntry)
		api.PUT("/entries/:date/:id", s.updateEntry)
		api.DELETE("/entries/:date/:id", s.deleteEntry)
		api.GET("/days", s.listDays)
	}
	return r
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log().Info("http",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}

// GET /api/entries?date=YYYY-MM-DD
func (s *Server) listEntries(c *gin.Context) {
	day := c.Query("date")
	if day == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgDateRequired})
		return
	}
	entries, err := s.Service.Entries(c.Request.Context(), day)
	if err != nil {
		s.fail(c, err, msgDateRequired)
		return
	}
	if entries == nil {
		entries = []*entry.Entry{}
	}
	c.JSON(http.StatusOK, entries)
}

// POST /api/entries
func (s *Server) createEntry(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.log().Debug("create entry bind error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}
	if req.Date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgCreateRequired})
		return
	}
	e, err := s.Service.Add(c.Request.Context(), req.Date, req.Fields)
	if err != nil {
		s.fail(c, err, msgCreateRequired)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// PUT /api/entries/:date/:id
func (s *Server) updateEntry(c *gin.Context) {
	var f entry.Fields
	if err := c.ShouldBindJSON(&f); err != nil {
		s.log().Debug("update entry bind error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}
	e, err := s.Service.Update(c.Request.Context(), c.Param("date"), c.Param("id"), f)
	if err != nil {
		s.fail(c, err, msgUpdateRequired)
		return
	}
	c.JSON(http.StatusOK, e)
}

// DELETE /api/entries/:date/:id
func (s *Server) deleteEntry(c *gin.Context) {
	id := c.Param("id")
	if err := s.Service.Delete(c.Request.Context(), c.Param("date"), id); err != nil {
		s.fail(c, err, msgDateRequired)
		return
	}
	c.JSON(http.StatusOK, deleteResponse{Success: true, ID: id})
}

// GET /api/days
func (s *Server) listDays(c *gin.Context) {
	days, err := s.Service.Days(c.Request.Context())
	if err != nil {
		s.fail(c, err, "")
		return
	}
	if days == nil {
		days = []string{}
	}
	c.JSON(http.StatusOK, days)
}

// fail maps service errors to status codes. missing is the message used for
// validation failures of the calling route.
func (s *Server) fail(c *gin.Context, err error, missing string) {
	switch {
	case errors.Is(err, app.ErrInvalidDay):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgDateRequired})
	case errors.Is(err, entry.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": missing})
	case errors.Is(err, app.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgEntryNotFound})
	default:
		s.log().Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternalFailure})
	}
}

func (s *Server) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, cfg *Config) error {
	ln, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln, cfg)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener, cfg *Config) error {
	if !logger.IsDevelopment(cfg.Env) {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Handler:      s.Routes(),
		IdleTimeout:  cfg.IdleTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log().Info("starting server", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	s.log().Info("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
