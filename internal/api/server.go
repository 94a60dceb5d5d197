// Package api exposes the aggregated snapshot over HTTP and lets an
// authenticated admin trigger refresh runs.
package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/david/grant-tracker/internal/auth"
	"github.com/david/grant-tracker/internal/config"
	"github.com/david/grant-tracker/internal/ingest"
	"github.com/david/grant-tracker/internal/models"
	"github.com/david/grant-tracker/internal/site"
	"github.com/david/grant-tracker/internal/store"
)

type Server struct {
	Config      config.Config
	Registry    *ingest.Registry
	AuthService *auth.Service
	Archive     *store.Archive
	Echo        *echo.Echo

	// snapshot served to readers; refreshed by background runs
	snapMu  sync.RWMutex
	grants  []models.Grant
	buckets ingest.Buckets

	// background job tracking: one refresh at a time
	jobMu      sync.Mutex
	runningJob *backgroundJob
}

type backgroundJob struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"` // running, completed, failed
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at,omitempty"`
	Result    any       `json:"result,omitempty"`
	Error     string    `json:"error,omitempty"`
}

func NewServer(cfg config.Config, reg *ingest.Registry, authService *auth.Service, archive *store.Archive) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	allowedOrigins := []string{"http://localhost:4200"}
	if extra := os.Getenv("CORS_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				allowedOrigins = append(allowedOrigins, o)
			}
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	s := &Server{
		Config:      cfg,
		Registry:    reg,
		AuthService: authService,
		Archive:     archive,
		Echo:        e,
	}

	// serve the current snapshot from disk, if any
	grants, err := store.Load(cfg.SnapshotPath())
	if err != nil {
		log.Printf("failed to load snapshot: %v", err)
	} else {
		s.setSnapshot(grants)
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.Echo.GET("/health", s.handleHealth)
	s.Echo.Static("/", s.Config.DocsDir)

	api := s.Echo.Group("/api/v1")
	api.GET("/grants", s.handleListGrants)
	api.GET("/grants/buckets", s.handleGetBuckets)
	api.GET("/sources", s.handleGetSources)
	api.GET("/runs", s.handleListRuns)
	api.POST("/auth/login", s.handleLogin)

	admin := api.Group("")
	admin.Use(auth.Middleware)
	admin.POST("/refresh", s.handleRefresh)
	admin.GET("/jobs/:id", s.handleJobStatus)
}

func (s *Server) setSnapshot(grants []models.Grant) {
	ranked := ingest.Rank(grants, time.Now())
	s.snapMu.Lock()
	s.grants = ranked
	s.buckets = ingest.Group(ranked)
	s.snapMu.Unlock()
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListGrants(c echo.Context) error {
	s.snapMu.RLock()
	grants := s.grants
	buckets := s.buckets
	s.snapMu.RUnlock()

	switch c.QueryParam("bucket") {
	case "urgent":
		grants = buckets.Urgent
	case "upcoming":
		grants = buckets.Upcoming
	case "future":
		grants = buckets.Future
	case "":
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown bucket"})
	}

	total := len(grants)
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid limit"})
		}
		if limit < len(grants) {
			grants = grants[:limit]
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"total":  total,
		"grants": grants,
	})
}

func (s *Server) handleGetBuckets(c echo.Context) error {
	s.snapMu.RLock()
	defer s.snapMu.RUnlock()
	return c.JSON(http.StatusOK, s.buckets)
}

func (s *Server) handleGetSources(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Registry.Sources)
}

func (s *Server) handleListRuns(c echo.Context) error {
	if s.Archive == nil {
		return c.JSON(http.StatusOK, []store.RunRecord{})
	}

	limit := 20
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid limit"})
		}
		limit = parsed
	}

	runs, err := s.Archive.RecentRuns(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if runs == nil {
		runs = []store.RunRecord{}
	}
	return c.JSON(http.StatusOK, runs)
}

func (s *Server) handleLogin(c echo.Context) error {
	var req auth.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	resp, err := s.AuthService.Login(req)
	if errors.Is(err, auth.ErrInvalidCreds) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, resp)
}

// handleRefresh starts a full aggregation run in the background and
// returns the job ID immediately. Only one refresh runs at a time.
func (s *Server) handleRefresh(c echo.Context) error {
	s.jobMu.Lock()
	if s.runningJob != nil && s.runningJob.Status == "running" {
		id := s.runningJob.ID
		s.jobMu.Unlock()
		return c.JSON(http.StatusConflict, map[string]string{
			"error": "refresh already running",
			"id":    id,
		})
	}

	job := &backgroundJob{
		ID:        uuid.NewString(),
		Status:    "running",
		StartedAt: time.Now(),
	}
	s.runningJob = job
	s.jobMu.Unlock()

	go s.runRefresh(job)

	return c.JSON(http.StatusAccepted, map[string]string{
		"message": "refresh started",
		"id":      job.ID,
	})
}

func (s *Server) runRefresh(job *backgroundJob) {
	ctx := context.Background()

	finish := func(status string, result any, errMsg string) {
		s.jobMu.Lock()
		job.Status = status
		job.EndedAt = time.Now()
		job.Result = result
		job.Error = errMsg
		s.jobMu.Unlock()
	}

	baseline, err := store.Load(s.Config.SnapshotPath())
	if err != nil {
		finish("failed", nil, err.Error())
		return
	}

	pipeline := ingest.New(s.Config, s.Registry, ingest.NewHTTPFetcher(0))
	res, err := pipeline.Run(ctx, baseline)
	if err != nil {
		finish("failed", nil, err.Error())
		return
	}

	if err := store.Save(s.Config.SnapshotPath(), res.Grants); err != nil {
		finish("failed", nil, err.Error())
		return
	}
	if err := site.Generate(s.Config.DocsDir, s.Config.BaseURL, res, res.StartedAt); err != nil {
		log.Printf("site generation failed: %v", err)
	}
	if s.Archive != nil {
		if err := s.Archive.RecordRun(ctx, res); err != nil {
			log.Printf("failed to archive run: %v", err)
		}
	}

	s.setSnapshot(res.Grants)
	finish("completed", map[string]any{
		"run_id": res.RunID,
		"grants": len(res.Grants),
		"stats":  res.Stats,
	}, "")
}

func (s *Server) handleJobStatus(c echo.Context) error {
	queried := c.Param("id")

	s.jobMu.Lock()
	defer s.jobMu.Unlock()

	job := s.runningJob
	if job == nil || job.ID != queried {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "job not found"})
	}

	resp := map[string]any{
		"id":         job.ID,
		"status":     job.Status,
		"started_at": job.StartedAt,
	}
	if !job.EndedAt.IsZero() {
		resp["ended_at"] = job.EndedAt
		resp["duration"] = job.EndedAt.Sub(job.StartedAt).String()
	}
	if job.Result != nil {
		resp["result"] = job.Result
	}
	if job.Error != "" {
		resp["error"] = job.Error
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) Start(port string) error {
	return s.Echo.Start(":" + port)
}
