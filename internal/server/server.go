// Copyright (c) 2026 NodeCanvas Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package server exposes the editing agent over HTTP. A client enqueues
// a job with POST /ai/assistant/jobs and follows its progress on
// GET /ai/assistant/jobs/:id/stream as server-sent events.
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nodecanvas/scenepatch/internal/agent"
	"github.com/nodecanvas/scenepatch/pkg/types"
)

// Runner executes one editing job. *agent.Agent satisfies it.
type Runner interface {
	Run(ctx context.Context, req agent.Request, emit agent.Emitter) (*agent.Result, error)
}

// Config configures the HTTP server.
type Config struct {
	Addr       string   // Listen address, e.g. ":8080"
	APIKeys    []string // Accepted bearer keys; empty disables auth
	JobTimeout time.Duration
	JobTTL     time.Duration // How long a finished job stays claimable
}

// Server routes job requests to a Runner and streams their step events.
type Server struct {
	cfg    Config
	runner Runner
	jobs   *jobStore
}

func New(runner Runner, cfg Config) *Server {
	if cfg.JobTimeout == 0 {
		cfg.JobTimeout = 5 * time.Minute
	}
	if cfg.JobTTL == 0 {
		cfg.JobTTL = 10 * time.Minute
	}
	return &Server{cfg: cfg, runner: runner, jobs: newJobStore()}
}

// Router builds the gin engine with CORS, auth, and the job routes.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "Content-Type"},
	}))

	api := router.Group("/ai/assistant", s.requireKey)
	api.POST("/jobs", s.createJob)
	api.GET("/jobs/:id/stream", s.streamJob)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.Addr, Handler: s.Router()}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// requireKey rejects requests whose bearer token is not a configured
// key. With no keys configured, every request passes.
func (s *Server) requireKey(c *gin.Context) {
	if len(s.cfg.APIKeys) == 0 {
		c.Next()
		return
	}

	auth := c.GetHeader("Authorization")
	token := strings.TrimPrefix(auth, "Bearer ")
	if token != auth {
		for _, key := range s.cfg.APIKeys {
			if token == key {
				c.Next()
				return
			}
		}
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing API key"})
}

// jobRequest is the POST /jobs body.
type jobRequest struct {
	UserQuery string                `json:"user_query" binding:"required"`
	Node      *types.NodeDefinition `json:"node,omitempty"`
	Scene     *types.Scene          `json:"scene,omitempty"`
}

// createJob enqueues a job and returns its id. The job runs in the
// background; events accumulate in its channel until a client streams
// them.
func (s *Server) createJob(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, events := s.jobs.create()

	go s.runJob(id, events, agent.Request{
		UserQuery: req.UserQuery,
		Node:      req.Node,
		Scene:     req.Scene,
	})

	c.JSON(http.StatusAccepted, gin.H{"job_id": id})
}

// runJob executes the agent and translates its outcome into terminal
// events. The channel is buffered; if it fills, further step events are
// dropped rather than blocking the agent, and terminal events evict the
// oldest buffered step so they always land. A finished job that no
// client claims within JobTTL is evicted from the store.
func (s *Server) runJob(id string, events chan types.StepEvent, req agent.Request) {
	defer func() {
		close(events)
		time.AfterFunc(s.cfg.JobTTL, func() { s.jobs.remove(id) })
	}()

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.JobTimeout)
	defer cancel()

	emit := func(e types.StepEvent) {
		select {
		case events <- e:
		default:
		}
	}

	result, err := s.runner.Run(ctx, req, emit)
	if err != nil {
		sendTerminal(events, types.StepEvent{Step: "error", Content: err.Error()})
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		sendTerminal(events, types.StepEvent{Step: "error", Content: err.Error()})
		return
	}
	sendTerminal(events, types.StepEvent{Step: "result", Content: string(payload)})
	sendTerminal(events, types.StepEvent{Step: "done", Content: ""})
}

// sendTerminal delivers an event that must not be lost. When the buffer
// is full it drops the oldest buffered step event to make room; runJob is
// the only writer, so the loop always terminates.
func sendTerminal(events chan types.StepEvent, e types.StepEvent) {
	for {
		select {
		case events <- e:
			return
		default:
		}
		select {
		case <-events:
		default:
		}
	}
}

// streamJob replays a job's events as SSE until the job finishes or the
// client disconnects. A finished stream removes the job.
func (s *Server) streamJob(c *gin.Context) {
	id := c.Param("id")
	events, ok := s.jobs.get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown job id"})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, open := <-events:
			if !open {
				s.jobs.remove(id)
				return false
			}
			c.SSEvent("message", event)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
