// Package api exposes the quiz service over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/abhisek/quizup/internal/auth"
	"github.com/abhisek/quizup/internal/metrics"
	"github.com/abhisek/quizup/internal/quiz"
	"github.com/abhisek/quizup/internal/store"
)

// Options configures the router.
type Options struct {
	Service *quiz.Service
	Issuer  *auth.Issuer

	// Metrics enables the Prometheus middleware and /metrics. Nil disables both.
	Metrics *metrics.Metrics

	// CORSOrigins lists allowed origins; "*" allows any. Empty disables CORS.
	CORSOrigins []string

	// AccessLog enables gin's request logger.
	AccessLog bool
}

type handler struct {
	svc *quiz.Service
}

// NewRouter builds the gin engine with all routes.
func NewRouter(opts Options) *gin.Engine {
	r := gin.New()
	if opts.AccessLog {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(corsConfig(opts.CORSOrigins)))
	}
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})

	h := &handler{svc: opts.Service}
	teacher := auth.RequireRole(store.RoleTeacher)
	student := auth.RequireRole(store.RoleStudent)
	admin := auth.RequireRole(store.RoleAdmin)

	api := r.Group("/api", auth.RequireAuth(opts.Issuer))
	{
		api.GET("/me", h.me)

		api.POST("/quizzes", teacher, h.createQuiz)
		api.POST("/quizzes/generate", teacher, h.generateQuiz)
		api.GET("/quizzes/:id", h.getQuiz)
		api.POST("/quizzes/:id/assign", teacher, h.assignQuiz)
		api.GET("/quizzes/:id/results", teacher, h.quizResults)

		api.POST("/practice-quizzes", student, h.practiceQuiz)
		api.POST("/submissions", student, h.submit)

		api.GET("/results", h.myResults)
		api.GET("/results/:id", h.result)

		api.GET("/student/assigned-quizzes", student, h.assignedQuizzes)

		api.GET("/teacher/dashboard", teacher, h.dashboard)
		api.GET("/teacher/students", teacher, h.students)
		api.POST("/teacher/students", teacher, h.linkStudent)

		api.GET("/leaderboard", h.leaderboard)

		api.GET("/admin/users", admin, h.users)
		api.POST("/admin/users/:id/role", admin, h.updateRole)
	}
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			cfg.AllowCredentials = false
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}

// Serve runs the router until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, h http.Handler, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return fmt.Errorf("listen on %s: %w", addr, err)
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
