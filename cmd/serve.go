package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizup/internal/api"
	"github.com/abhisek/quizup/internal/auth"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTPAddr = addr
		}
		if err := cfg.RequireSecret(); err != nil {
			return err
		}

		debug, _ := cmd.Flags().GetBool("debug")
		if !debug {
			gin.SetMode(gin.ReleaseMode)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		cmd.SetContext(ctx)

		d, err := newDeps(cmd, cfg)
		if err != nil {
			return err
		}
		defer d.Close()

		router := api.NewRouter(api.Options{
			Service:     d.svc,
			Issuer:      auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL),
			Metrics:     d.metrics,
			CORSOrigins: cfg.CORSOrigins,
			AccessLog:   debug,
		})

		fmt.Fprintf(os.Stderr, "quizup %s listening on %s\n", version, cfg.HTTPAddr)
		return api.Serve(ctx, cfg.HTTPAddr, router, cfg.ShutdownTimeout)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides QUIZUP_HTTP_ADDR)")
	serveCmd.Flags().Bool("debug", false, "Enable gin debug mode and access logs")
}
