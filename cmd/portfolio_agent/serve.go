package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/portfolio-builder/internal/server"
	"github.com/jonathan/portfolio-builder/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes /generate, /update, and /publish.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	jwtConfig, err := cfg.JWT()
	if err != nil {
		return fmt.Errorf("invalid auth configuration: %w", err)
	}

	rateConfig := ratelimit.LoadConfig()
	var store ratelimit.Store
	if rateConfig.Enabled && rateConfig.RedisURL != "" {
		store, err = ratelimit.NewRedisStore(ctx, rateConfig.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect rate limit store: %w", err)
		}
		log.Printf("[rate-limit] using redis store")
	}

	svc, client, err := newService(ctx, cfg)
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return err
	}

	// Server.Close releases the completion client and limiter store on shutdown
	srv, err := server.New(server.Config{
		Port:           cfg.Port,
		Service:        svc,
		RateLimit:      rateConfig,
		RateLimitStore: store,
		JWT:            jwtConfig,
		PublishBaseURL: cfg.PublishBaseURL,
	})
	if err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
