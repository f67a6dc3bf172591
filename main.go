package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"star-race-server/config"
	game "star-race-server/src"
	api "star-race-server/src/api"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var port, grpcPort, envFile string

	cmd := &cobra.Command{
		Use:          "star-race-server",
		Short:        "Authoritative real-time server for the star race game",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadEnvFile(envFile); err != nil {
				return err
			}
			cfg := config.Load()
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("grpc-port") {
				cfg.GRPCPort = grpcPort
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "HTTP/WebSocket listen port (overrides PORT)")
	cmd.Flags().StringVar(&grpcPort, "grpc-port", "", "gRPC health port, empty disables (overrides GRPC_PORT)")
	cmd.Flags().StringVar(&envFile, "env-file", "", "env file to load before reading configuration (default .env if present)")
	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	// Bind first: failing to listen is the only fatal runtime error.
	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr(), err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Core game server
	s := game.NewGameServer(cfg.Game,
		game.WithSendBuffer(cfg.SendBuffer),
		game.WithAllowedOrigins(cfg.AllowedOrigins),
	)
	loopDone := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(loopDone)
	}()

	var healthSvc *api.HealthService
	if cfg.GRPCPort != "" {
		grpcLn, err := net.Listen("tcp", ":"+cfg.GRPCPort)
		if err != nil {
			ln.Close()
			return fmt.Errorf("listen grpc :%s: %w", cfg.GRPCPort, err)
		}
		healthSvc = api.NewHealthService()
		healthSvc.SetServing(true)
		go func() {
			if err := healthSvc.Serve(grpcLn); err != nil {
				log.Printf("gRPC health server stopped: %v", err)
			}
		}()
		log.Printf("gRPC health service on :%s", cfg.GRPCPort)
	}

	r := chi.NewRouter()
	r.Mount("/api", api.NewAPIRouter(cfg, s))
	r.HandleFunc("/ws", s.HandleConnections)
	if cfg.StaticDir != "" {
		static, err := game.StaticFileServer(cfg.StaticDir, "/index.html")
		if err != nil {
			log.Printf("[WARN] Static client disabled: %v", err)
		} else {
			r.Handle("/*", static)
		}
	}

	srv := &http.Server{
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	serveErr := make(chan error, 1)
	go func() {
		log.Printf("Server started on %s (ws endpoint: /ws)", cfg.Addr())
		serveErr <- srv.Serve(ln)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Println("Shutdown signal received.")
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("http server: %w", err)
			log.Printf("HTTP server error: %v", err)
		}
	}

	// Stop ticking and close sessions before draining the listeners.
	if healthSvc != nil {
		healthSvc.SetServing(false)
	}
	cancel()
	<-loopDone

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown error: %v", err)
	}
	if healthSvc != nil {
		healthSvc.Stop()
	}
	log.Println("Server stopped.")
	return runErr
}
