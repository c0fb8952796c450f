// Command server runs the hello function as an HTTP server. Under Azure
// Functions it acts as a custom handler: the Functions host forwards requests
// to the port named by FUNCTIONS_CUSTOMHANDLER_PORT.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/janisto/hello-function/internal/config"
	"github.com/janisto/hello-function/internal/greeting"
	applog "github.com/janisto/hello-function/internal/platform/logging"
	appmiddleware "github.com/janisto/hello-function/internal/platform/middleware"
	"github.com/janisto/hello-function/internal/platform/respond"
	"github.com/janisto/hello-function/internal/routes"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(context.Background(), "logger init error", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		applog.LogError(context.Background(), "server failed", err)
		os.Exit(1)
	}
}

type flagValues struct {
	envFile     string
	port        int
	environment string
	routePrefix string
}

func newRootCmd() *cobra.Command {
	var fv flagValues
	cmd := &cobra.Command{
		Use:           "server",
		Short:         "Serve the hello function over HTTP",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Flags(), fv)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&fv.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	flags.IntVar(&fv.port, "port", config.DefaultPort, "listen port (overrides FUNCTIONS_CUSTOMHANDLER_PORT and PORT)")
	flags.StringVar(&fv.environment, "environment", "", "environment name reported in responses (overrides AZURE_FUNCTIONS_ENVIRONMENT)")
	flags.StringVar(&fv.routePrefix, "route-prefix", "", "path prefix for the hello route, e.g. /api (overrides ROUTE_PREFIX)")
	return cmd
}

// loadConfig reads the environment and applies flags the user set explicitly.
func loadConfig(flags *pflag.FlagSet, fv flagValues) (config.Config, error) {
	cfg, err := config.Load(fv.envFile)
	if err != nil {
		return config.Config{}, err
	}
	if flags.Changed("port") {
		cfg.Port = fv.port
	}
	if flags.Changed("environment") && fv.environment != "" {
		cfg.Environment = fv.environment
	}
	if flags.Changed("route-prefix") {
		cfg.RoutePrefix = config.NormalizePrefix(fv.routePrefix)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newHandler(cfg config.Config) *greeting.Handler {
	return greeting.New(cfg.Greeting(), greeting.WithLogger(greeting.LoggerFunc(applog.LogInfo)))
}

func newRouter(cfg config.Config, h *greeting.Handler) http.Handler {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	router.Use(
		appmiddleware.Security(routes.DocsPath),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP trusts X-Forwarded-For; the Functions host or load balancer sits in front.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(1<<20),
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	api := routes.NewAPI(router, Version)
	routes.Register(router, api, h, cfg.RoutePrefix, Version)
	return router
}

func newServer(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}
}

// run serves until ctx is cancelled or the listener fails, then shuts down gracefully.
func run(ctx context.Context, cfg config.Config) error {
	srv := newServer(cfg, newRouter(cfg, newHandler(cfg)))

	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(ctx, "server listening",
			zap.String("addr", srv.Addr),
			zap.String("environment", cfg.Environment),
			zap.String("routePrefix", cfg.RoutePrefix),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	select {
	case err := <-listenErr:
		applog.LogError(ctx, "listen failed", err, zap.String("addr", srv.Addr))
		return err
	case <-ctx.Done():
		applog.LogInfo(context.Background(), "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		applog.LogError(shutdownCtx, "server shutdown error", err)
		return err
	}
	applog.LogInfo(context.Background(), "server exited")
	return nil
}
