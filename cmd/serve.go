package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"prompt-editor/api"
	"prompt-editor/config"
	"prompt-editor/document"
	"prompt-editor/export"
	"prompt-editor/library"
	"prompt-editor/middleware"
	"prompt-editor/workspace"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser editor",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ln, err := net.Listen("tcp", loaded.Server.Addr)
		if err != nil {
			return err
		}
		return serve(ctx, loaded, ln, staticFS)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "address to listen on")
	serveCmd.Flags().String("export-dir", "exports", "directory for saved exports")
	serveCmd.Flags().String("seed", "", "keyword file loaded into every new workspace")
	serveCmd.Flags().Duration("workspace-ttl", 2*time.Hour, "close workspaces idle for this long (0 keeps them)")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("export.dir", serveCmd.Flags().Lookup("export-dir"))
	viper.BindPFlag("workspace.seed_file", serveCmd.Flags().Lookup("seed"))
	viper.BindPFlag("workspace.ttl", serveCmd.Flags().Lookup("workspace-ttl"))
	rootCmd.AddCommand(serveCmd)
}

// serve runs the HTTP server on ln until ctx is done, then shuts it down
// gracefully. The rate limiter cleanup runs alongside in the same group.
func serve(ctx context.Context, cfg *config.Config, ln net.Listener, static fs.FS) error {
	seed, err := loadSeed(cfg.Workspace.SeedFile)
	if err != nil {
		return err
	}
	exports, err := export.NewWriter(cfg.Export.Dir)
	if err != nil {
		return fmt.Errorf("open export dir: %w", err)
	}
	manager := workspace.NewManager(cfg.Workspace.TTL, cfg.Workspace.CleanupInterval)
	defer manager.Close()

	limiter := middleware.NewRateLimiter(cfg.Rate.RequestsPerSecond, cfg.Rate.Burst)
	srv := &http.Server{
		Handler:           api.RegisterRoutes(manager, exports, static, api.Options{Seed: seed, Limiter: limiter}),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("starting server", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return limiter.Run(gctx, cfg.Rate.CleanupInterval, cfg.Rate.MaxIdleTime)
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// loadSeed reads the keyword file new workspaces start from. An empty path
// means no seed.
func loadSeed(path string) (*library.Library, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	f, err := document.ParseKeywordFile(data)
	if err != nil {
		return nil, fmt.Errorf("seed %s: %w", path, err)
	}
	return f.Library, nil
}
