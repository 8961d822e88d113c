package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kiesman99/planetize/internal/planetizer"
	"github.com/kiesman99/planetize/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for the planet texture API",
	Long: `Start an HTTP server that turns uploaded photos into planet textures,
bump maps and snapshots.

Only one texture is generated at a time. With --policy reject a request
arriving meanwhile gets 429, with --policy cancel-previous it cancels the
running one.

When a config file is in use, changes to its texture settings apply to
later requests without a restart.

Examples:
  # Start server on default port 8080
  planetize serve

  # Start server on custom port
  planetize serve --port 3000

  # Start server with custom bind address
  planetize serve --bind 0.0.0.0 --port 8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server configuration
	serveCmd.Flags().StringP("bind", "b", "localhost", "bind address")
	serveCmd.Flags().IntP("port", "p", 8080, "port to listen on")
	serveCmd.Flags().Duration("timeout", 60*time.Second, "request timeout")
	serveCmd.Flags().Int64("max-body", server.DefaultMaxBody, "largest accepted upload in bytes")
	serveCmd.Flags().Int("max-height", server.DefaultMaxHeight, "largest texture height a request may ask for")
	serveCmd.Flags().String("policy", planetizer.Reject.String(), "what to do with a request while another runs (reject|cancel-previous)")

	// Bind flags to viper
	viper.BindPFlag("server.bind", serveCmd.Flags().Lookup("bind"))
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("server.timeout", serveCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("server.max-body", serveCmd.Flags().Lookup("max-body"))
	viper.BindPFlag("server.max-height", serveCmd.Flags().Lookup("max-height"))
	viper.BindPFlag("server.policy", serveCmd.Flags().Lookup("policy"))
}

func runServe(cmd *cobra.Command, args []string) error {
	bind := viper.GetString("server.bind")
	port := viper.GetInt("server.port")
	timeout := viper.GetDuration("server.timeout")

	addr := fmt.Sprintf("%s:%d", bind, port)

	policy, err := planetizer.ParsePolicy(viper.GetString("server.policy"))
	if err != nil {
		return err
	}
	opts, err := textureOptions()
	if err != nil {
		return err
	}

	p := planetizer.New(planetizer.Config{
		Texture: opts,
		Policy:  policy,
		Delay:   viper.GetDuration("delay"),
	})

	if viper.ConfigFileUsed() != "" {
		viper.OnConfigChange(func(e fsnotify.Event) {
			opts, err := textureOptions()
			if err == nil {
				err = p.SetOptions(opts)
			}
			if err != nil {
				slog.Warn("ignoring config change", "file", e.Name, "error", err)
				return
			}
			slog.Info("texture options reloaded", "file", e.Name, "height", opts.Height, "filter", opts.Filter)
		})
		viper.WatchConfig()
	}

	apiServer := server.NewServer(version, p, server.Options{
		MaxBody:   viper.GetInt64("server.max-body"),
		MaxSide:   viper.GetInt("max-side"),
		MaxHeight: viper.GetInt("server.max-height"),
	})

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      server.NewRouter(apiServer, timeout),
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}

	// Graceful shutdown
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	go func() {
		<-ctx.Done()

		fmt.Fprintf(cmd.ErrOrStderr(), "\nShutting down server...\n")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	fmt.Fprintf(cmd.ErrOrStderr(), "Starting planetize server on %s (policy %s)\n", addr, policy)
	fmt.Fprintf(cmd.ErrOrStderr(), "Health check: http://%s/api/v1/health\n", addr)
	fmt.Fprintf(cmd.ErrOrStderr(), "Texture endpoint: http://%s/api/v1/texture\n", addr)

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("server error: %v", err)
	}

	return nil
}
