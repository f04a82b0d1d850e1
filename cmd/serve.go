package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/inovacc/trendr/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the repository lists as a JSON API",
	Long: `Start an HTTP server exposing the trending and starred lists.

The trending list is fetched once at startup and on POST /api/refresh.
The OpenAPI document is served at /swagger/doc.json with a browsable UI
under /swagger/.

Examples:
  trendr serve
  trendr serve --addr :9000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		rec, err := a.reconciler()
		if err != nil {
			return err
		}

		addr := serveAddr
		if addr == "" {
			addr = a.cfg.Server.Addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// the API reports loading until the first fetch settles
		go func(ctx context.Context) {
			if err := rec.Load(ctx); err != nil {
				a.logger.Error("initial load failed", slog.String("error", err.Error()))
			}
		}(ctx)

		srv := server.New(rec, addr,
			server.WithPinger(a.medium),
			server.WithLogger(a.logger.With(slog.String("component", "server"))),
		)

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s (Ctrl+C to stop)\n", addr)

		return srv.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: server.addr from the config)")
}
