package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arthur-debert/taxostore/api"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func (cli *CLI) newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog as a JSON HTTP API",
		Long: `Serve the catalog over HTTP. Routes:

  GET    /api/{literature,taxonomy,samples}[?search=q]
  GET    /api/{literature,taxonomy,samples}/{id}
  POST   /api/{literature,taxonomy,samples}
  DELETE /api/{literature,taxonomy,samples}/{id}
  GET    /api/taxonomy/{id}/literature, /api/taxonomy/{id}/parent
  GET    /api/samples/{id}/taxonomy
  POST   /api/literature/ris
  GET    /api/generate-id/{kind}
  GET    /api/stats, /api/check, /healthz, /metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := cli.openCatalog()
			if err != nil {
				return err
			}

			v := cli.viperInst
			server := api.NewServer(cat,
				api.WithLogger(cli.logger),
				api.WithRateLimit(v.GetFloat64("serve.rate-limit"), v.GetInt("serve.rate-burst")),
				api.WithStaticDir(v.GetString("serve.static")),
			)
			httpServer := &http.Server{
				Addr:              v.GetString("serve.addr"),
				Handler:           server.Routes(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				cli.logger.Info("http server listening", "addr", httpServer.Addr, "data_dir", cat.Config().DataDir)
				errCh <- httpServer.ListenAndServe()
			}()
			fmt.Fprintf(cmd.ErrOrStderr(), "Serving %s on %s\n", cat.Config().DataDir, httpServer.Addr)

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return WrapError("serve", err)
			case <-ctx.Done():
			}

			cli.logger.Info("shutting down http server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return WrapError("shut down server", err)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.String("addr", ":8000", "Listen address")
	f.Float64("rate-limit", 0, "Requests per second allowed before 429 (0 disables)")
	f.Int("rate-burst", 10, "Burst size for --rate-limit")
	f.String("static", "", "Directory of static files to serve under /")
	for _, flag := range []string{"addr", "rate-limit", "rate-burst", "static"} {
		_ = cli.viperInst.BindPFlag("serve."+flag, f.Lookup(flag))
	}
	return cmd
}
