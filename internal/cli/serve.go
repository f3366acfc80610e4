package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpin "github.com/Abhishekkjainn/smartslot-api/internal/adapters/in/http"
	appcfg "github.com/Abhishekkjainn/smartslot-api/internal/infra/config"
	"github.com/Abhishekkjainn/smartslot-api/internal/platform/di"
)

func newServeCmd() *cobra.Command {
	var port, backend string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appcfg.Load()
			if port != "" {
				cfg.Port = port
			}
			if backend != "" {
				cfg.StoreBackend = backend
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return serve(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "override PORT")
	cmd.Flags().StringVar(&backend, "backend", "", "override STORE_BACKEND (firestore, postgres, memory)")
	return cmd
}

func serve(ctx context.Context, cfg *appcfg.Config) error {
	// /healthz answers even when the store fails to come up.
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if c, err := di.NewContainer(ctx, cfg); err != nil {
		log.Printf("[boot] WARN: di init failed: %v (serving /healthz only)", err)
	} else {
		defer c.Close()
		mux.Handle("/", httpin.NewRouter(c.RouterDeps()))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[boot] listening on :%s", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Printf("[boot] shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Printf("[boot] server stopped")
	return nil
}
