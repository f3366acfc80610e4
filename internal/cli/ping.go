package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	appcfg "github.com/Abhishekkjainn/smartslot-api/internal/infra/config"
	"github.com/Abhishekkjainn/smartslot-api/internal/platform/di"
)

func newPingCmd() *cobra.Command {
	var backend string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check that the configured venue store is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appcfg.Load()
			if backend != "" {
				cfg.StoreBackend = backend
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			c, err := di.NewContainer(ctx, cfg)
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.Ping(ctx); err != nil {
				return fmt.Errorf("ping %s: %w", cfg.StoreBackend, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s ok\n", cfg.StoreBackend)
			return nil
		},
	}

	cmd.Flags().StringVar(&backend, "backend", "", "override STORE_BACKEND (firestore, postgres, memory)")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "overall timeout")
	return cmd
}
