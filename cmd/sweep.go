package main

import (
	"ishop/internal/jobs"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run one orphan blob reconciliation pass and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, closeApp, err := newApp(cmd.Context(), cfg, log, nil)
		if err != nil {
			return err
		}
		defer closeApp()

		removed, err := jobs.NewOrphanSweeper(a.store, a.imageRepo, cfg.Jobs.OrphanGracePeriod, log, nil).Sweep(cmd.Context())
		if err != nil {
			return err
		}
		log.Info("sweep finished", zap.Int("removed", removed))
		return nil
	},
}
