package main

import (
	"ishop/pkg/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate <up|down|version|force> [version]",
	Short:     "Apply or roll back the catalog schema",
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: []string{"up", "down", "version", "force"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return database.RunMigrate(log, cfg.Database.URL, database.MigrationsFS, args[0], args[1:])
	},
}
