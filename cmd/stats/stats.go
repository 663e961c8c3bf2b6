// Package stats implements the dataset statistics subcommand.
package stats

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aerowise/aerowise-go/internal/conf"
	"github.com/aerowise/aerowise-go/internal/console"
	"github.com/aerowise/aerowise-go/internal/datastore"
)

// Command creates the stats command.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print dataset statistics and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := datastore.Open(settings)
			if err != nil {
				return fmt.Errorf("failed to open dataset: %w", err)
			}
			console.WriteStats(cmd.OutOrStdout(), store.Stats())
			return nil
		},
	}
}
