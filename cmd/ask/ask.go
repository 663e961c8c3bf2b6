// Package ask implements the one-shot question subcommand.
package ask

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aerowise/aerowise-go/internal/conf"
	"github.com/aerowise/aerowise-go/internal/console"
	"github.com/aerowise/aerowise-go/internal/datastore"
)

// Command creates the ask command: answer a single question and exit.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question]",
		Short: "Answer a single question and exit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, settings, strings.Join(args, " "))
		},
	}
}

func runAsk(cmd *cobra.Command, settings *conf.Settings, question string) error {
	store, err := datastore.Open(settings)
	if err != nil {
		return fmt.Errorf("failed to open dataset: %w", err)
	}

	answerer, err := console.NewAnswerer(store, settings)
	if err != nil {
		return fmt.Errorf("failed to build answerer: %w", err)
	}

	resp, err := answerer.Answer(cmd.Context(), question)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, resp.Answer)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "[Type: %s | Confidence: %.0f%% | Time: %.0fms]\n",
		resp.QueryType, resp.Confidence*100, resp.ExecutionTimeMs)
	return nil
}
