// Package support implements the diagnostics subcommand: it dumps the
// effective configuration and a dataset summary for bug reports.
package support

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aerowise/aerowise-go/internal/conf"
	"github.com/aerowise/aerowise-go/internal/datastore"
)

const redactedValue = "[REDACTED]"

// Command creates the support command.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "support",
		Short: "Print the effective configuration and dataset summary",
		Long:  "Dump the resolved configuration (secrets redacted) and dataset counts to attach to a bug report.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSupport(cmd, settings)
		},
	}
}

func runSupport(cmd *cobra.Command, settings *conf.Settings) error {
	out := cmd.OutOrStdout()

	redacted := *settings
	if redacted.LLM.APIKey != "" {
		redacted.LLM.APIKey = redactedValue
	}

	yamlData, err := yaml.Marshal(&redacted)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	fmt.Fprintln(out, "# Effective configuration")
	fmt.Fprint(out, string(yamlData))
	fmt.Fprintln(out)

	store, err := datastore.Open(settings)
	if err != nil {
		return fmt.Errorf("failed to open dataset: %w", err)
	}
	st := store.Stats()

	fmt.Fprintln(out, "# Dataset summary")
	fmt.Fprintf(out, "species: %d (birds: %d, plants: %d)\n", st.Species, st.BirdSpecies, st.PlantSpecies)
	fmt.Fprintf(out, "observations: %d\n", st.Observations)
	fmt.Fprintf(out, "zones: %d\n", st.Zones)
	fmt.Fprintf(out, "incidents: %d (high severity: %d)\n", st.Incidents, st.HighSeverityIncidents)
	return nil
}
