package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aerowise/aerowise-go/cmd/ask"
	"github.com/aerowise/aerowise-go/cmd/chat"
	"github.com/aerowise/aerowise-go/cmd/stats"
	"github.com/aerowise/aerowise-go/cmd/support"
	"github.com/aerowise/aerowise-go/internal/conf"
)

// RootCommand creates and returns the root command with all subcommands
// attached.
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "aerowise",
		Short: "AeroWise airport biodiversity assistant CLI",
	}

	if err := setupFlags(rootCmd, settings); err != nil {
		cobra.CheckErr(err)
	}

	rootCmd.AddCommand(
		chat.Command(settings),
		ask.Command(settings),
		stats.Command(settings),
		support.Command(settings),
	)

	return rootCmd
}

// setupFlags configures the global flags for the root command and binds them
// to viper so config file, environment and flags stay in sync.
func setupFlags(cmd *cobra.Command, settings *conf.Settings) error {
	cmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	cmd.PersistentFlags().StringVar(&settings.Dataset.Path, "dataset", viper.GetString("dataset.path"), "Directory holding the dataset JSON files (empty for the built-in sample)")
	cmd.PersistentFlags().BoolVar(&settings.LLM.Enabled, "llm", viper.GetBool("llm.enabled"), "Answer with the hosted model instead of the rule agent")

	if err := viper.BindPFlags(cmd.PersistentFlags()); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}
	return nil
}
