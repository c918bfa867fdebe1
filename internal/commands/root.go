package commands

import (
	"github.com/spf13/cobra"

	"github.com/tellerworks/teller/internal/buildinfo"
	"github.com/tellerworks/teller/internal/config"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath   string
	logLevel     string
	interestRate string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
// Running it without a subcommand starts an interactive session.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "teller",
		Short:   "In-memory banking at the terminal",
		Version: buildinfo.String(),
		Args:    cobra.NoArgs,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSession(cmd, flags)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", config.DefaultPath, "path to teller.yaml")
	pf.StringVar(&flags.logLevel, "log-level", "", "override logging.level")
	pf.StringVar(&flags.interestRate, "interest-rate", "", "override interest.monthly_rate")

	rootCmd.AddCommand(newRunCommand(flags))
	rootCmd.AddCommand(newConfigCommand(flags))

	return rootCmd
}
