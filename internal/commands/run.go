package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tellerworks/teller/internal/accounts"
	"github.com/tellerworks/teller/internal/auditlog"
	"github.com/tellerworks/teller/internal/config"
	"github.com/tellerworks/teller/internal/directory"
	"github.com/tellerworks/teller/internal/logging"
	"github.com/tellerworks/teller/internal/menu"
)

func newRunCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start an interactive banking session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSession(cmd, flags)
		},
	}
}

// loadConfig resolves the effective configuration: file (or defaults when
// the default path is absent), then flag overrides, then validation.
func loadConfig(cmd *cobra.Command, flags *globalFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(flags.configPath)
	} else {
		cfg, err = config.LoadOrDefault(flags.configPath)
	}
	if err != nil {
		return nil, err
	}

	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if flags.interestRate != "" {
		cfg.Interest.MonthlyRate = flags.interestRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runSession(cmd *cobra.Command, flags *globalFlags) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	logger, err := logging.Setup(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	rate, err := cfg.InterestRate()
	if err != nil {
		return err
	}

	seq := accounts.NewSequence(cfg.Accounts.FirstNumber,
		accounts.WithStrictAmounts(cfg.Policy.StrictAmounts),
	)
	dir := directory.New(
		directory.WithSequence(seq),
		directory.WithPolicy(directory.Policy{
			AllowDuplicateUsernames: cfg.Policy.AllowDuplicateUsernames,
		}),
		directory.WithLogger(logger),
	)
	trail := auditlog.NewTrail(nil)

	m := menu.New(cmd.InOrStdin(), cmd.OutOrStdout(), dir, menu.Options{
		BankName:        cfg.Bank.Name,
		CurrencySymbol:  cfg.Bank.CurrencySymbol,
		InterestRate:    rate,
		StatementFormat: cfg.Statement.Format,
		Trail:           trail,
		Logger:          logger,
	})
	runErr := m.Run()

	if cfg.Audit.Path != "" {
		entries := trail.Entries()
		if err := auditlog.Append(cfg.Audit.Path, entries); err != nil {
			logger.WithError(err).Error("Run.Audit.Failed")
			if runErr == nil {
				runErr = err
			}
		} else {
			logger.WithField("entries", len(entries)).Info("Run.Audit.Complete")
		}
	}

	return runErr
}
