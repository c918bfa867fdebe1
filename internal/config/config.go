package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/tellerworks/teller/internal/accounts"
)

// DefaultPath is where `teller run` looks for configuration.
const DefaultPath = "teller.yaml"

// Config represents the top-level teller.yaml configuration.
type Config struct {
	Bank      BankConfig      `yaml:"bank"`
	Interest  InterestConfig  `yaml:"interest"`
	Accounts  AccountsConfig  `yaml:"accounts"`
	Policy    PolicyConfig    `yaml:"policy"`
	Statement StatementConfig `yaml:"statement"`
	Logging   LoggingConfig   `yaml:"logging"`
	Audit     AuditConfig     `yaml:"audit"`
}

// BankConfig controls how the bank presents itself.
type BankConfig struct {
	Name           string `yaml:"name"`
	CurrencySymbol string `yaml:"currency_symbol"`
}

// InterestConfig holds the savings interest rate.
type InterestConfig struct {
	MonthlyRate string `yaml:"monthly_rate"` // decimal string, e.g. "0.02"
}

// AccountsConfig controls account numbering.
type AccountsConfig struct {
	FirstNumber int `yaml:"first_number"`
}

// PolicyConfig holds the input-handling choices.
type PolicyConfig struct {
	StrictAmounts           bool `yaml:"strict_amounts"`
	AllowDuplicateUsernames bool `yaml:"allow_duplicate_usernames"`
}

// StatementConfig selects how statements are printed.
type StatementConfig struct {
	Format string `yaml:"format"` // "table" or "csv"
}

// LoggingConfig configures the logrus logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// AuditConfig controls the audit trail file. An empty path disables it.
type AuditConfig struct {
	Path string `yaml:"path,omitempty"`
}

// Load reads a teller.yaml file from disk. Fields missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config matching the classic bank's behaviour with
// amount checking switched on.
func Default() *Config {
	return &Config{
		Bank: BankConfig{
			Name:           "Teller Bank",
			CurrencySymbol: "$",
		},
		Interest: InterestConfig{
			MonthlyRate: "0.02",
		},
		Accounts: AccountsConfig{
			FirstNumber: accounts.DefaultFirstNumber,
		},
		Policy: PolicyConfig{
			StrictAmounts:           true,
			AllowDuplicateUsernames: false,
		},
		Statement: StatementConfig{
			Format: accounts.StatementTable,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// InterestRate parses the monthly interest rate and checks it is within
// accounts.CheckAmount bounds.
func (c *Config) InterestRate() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(c.Interest.MonthlyRate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing interest.monthly_rate %q: %w", c.Interest.MonthlyRate, err)
	}
	if err := accounts.CheckAmount(rate); err != nil {
		return decimal.Zero, fmt.Errorf("interest.monthly_rate %q: %w", c.Interest.MonthlyRate, err)
	}
	return rate, nil
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	if rate, err := c.InterestRate(); err != nil {
		errs = append(errs, err)
	} else if rate.IsNegative() {
		errs = append(errs, fmt.Errorf("interest.monthly_rate %s must not be negative", c.Interest.MonthlyRate))
	}
	if c.Accounts.FirstNumber <= 0 {
		errs = append(errs, fmt.Errorf("accounts.first_number %d must be positive", c.Accounts.FirstNumber))
	}
	switch c.Statement.Format {
	case accounts.StatementTable, accounts.StatementCSV:
	default:
		errs = append(errs, fmt.Errorf("statement.format %q must be %q or %q", c.Statement.Format, accounts.StatementTable, accounts.StatementCSV))
	}
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q must be \"text\" or \"json\"", c.Logging.Format))
	}
	return errors.Join(errs...)
}
