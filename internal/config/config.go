package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Google   GoogleConfig   `yaml:"google" mapstructure:"google"`
	Jira     JiraConfig     `yaml:"jira" mapstructure:"jira"`
	Fetch    FetchConfig    `yaml:"fetch" mapstructure:"fetch"`
	Lookup   LookupConfig   `yaml:"lookup" mapstructure:"lookup"`
	Snapshot SnapshotConfig `yaml:"snapshot" mapstructure:"snapshot"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the run-history database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// GoogleConfig holds spreadsheet and document-store API settings. Both
// services share one OAuth bearer token.
type GoogleConfig struct {
	Token               string  `yaml:"token" mapstructure:"token"`
	RosterSpreadsheetID string  `yaml:"roster_spreadsheet_id" mapstructure:"roster_spreadsheet_id"`
	RosterSheet         string  `yaml:"roster_sheet" mapstructure:"roster_sheet"`
	SheetsBaseURL       string  `yaml:"sheets_base_url" mapstructure:"sheets_base_url"`
	DriveBaseURL        string  `yaml:"drive_base_url" mapstructure:"drive_base_url"`
	RateLimit           float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// JiraConfig holds tracker credentials and submission policy.
type JiraConfig struct {
	BaseURL          string `yaml:"base_url" mapstructure:"base_url"`
	Email            string `yaml:"email" mapstructure:"email"`
	Token            string `yaml:"token" mapstructure:"token"`
	ProjectKey       string `yaml:"project_key" mapstructure:"project_key"`
	IssueTypeID      string `yaml:"issue_type_id" mapstructure:"issue_type_id"`
	MaxIssues        int    `yaml:"max_issues" mapstructure:"max_issues"`
	RetryAttempts    int    `yaml:"retry_attempts" mapstructure:"retry_attempts"`
	RetryBackoffSecs int    `yaml:"retry_backoff_secs" mapstructure:"retry_backoff_secs"`
	ClientDelaySecs  int    `yaml:"client_delay_secs" mapstructure:"client_delay_secs"`
}

// FetchConfig configures the content plan fetch stage.
type FetchConfig struct {
	SheetName    string `yaml:"sheet_name" mapstructure:"sheet_name"`
	MinDelaySecs int    `yaml:"min_delay_secs" mapstructure:"min_delay_secs"`
	MaxDelaySecs int    `yaml:"max_delay_secs" mapstructure:"max_delay_secs"`
}

// LookupConfig points at an optional mapping tables file. Empty means the
// built-in tables.
type LookupConfig struct {
	TablesPath string `yaml:"tables_path" mapstructure:"tables_path"`
}

// SnapshotConfig configures the per-run JSON snapshot output.
type SnapshotConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CONTENTOPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "contentops.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("google.roster_sheet", "Clients")
	v.SetDefault("google.rate_limit", 1.0)
	v.SetDefault("jira.project_key", "ESKL")
	v.SetDefault("jira.issue_type_id", "10009")
	v.SetDefault("jira.max_issues", 45)
	v.SetDefault("jira.retry_attempts", 2)
	v.SetDefault("jira.retry_backoff_secs", 30)
	v.SetDefault("jira.client_delay_secs", 2)
	v.SetDefault("fetch.sheet_name", "Sheet1")
	v.SetDefault("fetch.min_delay_secs", 5)
	v.SetDefault("fetch.max_delay_secs", 10)
	v.SetDefault("snapshot.dir", "snapshots")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the fields a command mode requires. Modes: "plan" (roster
// and document search only), "submit" (tracker only), "run" (both).
func (c *Config) Validate(mode string) error {
	var missing []string

	requireGoogle := func() {
		if c.Google.Token == "" {
			missing = append(missing, "google.token is required")
		}
		if c.Google.RosterSpreadsheetID == "" {
			missing = append(missing, "google.roster_spreadsheet_id is required")
		}
	}
	requireJira := func() {
		if c.Jira.BaseURL == "" {
			missing = append(missing, "jira.base_url is required")
		}
		if c.Jira.Email == "" {
			missing = append(missing, "jira.email is required")
		}
		if c.Jira.Token == "" {
			missing = append(missing, "jira.token is required")
		}
	}

	switch mode {
	case "plan":
		requireGoogle()
	case "submit":
		requireJira()
	case "run":
		requireGoogle()
		requireJira()
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Jira.MaxIssues < 1 || c.Jira.MaxIssues > 50 {
		missing = append(missing, "jira.max_issues must be between 1 and 50")
	}
	if c.Fetch.MinDelaySecs < 0 || c.Fetch.MaxDelaySecs < c.Fetch.MinDelaySecs {
		missing = append(missing, "fetch delay bounds must satisfy 0 <= min <= max")
	}

	if len(missing) > 0 {
		return eris.New("config: " + strings.Join(missing, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
