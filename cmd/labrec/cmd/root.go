package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/labrecord/backend/internal/editor"
)

var (
	flagServerURL string

	cliConfig *Config
	apiClient *editor.Client
)

// Config is the CLI's persisted state under ~/.config/labrec.
type Config struct {
	ServerURL string `json:"serverUrl"`
	Token     string `json:"token,omitempty"`
}

func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "labrec", "config.json"), nil
}

func loadConfig() (*Config, error) {
	cfg := &Config{ServerURL: "http://localhost:8080"}

	path, err := configPath()
	if err != nil {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = "http://localhost:8080"
	}
	return cfg, nil
}

func saveConfig(cfg *Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

var rootCmd = &cobra.Command{
	Use:   "labrec",
	Short: "Manage lab records from the terminal",
	Long: `labrec lets you create, edit and export lab records without
leaving the terminal.

Get started:
  labrec login                      Authenticate with email and password
  labrec ls                         List your lab records
  labrec new "Pendulum" physics     Create a record from a template
  labrec export <id> --format pdf   Download an export`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cliConfig, err = loadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if flagServerURL != "" {
			cliConfig.ServerURL = flagServerURL
		}
		apiClient = editor.NewClient(cliConfig.ServerURL, cliConfig.Token)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServerURL, "server", "", "Override server URL (default: from config or http://localhost:8080)")
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func requireAuth() error {
	if cliConfig == nil || cliConfig.Token == "" {
		return fmt.Errorf("not authenticated — run \"labrec login\" first")
	}
	return nil
}
