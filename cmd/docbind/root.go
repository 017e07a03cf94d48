package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var rootCmd = &cobra.Command{
	Use:   "docbind",
	Short: "docbind CLI - bind converted parameters into document queries",
	Long: `docbind converts call-site parameter values into a document store's
native representation, strips embedded type metadata, and binds the results
into queries against a JSON-file-backed store.

Examples:
  # Add a record
  docbind --store data.json add '{"name": "Alice", "status": "active"}'

  # Find records where status equals the first parameter
  docbind --store data.json find --where status=eq:0 --param '"active"'

  # Inspect how a value converts
  docbind convert '{"name": "Alice"}'`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		initLogging(viper.GetString("log-level"))
		return nil
	},
}

var (
	storePath  string
	format     string
	logLevel   string
	configFile string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&storePath, "store", "s", "", "Store file path")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "json", "Output format: json|yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug|info|warn|error")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default $HOME/.docbind.yaml)")

	_ = viper.BindPFlag("store", rootCmd.PersistentFlags().Lookup("store"))
	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig wires viper: explicit config file, else ~/.docbind.yaml, plus
// DOCBIND_* environment variables.
func initConfig() error {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigName(".docbind")
			viper.SetConfigType("yaml")
		}
	}

	viper.SetEnvPrefix("DOCBIND")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Only the default config file is allowed to be missing; a file
		// that exists but fails to parse is always an error.
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// requireStore returns the configured store path or an error.
func requireStore() (string, error) {
	path := viper.GetString("store")
	if path == "" {
		return "", fmt.Errorf("no store file configured, use --store or DOCBIND_STORE")
	}
	return path, nil
}

// printResult writes v to stdout in the configured output format.
func printResult(v interface{}) error {
	switch viper.GetString("format") {
	case "yaml":
		out, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		fmt.Print(string(out))
	default:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		fmt.Println(string(out))
	}
	return nil
}
