package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"wizard-cli/internal/app"
	"wizard-cli/pkg/models"
)

// Build-time variables injected via ldflags
var (
	version   = "dev"
	commit    = "unknown"
	date      = "unknown"
	goVersion = runtime.Version()
)

var rootCmd = &cobra.Command{
	Use:   "wizard",
	Short: "An interactive strategy configuration wizard",
	Long: `Wizard CLI walks an operator through creating a strategy configuration
file: it asks for a strategy, prompts every required field with validation
and retry, persists the result as YAML, and runs a bounded readiness check
before advising the operator to proceed.

Strategies and their field schemas are registered by the embedding tool;
the wizard core only drives the session.`,
}

var createCmd = &cobra.Command{
	Use:   "create [file-name]",
	Short: "Create a new strategy configuration",
	Long: `Create a new strategy configuration interactively. An optional file name
argument is reused for the new configuration; when it already exists the
session is aborted. Without an argument the wizard proposes a free file
name and prompts for confirmation.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := buildRequestFromFlags(cmd, args)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}
		return app.Run(request)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List existing configuration files",
	Long:  "List the strategy configuration files present in the configured conf_dir.",
	RunE: func(cmd *cobra.Command, args []string) error {
		request := models.NewSessionRequest()
		if configPath, err := cmd.Flags().GetString("config"); err == nil {
			request.ConfigPath = configPath
		}
		return app.ListConfigs(request)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wizard version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		fmt.Printf("  go version: %s\n", goVersion)
		fmt.Printf("  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file path (default ~/.config/wizard/config.toml)")

	createCmd.Flags().StringP("target", "t", "", "summary output target (clipboard, stdout, file:/path)")
}

// buildRequestFromFlags constructs a SessionRequest from command flags and arguments
func buildRequestFromFlags(cmd *cobra.Command, args []string) (*models.SessionRequest, error) {
	request := models.NewSessionRequest()

	if len(args) > 0 {
		request.FileName = args[0]
	}

	var err error

	if request.ConfigPath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, fmt.Errorf("invalid config flag: %w", err)
	}

	if request.Target, err = cmd.Flags().GetString("target"); err != nil {
		return nil, fmt.Errorf("invalid target flag: %w", err)
	}

	return request, nil
}

func main() {
	// Disable usage on error to show only our custom error messages
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
