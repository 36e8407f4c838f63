// Package cli implements the domrobot command line client. Commands map
// onto the API client in pkg/api; credentials and defaults live in a yaml
// config file, overridable per invocation and via the environment.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/regdrive/domrobot/pkg/api"
)

var (
	// Global flags
	jsonOutput bool
	configFile string
	debugMode  bool
)

var ErrAlreadyHandled = errors.New("already handled")

var okLabel = color.New(color.FgGreen)
var errorLabel = color.New(color.FgRed)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "domrobot [command] [flags]",
	Short: "domrobot - a command line client for the DomRobot registrar API",
	Long: `domrobot is a command line client for the DomRobot registrar API.
It manages credentials in a local config file and invokes remote methods
over the JSON-RPC-style HTTP interface.

Examples:
  # Store the endpoint and credentials
  domrobot config --endpoint https://api.ote.domrobot.com/jsonrpc/
  domrobot login --user myaccount

  # Check a domain
  domrobot call domain.check --param domain=example.com --query resData.domain.0.avail

  # End the stored session
  domrobot logout`,
	PersistentPreRun: preRunHandlePersistents,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func preRunHandlePersistents(cmd *cobra.Command, args []string) {
	// A .env next to the working directory may carry credentials; absence
	// is not an error.
	_ = godotenv.Load()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "", "", "Path to configuration file to override default")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "Log every request and response")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newCallCmd())
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SilenceErrors = true // Prevent Cobra from printing the error
	rootCmd.SilenceUsage = true  // Prevent Cobra from printing usage on error

	err := rootCmd.Execute()
	if err != nil {
		if errors.Is(err, ErrAlreadyHandled) {
			os.Exit(1)
		}
		if jsonOutput {
			printJSON(map[string]string{"error": err.Error()})
		} else {
			errorLabel.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error encoding output: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

// newAPIClient builds an API client from the loaded configuration plus
// the global debug flag.
func newAPIClient(cfg *Config) (*api.Client, error) {
	return api.NewClient(cfg.Endpoint, cfg.Lang, debugMode || cfg.Debug)
}

// envOverride returns the environment value when set, the fallback
// otherwise.
func envOverride(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
