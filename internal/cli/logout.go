package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newLogoutCmd creates and returns a new logout command
func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the remote session and remove stored credentials",
		Long: `Logout ends any server-side session for the stored credentials and
removes them from the config file.`,
		RunE: runLogout,
	}
}

func runLogout(cmd *cobra.Command, args []string) error {
	cfg := loadOrDefaultConfig()

	// Best-effort remote logout: the cookie only lives for the duration of
	// one process, so a session is opened and immediately closed.
	if cfg.Username != "" && cfg.Password != "" {
		client, err := newAPIClient(cfg)
		if err != nil {
			return err
		}
		if rsp, err := client.Login(cmd.Context(), cfg.Username, cfg.Password, cfg.OTPSecret); err == nil && rsp.OK() {
			if _, err := client.Logout(cmd.Context()); err != nil {
				errorLabel.Fprintf(cmd.ErrOrStderr(), "Warning: remote logout failed: %v\n", err)
			}
		}
	}

	cfg.Username = ""
	cfg.Password = ""
	cfg.OTPSecret = ""
	if err := cfg.WriteConfig(configFile); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	if jsonOutput {
		printJSON(map[string]string{"status": "success"})
	} else {
		okLabel.Println("✓ Logged out")
	}
	return nil
}
