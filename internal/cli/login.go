package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/regdrive/domrobot/pkg/api"
)

// newLoginCmd creates and returns a new login command
func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify credentials against the API and store them",
		Long: `Login verifies the given credentials by opening a session against the
configured endpoint, then stores them in the config file so later
invocations can authenticate.

Accounts protected by two-factor authentication need the TOTP shared
secret, via --otp-secret or the DOMROBOT_OTP_SECRET environment variable.

Example:
  domrobot login --user myaccount --pass mypassword`,
		RunE: runLogin,
	}

	cmd.Flags().String("user", "", "Account username")
	cmd.Flags().String("pass", "", "Account password")
	cmd.Flags().String("otp-secret", "", "TOTP shared secret for two-factor accounts")
	return cmd
}

// runLogin handles the login command execution
func runLogin(cmd *cobra.Command, args []string) error {
	cfg := loadOrDefaultConfig()

	if user, _ := cmd.Flags().GetString("user"); user != "" {
		cfg.Username = user
	}
	if pass, _ := cmd.Flags().GetString("pass"); pass != "" {
		cfg.Password = pass
	}
	if secret, _ := cmd.Flags().GetString("otp-secret"); secret != "" {
		cfg.OTPSecret = secret
	}
	if cfg.Username == "" || cfg.Password == "" {
		return fmt.Errorf("no credentials provided. Use --user/--pass flags, the config file, or DOMROBOT_USER/DOMROBOT_PASS")
	}

	client, err := newAPIClient(cfg)
	if err != nil {
		return err
	}

	rsp, err := client.Login(cmd.Context(), cfg.Username, cfg.Password, cfg.OTPSecret)
	if err != nil {
		if errors.Is(err, api.ErrTwoFactorRequired) {
			return fmt.Errorf("account requires two-factor authentication; supply --otp-secret")
		}
		return fmt.Errorf("login request failed: %w", err)
	}
	if !rsp.OK() {
		return fmt.Errorf("login rejected: %s (code %d)", rsp.Message, rsp.Code)
	}

	if err := cfg.WriteConfig(configFile); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	if jsonOutput {
		printJSON(map[string]any{
			"status":  "success",
			"message": "Login successful",
			"code":    rsp.Code,
		})
	} else {
		okLabel.Println("✓ Login successful")
	}
	return nil
}
