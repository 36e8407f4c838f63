package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/regdrive/domrobot/pkg/api"
)

// DefaultConfigFile is the default name of the config file
const DefaultConfigFile = "config.yaml"

// configFormatVersion is the version written to new config files. Files
// whose version falls outside configVersionConstraint are rejected so a
// future format change cannot be misread silently.
const configFormatVersion = "0.1.0"

var configVersionConstraint *semver.Constraints

func init() {
	var err error
	configVersionConstraint, err = semver.NewConstraint("~0.1")
	if err != nil {
		panic(err)
	}
}

// Config represents the configuration for the domrobot CLI. It carries
// the endpoint, default response language, and stored credentials.
type Config struct {
	Version   string `yaml:"version" validate:"required"`
	Endpoint  string `yaml:"endpoint" validate:"required,url"`
	Lang      string `yaml:"lang" validate:"omitempty,oneof=en de es"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	OTPSecret string `yaml:"otp_secret"`
	Debug     bool   `yaml:"debug"`
}

var config *Config

var validate = validator.New()

// GetDefaultConfigPath returns the default path for the config file,
// under the OS-specific config directory.
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "domrobot", DefaultConfigFile), nil
}

// LoadConfig loads the configuration from the specified file.
// If no file is specified, it uses the default config location.
func LoadConfig(file string) error {
	if file == "" {
		var err error
		file, err = GetDefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get default config path: %w", err)
		}
	}

	yamlStr, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("unable to read config file: %w", err)
	}

	var c Config
	if err = yaml.Unmarshal(yamlStr, &c); err != nil {
		return fmt.Errorf("unable to parse config file: %w", err)
	}

	if err := c.Validate(); err != nil {
		return err
	}

	config = &c
	return nil
}

// GetConfig returns the current configuration
func GetConfig() *Config {
	return config
}

// loadOrDefaultConfig loads the config file when present, or starts a
// fresh one pointed at the sandbox endpoint. Environment variables
// override stored credentials.
func loadOrDefaultConfig() *Config {
	if err := LoadConfig(configFile); err != nil {
		config = &Config{
			Version:  configFormatVersion,
			Endpoint: api.OTEEndpoint,
			Lang:     api.DefaultLang,
		}
	}
	config.Username = envOverride("DOMROBOT_USER", config.Username)
	config.Password = envOverride("DOMROBOT_PASS", config.Password)
	config.OTPSecret = envOverride("DOMROBOT_OTP_SECRET", config.OTPSecret)
	return config
}

// Validate checks required fields, value sets, and the config format
// version gate.
func (cfg *Config) Validate() error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	v, err := semver.NewVersion(cfg.Version)
	if err != nil {
		return fmt.Errorf("invalid config file version %q: %w", cfg.Version, err)
	}
	if !configVersionConstraint.Check(v) {
		return fmt.Errorf("unsupported config file version %q", cfg.Version)
	}
	return nil
}

// WriteConfig writes the configuration to the specified file.
// If no file is specified, it uses the default config location.
func (cfg *Config) WriteConfig(file string) error {
	if file == "" {
		var err error
		file, err = GetDefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get default config path: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return fmt.Errorf("unable to create config directory: %w", err)
	}

	yamlStr, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("unable to generate configuration: %w", err)
	}

	if err := os.WriteFile(file, yamlStr, os.FileMode(0600)); err != nil {
		return fmt.Errorf("unable to write config file: %w", err)
	}

	return nil
}

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long: `Manage CLI configuration settings: the API endpoint and the default
response language. Credentials are stored by the login command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint, _ := cmd.Flags().GetString("endpoint")
		lang, _ := cmd.Flags().GetString("lang")
		if endpoint == "" && lang == "" {
			cmd.Help()
			return nil
		}

		cfg := loadOrDefaultConfig()
		if endpoint != "" {
			cfg.Endpoint = endpoint
		}
		if lang != "" {
			cfg.Lang = lang
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := cfg.WriteConfig(configFile); err != nil {
			return err
		}

		if jsonOutput {
			printJSON(map[string]string{
				"endpoint": cfg.Endpoint,
				"lang":     cfg.Lang,
			})
		} else {
			fmt.Printf("Endpoint: %s\n", cfg.Endpoint)
			fmt.Printf("Language: %s\n", cfg.Lang)
		}
		return nil
	},
}

func init() {
	configCmd.Flags().String("endpoint", "", "API endpoint URL (production or OTE sandbox)")
	configCmd.Flags().String("lang", "", "Default response language (en, de, es)")
	rootCmd.AddCommand(configCmd)
}
