// Package conf handles loading, validating and saving the application
// configuration. Settings are read from a YAML config file, environment
// variables and command line flags through viper.
package conf

import (
	"embed"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/aerowise/aerowise-go/internal/errors"
)

//go:embed config.yaml
var configFiles embed.FS

// LogConfig contains settings for the query log file.
type LogConfig struct {
	Enabled    bool   // true to log every question/answer pair to a file
	Path       string // path to the query log file
	MaxSize    int    // max size in megabytes before rotation
	MaxBackups int    // number of rotated files to keep
	MaxAge     int    // days to keep rotated files
}

// MainSettings contains application-wide settings.
type MainSettings struct {
	Name string    // agent display name
	Log  LogConfig // query log settings
}

// DatasetSettings points the record store at its backing data.
type DatasetSettings struct {
	Path string // directory holding the four dataset JSON files, empty for the embedded dataset
}

// LLMSettings configures the optional hosted-model responder.
type LLMSettings struct {
	Enabled     bool    // true to answer with the hosted model instead of the rule agent
	Model       string  // Anthropic model identifier
	APIKey      string  // Anthropic API key, also read from ANTHROPIC_API_KEY
	Temperature float32 // sampling temperature
	MaxTokens   int     // response token budget
	CacheTTL    int     // minutes to cache identical questions, 0 disables
}

// TelemetrySettings contains settings for telemetry.
type TelemetrySettings struct {
	Enabled bool   // true to enable Prometheus compatible telemetry endpoint
	Listen  string // IP address and port to listen on
}

// Settings is the root configuration structure.
type Settings struct {
	Debug     bool              // true to enable debug output
	Main      MainSettings      // application-wide settings
	Dataset   DatasetSettings   // record store data source
	LLM       LLMSettings       // hosted-model responder settings
	Telemetry TelemetrySettings // telemetry settings
}

// Load reads the configuration file and environment variables into a
// Settings struct.
func Load() (*Settings, error) {
	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	return settings, nil
}

// initViper initializes viper with default values and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	// Set default values for each configuration parameter,
	// function defined in defaults.go
	setDefaultConfig()

	// The API key is usually provided through the environment
	if err := viper.BindEnv("llm.apikey", "ANTHROPIC_API_KEY"); err != nil {
		return fmt.Errorf("error binding env var: %w", err)
	}

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found, create config with defaults
			return createDefaultConfig()
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPaths returns the directories searched for config.yaml,
// in priority order.
func GetDefaultConfigPaths() ([]string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("error resolving user config directory: %w", err)
	}
	return []string{
		".",
		filepath.Join(configDir, "aerowise"),
	}, nil
}

// createDefaultConfig writes the embedded default config file to the user
// config path and loads it.
func createDefaultConfig() error {
	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	configPath := filepath.Join(configPaths[len(configPaths)-1], "config.yaml")

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("error creating directories for config file: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(getDefaultConfig()), 0o644); err != nil {
		return fmt.Errorf("error writing default config file: %w", err)
	}

	fmt.Println("Created default config file at:", configPath)
	return viper.ReadInConfig()
}

// getDefaultConfig reads the default configuration from the embedded config.yaml file.
func getDefaultConfig() string {
	data, err := fs.ReadFile(configFiles, "config.yaml")
	if err != nil {
		log.Fatalf("Error reading embedded config file: %v", err)
	}
	return string(data)
}

// SaveYAMLConfig writes the settings to the given path as YAML. The write
// goes through a temporary file in the same directory so an interrupted save
// never leaves a truncated config behind.
func SaveYAMLConfig(configPath string, settings *Settings) error {
	yamlData, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("error marshaling settings to YAML: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(configPath), "config-*.yaml")
	if err != nil {
		return fmt.Errorf("error creating temporary config file: %w", err)
	}
	tempName := tempFile.Name()

	if _, err := tempFile.Write(yamlData); err != nil {
		tempFile.Close()
		os.Remove(tempName)
		return fmt.Errorf("error writing temporary config file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		os.Remove(tempName)
		return fmt.Errorf("error closing temporary config file: %w", err)
	}

	if err := os.Rename(tempName, configPath); err != nil {
		os.Remove(tempName)
		return fmt.Errorf("error replacing config file: %w", err)
	}

	return nil
}
