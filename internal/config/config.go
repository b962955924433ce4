package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config represents the application configuration
type Config struct {
	DefaultGrimoire string `toml:"default_grimoire"`
}

// DefaultGrimoireName is used when no config file exists yet. It matches the
// starter grimoire that `grimoire library init --starter` installs.
const DefaultGrimoireName = "starter"

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetXDGStateHome returns XDG_STATE_HOME or default path
func GetXDGStateHome() string {
	if xdgState := os.Getenv("XDG_STATE_HOME"); xdgState != "" {
		return xdgState
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "state")
}

// GetLibraryPath returns the path to the grimoire library
func GetLibraryPath() string {
	return filepath.Join(GetXDGDataHome(), "grimoire", "grimoires")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "grimoire", "config.toml")
}

// GetLogFilePath returns the file the interactive browser logs to. The
// browser owns the terminal, so diagnostics go to a file instead of stderr.
func GetLogFilePath() string {
	return filepath.Join(GetXDGStateHome(), "grimoire", "browse.log")
}

// LoadConfig loads the config file
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	// Create default config if it doesn't exist
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	var config Config
	_, err := toml.DecodeFile(configPath, &config)
	if err != nil {
		return nil, fmt.Errorf("error decoding config file: %v", err)
	}

	return &config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig() (*Config, error) {
	configPath := GetConfigFilePath()
	configDir := filepath.Dir(configPath)

	// Ensure the config directory exists
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %v", err)
	}

	config := &Config{
		DefaultGrimoire: DefaultGrimoireName,
	}

	// Create the file
	file, err := os.Create(configPath)
	if err != nil {
		return nil, fmt.Errorf("error creating config file: %v", err)
	}
	defer file.Close()

	// Encode the config to TOML
	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return nil, fmt.Errorf("error encoding config: %v", err)
	}

	return config, nil
}

// GetGrimoireTarget resolves a grimoire reference to a fetchable target: a
// URL is returned as-is, a name is looked up in the grimoire library, and
// anything else is treated as a local path.
func GetGrimoireTarget(name string) (string, error) {
	if strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://") {
		return name, nil
	}

	// First, try to find the grimoire in the library
	libraryPath := GetLibraryPath()
	grimoirePath := filepath.Join(libraryPath, name)

	if _, err := os.Stat(grimoirePath); err == nil {
		return grimoirePath, nil
	}

	// If not found in the library, treat as a relative path
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	return "", fmt.Errorf("grimoire not found: %s", name)
}

// GetDefaultGrimoire returns the default grimoire name from config
func GetDefaultGrimoire() (string, error) {
	config, err := LoadConfig()
	if err != nil {
		return "", err
	}

	return config.DefaultGrimoire, nil
}

// SetDefaultGrimoire sets the default grimoire in the config
func SetDefaultGrimoire(name string) error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}

	// Update the default grimoire
	config.DefaultGrimoire = name

	// Open the config file for writing
	configPath := GetConfigFilePath()
	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error opening config file: %v", err)
	}
	defer file.Close()

	// Encode the updated config
	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %v", err)
	}

	return nil
}
