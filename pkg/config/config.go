package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"taskmate/pkg/keymaps"
)

// SMTP holds the delivery collaborator settings. An empty host means
// reminders fall back to the local trace.
type SMTP struct {
	Host     string `mapstructure:"host" json:"host"`
	Port     int    `mapstructure:"port" json:"port"`
	Username string `mapstructure:"username" json:"username"`
	Password string `mapstructure:"password" json:"password"`
	From     string `mapstructure:"from" json:"from"`
}

// Config holds the application configuration
type Config struct {
	Database   string            `mapstructure:"database" json:"database"`
	KeyMap     map[string]string `mapstructure:"keymap" json:"keymap"`
	StylesFile string            `mapstructure:"styles_file" json:"styles_file"`
	SMTP       SMTP              `mapstructure:"smtp" json:"smtp"`
}

// Styles holds the application colors and styling information
type Styles struct {
	// UI element colors
	BorderColor string `json:"border_color"`
	AccentColor string `json:"accent_color"`

	// Text colors
	NormalTextColor   string `json:"normal_text_color"`
	SelectedTextColor string `json:"selected_text_color"`
	SelectedBgColor   string `json:"selected_bg_color"`
	ErrorColor        string `json:"error_color"`

	// Priority and status colors
	HighPriorityColor   string `json:"high_priority_color"`
	MediumPriorityColor string `json:"medium_priority_color"`
	LowPriorityColor    string `json:"low_priority_color"`
	CompletedColor      string `json:"completed_color"`
}

// Load loads the application configuration, creating a default config
// file on first run
func Load(configPath string) (Config, Styles, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, Styles{}, err
	}

	configDir := filepath.Join(homeDir, ".config", "taskmate")

	// Default configuration using keymaps package
	config := Config{
		Database:   filepath.Join(configDir, "session.db"),
		KeyMap:     keymaps.GetDefaultKeyMappings(),
		StylesFile: filepath.Join(configDir, "styles.json"),
	}

	// Setup viper
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("json")
		viper.AddConfigPath(configDir)
	}

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return config, Styles{}, err
		}
		// Config file not found, create default config
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return config, Styles{}, err
		}
		viper.Set("database", config.Database)
		viper.Set("keymap", config.KeyMap)
		viper.Set("styles_file", config.StylesFile)
		viper.Set("smtp", config.SMTP)
		if err := viper.WriteConfigAs(filepath.Join(configDir, "config.json")); err != nil {
			return config, Styles{}, err
		}
	} else {
		if err := viper.Unmarshal(&config); err != nil {
			return config, Styles{}, err
		}
	}

	// Now load the styles file
	styles, err := loadStyles(config.StylesFile)
	if err != nil {
		return config, styles, fmt.Errorf("error loading styles: %w", err)
	}

	return config, styles, nil
}

// loadStyles loads the application styles from the specified path
func loadStyles(stylesPath string) (Styles, error) {
	defaultStyles := Styles{
		BorderColor:         "240",
		AccentColor:         "205",
		NormalTextColor:     "86",
		SelectedTextColor:   "229",
		SelectedBgColor:     "57",
		ErrorColor:          "9",
		HighPriorityColor:   "9",
		MediumPriorityColor: "11",
		LowPriorityColor:    "10",
		CompletedColor:      "240",
	}

	// Try to read the styles file
	stylesData, err := os.ReadFile(stylesPath)
	if err != nil {
		// If the file doesn't exist, create it with default values
		if os.IsNotExist(err) {
			stylesDir := filepath.Dir(stylesPath)
			if err := os.MkdirAll(stylesDir, 0755); err != nil {
				return defaultStyles, err
			}

			stylesData, err = json.MarshalIndent(defaultStyles, "", "  ")
			if err != nil {
				return defaultStyles, err
			}

			if err := os.WriteFile(stylesPath, stylesData, 0644); err != nil {
				return defaultStyles, err
			}

			return defaultStyles, nil
		}
		return defaultStyles, err
	}

	// File exists, parse it
	var loadedStyles Styles
	if err := json.Unmarshal(stylesData, &loadedStyles); err != nil {
		return defaultStyles, err
	}

	return loadedStyles, nil
}
