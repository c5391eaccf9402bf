// Package config holds all lantern configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all lantern configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Local data directory (database, exported images)
	Data DataConfig `yaml:"data"`

	// Journal rules
	Journal JournalConfig `yaml:"journal"`

	// Spirit animal recommendation service
	Spirit SpiritConfig `yaml:"spirit"`

	// Story card export
	Export ExportConfig `yaml:"export"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig configures where local state lives.
type DataConfig struct {
	Dir          string `yaml:"dir"`
	DatabaseFile string `yaml:"database_file"`
}

// JournalConfig configures the wizard rules.
type JournalConfig struct {
	// Quota is the number of reflections that completes the wizard.
	Quota int `yaml:"quota"`

	// OfferedTopics is how many catalog topics the topic screen offers at once.
	OfferedTopics int `yaml:"offered_topics"`
}

// SpiritConfig configures the generative recommendation call.
type SpiritConfig struct {
	APIKey      string       `yaml:"api_key"`
	Model       string       `yaml:"model"`
	Temperature float64      `yaml:"temperature"`
	Animals     []AnimalSpec `yaml:"animals"`
	Traits      []string     `yaml:"traits"`
}

// AnimalSpec is one member of the closed archetype enumeration.
type AnimalSpec struct {
	Name      string `yaml:"name"`
	Title     string `yaml:"title"`
	Archetype string `yaml:"archetype"`
	Emoji     string `yaml:"emoji"`
	Art       string `yaml:"art"`
}

// ExportConfig configures story card rendering and delivery.
type ExportConfig struct {
	OutputDir string `yaml:"output_dir"`

	// ArtDir holds optional per-animal artwork referenced by AnimalSpec.Art.
	ArtDir string `yaml:"art_dir"`

	// ImageTimeout bounds the wait for each artwork file before the
	// renderer falls back to a drawn badge.
	ImageTimeout string `yaml:"image_timeout"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "lantern",
		Version: "1.0.0",

		Data: DataConfig{
			Dir:          defaultDataDir(),
			DatabaseFile: "lantern.db",
		},

		Journal: JournalConfig{
			Quota:         4,
			OfferedTopics: 8,
		},

		Spirit: SpiritConfig{
			Model:       "gemini-flash-lite-latest",
			Temperature: 0.7,
			Animals: []AnimalSpec{
				{Name: "Capybara", Title: "The Zen Reflection", Archetype: "Peaceful introspection. They are looking back at the year and feeling good about maintaining their inner peace.", Emoji: "🦫", Art: "capybara.png"},
				{Name: "RiverOtter", Title: "The Memory Collector", Archetype: "Nostalgia and connection. They are looking back on the people and the moments, not just the work.", Emoji: "🦦", Art: "riverotter.png"},
				{Name: "Owl", Title: "The Big Picture", Archetype: "Strategic hindsight. They are looking at the patterns of the year and connecting the dots.", Emoji: "🦉", Art: "owl.png"},
				{Name: "Beaver", Title: "The Achievement Review", Archetype: "Pride in output. They are admiring the massive list of things they finished.", Emoji: "🦫", Art: "beaver.png"},
			},
			Traits: []string{"execution", "strategy", "resilience", "connection"},
		},

		Export: ExportConfig{
			OutputDir:    ".",
			ArtDir:       "",
			ImageTimeout: "3s",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lantern"
	}
	return filepath.Join(home, ".lantern")
}

// DefaultConfigPath returns the standard config file location.
func DefaultConfigPath() string {
	return filepath.Join(defaultDataDir(), "config.yaml")
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Spirit.APIKey = key
	}
	if dir := os.Getenv("LANTERN_DATA_DIR"); dir != "" {
		c.Data.Dir = dir
	}
	if dir := os.Getenv("LANTERN_OUTPUT_DIR"); dir != "" {
		c.Export.OutputDir = dir
	}
}

// DatabasePath returns the full path of the SQLite database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Data.Dir, c.Data.DatabaseFile)
}

// LogPath returns the log file location inside the data directory. Logs go
// to a file so they never fight the interactive interface for the terminal.
func (c *Config) LogPath() string {
	return filepath.Join(c.Data.Dir, "lantern.log")
}

// GetImageTimeout returns the per-image artwork wait as a duration.
func (c *Config) GetImageTimeout() time.Duration {
	d, err := time.ParseDuration(c.Export.ImageTimeout)
	if err != nil {
		return 3 * time.Second
	}
	return d
}

// AnimalNames returns the closed enumeration of animal names.
func (c *Config) AnimalNames() []string {
	names := make([]string, 0, len(c.Spirit.Animals))
	for _, a := range c.Spirit.Animals {
		names = append(names, a.Name)
	}
	return names
}

// FindAnimal returns the entry for the given animal name, matched exactly.
func (c *Config) FindAnimal(name string) (AnimalSpec, bool) {
	for _, a := range c.Spirit.Animals {
		if a.Name == name {
			return a, true
		}
	}
	return AnimalSpec{}, false
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Journal.Quota < 1 {
		return fmt.Errorf("journal quota must be at least 1, got %d", c.Journal.Quota)
	}
	if len(c.Spirit.Animals) == 0 {
		return fmt.Errorf("spirit animal enumeration must not be empty")
	}
	seen := make(map[string]bool, len(c.Spirit.Animals))
	for _, a := range c.Spirit.Animals {
		if a.Name == "" {
			return fmt.Errorf("spirit animal with empty name")
		}
		if seen[a.Name] {
			return fmt.Errorf("duplicate spirit animal %q", a.Name)
		}
		seen[a.Name] = true
	}
	if len(c.Spirit.Traits) == 0 {
		return fmt.Errorf("spirit traits must not be empty")
	}
	return nil
}
