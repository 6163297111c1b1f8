// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"ctxcopy/internal/pii"
	"ctxcopy/internal/redactors"
)

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Format  string `yaml:"format"`
		Verbose bool   `yaml:"verbose"`
		Debug   bool   `yaml:"debug"`
		NoColor bool   `yaml:"no_color"`
		Workers int    `yaml:"workers"`
	} `yaml:"defaults"`

	// Masking settings, same keys as the editor settings
	Masking map[string]interface{} `yaml:"masking"`

	// Profiles for different masking scenarios
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile represents a named overlay of masking settings
type Profile struct {
	Description string                 `yaml:"description"`
	Format      string                 `yaml:"format"`
	Masking     map[string]interface{} `yaml:"masking"`
}

var supportedFormats = map[string]bool{
	"text": true,
	"json": true,
	"yaml": true,
	"csv":  true,
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	// Default configuration
	config := &Config{
		Masking:  make(map[string]interface{}),
		Profiles: make(map[string]Profile),
	}
	config.Defaults.Format = "text"
	config.Defaults.Workers = 4

	config.Profiles["financial"] = Profile{
		Description: "Banking and card identifiers only, fully masked",
		Masking: map[string]interface{}{
			"preset":   string(PresetFinancial),
			"strategy": redactors.MaskingFull.String(),
		},
	}
	config.Profiles["share"] = Profile{
		Description: "Strict mode with bracketed labels for pasting into tickets",
		Masking: map[string]interface{}{
			"mode":     string(pii.ModeStrict),
			"strategy": redactors.MaskingRedact.String(),
		},
	}

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	defaultWorkers := config.Defaults.Workers

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// yaml leaves an explicit "workers:" with no value at zero
	if !containsField(data, "defaults", "workers") || config.Defaults.Workers == 0 {
		config.Defaults.Workers = defaultWorkers
	}
	if config.Masking == nil {
		config.Masking = make(map[string]interface{})
	}
	if config.Profiles == nil {
		config.Profiles = make(map[string]Profile)
	}

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// FindConfigFile looks for a configuration file in the working directory,
// then in the user configuration directory. Returns "" when none exists.
func FindConfigFile() string {
	for _, name := range []string{"ctxcopy.yaml", "ctxcopy.yml", ".ctxcopy.yaml", ".ctxcopy.yml"} {
		if fileExists(name) {
			return name
		}
	}

	if dir := os.Getenv("CTXCOPY_CONFIG_DIR"); dir != "" {
		if file := filepath.Join(dir, "config.yaml"); fileExists(file) {
			return file
		}
	}

	if dir, err := os.UserConfigDir(); err == nil {
		if file := filepath.Join(dir, "ctxcopy", "config.yaml"); fileExists(file) {
			return file
		}
	}

	return ""
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// ListProfiles returns a sorted list of available profile names
func (c *Config) ListProfiles() []string {
	profiles := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		profiles = append(profiles, name)
	}
	sort.Strings(profiles)
	return profiles
}

// GetProfile returns the profile with the given name, or nil if not found
func (c *Config) GetProfile(name string) *Profile {
	if profile, ok := c.Profiles[name]; ok {
		return &profile
	}
	return nil
}

// MaskingSettings returns the top-level masking settings with the named
// profile's masking keys laid over them. An empty name returns the
// top-level settings alone.
func (c *Config) MaskingSettings(profileName string) (map[string]interface{}, error) {
	merged := make(map[string]interface{}, len(c.Masking))
	for k, v := range c.Masking {
		merged[k] = v
	}
	if profileName == "" {
		return merged, nil
	}

	profile := c.GetProfile(profileName)
	if profile == nil {
		return nil, fmt.Errorf("profile %q not found (available: %s)", profileName, strings.Join(c.ListProfiles(), ", "))
	}
	for k, v := range profile.Masking {
		if k == "types" {
			merged[k] = mergeTypes(merged[k], v)
			continue
		}
		merged[k] = v
	}
	return merged, nil
}

// mergeTypes overlays per-type toggles so a profile only has to list what it changes
func mergeTypes(base, overlay interface{}) interface{} {
	baseMap, ok1 := base.(map[string]interface{})
	overlayMap, ok2 := overlay.(map[string]interface{})
	if !ok1 || !ok2 {
		return overlay
	}
	out := make(map[string]interface{}, len(baseMap)+len(overlayMap))
	for k, v := range baseMap {
		out[k] = v
	}
	for k, v := range overlayMap {
		out[k] = v
	}
	return out
}

// containsField checks if a nested field exists in the YAML data
func containsField(data []byte, path ...string) bool {
	var yamlData map[string]interface{}
	err := yaml.Unmarshal(data, &yamlData)
	if err != nil {
		return false
	}

	current := yamlData
	for i, key := range path {
		if i == len(path)-1 {
			_, exists := current[key]
			return exists
		}
		if next, ok := current[key].(map[string]interface{}); ok {
			current = next
		} else {
			return false
		}
	}
	return false
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	if !supportedFormats[config.Defaults.Format] {
		return fmt.Errorf("unsupported default format %q", config.Defaults.Format)
	}
	if config.Defaults.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", config.Defaults.Workers)
	}

	if _, err := Process(config.Masking); err != nil {
		return fmt.Errorf("masking settings: %w", err)
	}

	for name, profile := range config.Profiles {
		if profile.Format != "" && !supportedFormats[profile.Format] {
			return fmt.Errorf("profile %q: unsupported format %q", name, profile.Format)
		}
		if _, err := Process(profile.Masking); err != nil {
			return fmt.Errorf("profile %q masking settings: %w", name, err)
		}
	}

	return nil
}

// LoadConfigOrDefault loads configuration from configFile (or searches standard locations
// when configFile is empty). If loading fails, it returns a default configuration.
func LoadConfigOrDefault(configFile string) *Config {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		cfg, _ = LoadConfig("")
	}
	return cfg
}
