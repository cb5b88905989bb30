package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the name of the configuration file Load looks for.
const DefaultFileName = "bincodec.yml"

// Version is the version of the codec tools, set at build time.
var Version string

// Config is the top level struct representing the configuration.
type Config struct {
	Codec       CodecConfiguration       `yaml:"Codec"`
	Application ApplicationConfiguration `yaml:"Application"`
}

// Default returns the configuration used when there is no file.
func Default() Config {
	return Config{
		Codec: CodecConfiguration{
			ByteOrder:   "little",
			Encoding:    "utf-8",
			StrictEnums: true,
		},
		Application: ApplicationConfiguration{
			LogLevel: "info",
		},
	}
}

// Load attempts to load the config from DefaultFileName in the given
// directory.
func Load(path string) (Config, error) {
	return LoadFile(filepath.Join(path, DefaultFileName))
}

// LoadFile loads config from the provided path. Unknown fields are refused.
func LoadFile(configPath string) (Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Config{}, fmt.Errorf("config '%s' doesn't exist", configPath)
	}

	configData, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config: %w", err)
	}
	return Parse(configData)
}

// Parse decodes YAML configuration data on top of the defaults and checks
// the result.
func Parse(data []byte) (Config, error) {
	config := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	err := decoder.Decode(&config)
	if err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks that all configuration values are usable.
func (c Config) Validate() error {
	if _, err := c.Codec.Options(); err != nil {
		return fmt.Errorf("invalid codec configuration: %w", err)
	}
	if err := c.Application.Validate(); err != nil {
		return fmt.Errorf("invalid application configuration: %w", err)
	}
	return nil
}
