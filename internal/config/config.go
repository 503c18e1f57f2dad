// Package config loads ImageVault settings from an optional YAML file.
package config

import (
	"fmt"
	"os"

	"ImageVault/internal/crypto"
	"ImageVault/internal/log"
	"ImageVault/internal/util"

	"gopkg.in/yaml.v2"
)

// EnvPath names the config file when no path is given explicitly.
const EnvPath = "IMAGEVAULT_CONFIG"

// Defaults
const (
	DefaultCipher       = "aes-256-gcm"
	DefaultLogLevel     = "warn"
	DefaultWorkers      = 4
	DefaultMaxImageSize = 256 * util.MiB
	MaxWorkers          = 64
)

type Config struct {
	Cipher       string `yaml:"cipher"`
	LogLevel     string `yaml:"logLevel"`
	LogFile      string `yaml:"logFile"`
	ReedSolomon  bool   `yaml:"reedSolomon"`
	Workers      int    `yaml:"workers"`
	MaxImageSize string `yaml:"maxImageSize"`

	// Parsed forms, filled by Validate
	Suite        crypto.Suite `yaml:"-"`
	Level        log.Level    `yaml:"-"`
	MaxImageByte int64        `yaml:"-"`
}

// Default returns a validated configuration with every default applied.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		panic("invalid default config: " + err.Error())
	}
	return c
}

// Load reads path, or the file named by IMAGEVAULT_CONFIG when path is empty.
// With neither set the defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML, rejecting unknown keys, then applies defaults and validates.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Cipher == "" {
		c.Cipher = DefaultCipher
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
	if c.MaxImageSize == "" {
		c.MaxImageSize = util.Sizeify(DefaultMaxImageSize)
	}
}

// Validate checks every field and fills the parsed forms.
// Call it again after overriding fields from flags.
func (c *Config) Validate() error {
	suite, err := crypto.ParseSuite(c.Cipher)
	if err != nil {
		return err
	}
	c.Suite = suite

	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("error checking config: %w", err)
	}
	c.Level = level

	if c.Workers < 1 || c.Workers > MaxWorkers {
		return fmt.Errorf("error checking config: workers must be between 1 and %d, got %d", MaxWorkers, c.Workers)
	}

	size, err := util.ParseSize(c.MaxImageSize)
	if err != nil {
		return fmt.Errorf("error checking config: maxImageSize: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("error checking config: maxImageSize must be positive")
	}
	c.MaxImageByte = size
	return nil
}
