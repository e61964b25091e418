package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	bmac "github.com/ena63/pyshell"
)

// SerialConfig serial line settings
type SerialConfig struct {
	// Port is the device path; empty means auto-detect the FTDI bridge.
	Port        string        `mapstructure:"port"`
	Backend     string        `mapstructure:"backend"`
	BaudRate    int           `mapstructure:"baudRate"`
	DataBits    int           `mapstructure:"dataBits"`
	StopBits    int           `mapstructure:"stopBits"`
	Parity      string        `mapstructure:"parity"`
	Timeout     time.Duration `mapstructure:"timeout"`
	IdleTimeout time.Duration `mapstructure:"idleTimeout"`
}

// DeviceConfig target module
type DeviceConfig struct {
	Address int `mapstructure:"address"`
}

// ShellConfig interactive shell behaviour
type ShellConfig struct {
	Prompt    string `mapstructure:"prompt"`
	History   string `mapstructure:"history"`
	Uppercase bool   `mapstructure:"uppercase"`
	Banner    bool   `mapstructure:"banner"`
}

// LumberjackConfig rolling log file
type LumberjackConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"maxSize"`
	MaxBackups int    `mapstructure:"maxBackups"`
	MaxAgeDays int    `mapstructure:"maxAge"`
	Compress   bool   `mapstructure:"compress"`
}

// LoggingConfig log level and outputs
type LoggingConfig struct {
	Level  string           `mapstructure:"level"`
	Format string           `mapstructure:"format"`
	File   LumberjackConfig `mapstructure:"file"`
}

// Config top level
type Config struct {
	Serial  SerialConfig  `mapstructure:"serial"`
	Device  DeviceConfig  `mapstructure:"device"`
	Shell   ShellConfig   `mapstructure:"shell"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SupportedBaudRates are the rates the BMAC firmware accepts.
var SupportedBaudRates = []int{9600, 19200, 38400, 57600, 115200}

// New returns a viper instance with defaults and BMAC_ environment overrides.
// Callers may bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("BMAC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file at path (or $BMAC_CONFIG) into v and returns the
// validated configuration. A missing file is not an error when no path was given.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path == "" {
		path = v.GetString("config")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("bmacshell")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values the device cannot work with.
func (c *Config) Validate() error {
	if c.Device.Address < bmac.MinAddress || c.Device.Address > bmac.MaxAddress {
		return fmt.Errorf("invalid address %d: must be %d-%d", c.Device.Address, bmac.MinAddress, bmac.MaxAddress)
	}
	supported := false
	for _, b := range SupportedBaudRates {
		if c.Serial.BaudRate == b {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported baudrate %d", c.Serial.BaudRate)
	}
	switch strings.ToUpper(c.Serial.Parity) {
	case "N", "E", "O":
		c.Serial.Parity = strings.ToUpper(c.Serial.Parity)
	default:
		return fmt.Errorf("invalid parity %q", c.Serial.Parity)
	}
	switch c.Serial.Backend {
	case bmac.BackendGoburrow, bmac.BackendBugst:
	default:
		return fmt.Errorf("unknown serial backend %q", c.Serial.Backend)
	}
	if c.Serial.Timeout <= 0 {
		return fmt.Errorf("serial timeout must be positive, got %v", c.Serial.Timeout)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("serial.port", "")
	v.SetDefault("serial.backend", bmac.BackendGoburrow)
	v.SetDefault("serial.baudRate", bmac.DefaultBaudRate)
	v.SetDefault("serial.dataBits", 8)
	v.SetDefault("serial.stopBits", 1)
	v.SetDefault("serial.parity", "N")
	v.SetDefault("serial.timeout", "500ms")
	v.SetDefault("serial.idleTimeout", "60s")

	v.SetDefault("device.address", bmac.DefaultAddress)

	v.SetDefault("shell.prompt", "->>")
	v.SetDefault("shell.history", "")
	v.SetDefault("shell.uppercase", false)
	v.SetDefault("shell.banner", true)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file.filename", "")
	v.SetDefault("logging.file.maxSize", 10)
	v.SetDefault("logging.file.maxBackups", 3)
	v.SetDefault("logging.file.maxAge", 28)
	v.SetDefault("logging.file.compress", false)
}
