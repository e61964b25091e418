package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Serial.Port)
	assert.Equal(t, "goburrow", cfg.Serial.Backend)
	assert.Equal(t, 115200, cfg.Serial.BaudRate)
	assert.Equal(t, 8, cfg.Serial.DataBits)
	assert.Equal(t, 1, cfg.Serial.StopBits)
	assert.Equal(t, "N", cfg.Serial.Parity)
	assert.Equal(t, 500*time.Millisecond, cfg.Serial.Timeout)
	assert.Equal(t, time.Minute, cfg.Serial.IdleTimeout)
	assert.Equal(t, 0, cfg.Device.Address)
	assert.Equal(t, "->>", cfg.Shell.Prompt)
	assert.True(t, cfg.Shell.Banner)
	assert.False(t, cfg.Shell.Uppercase)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "bmac.yaml", `
serial:
  port: /dev/ttyUSB1
  backend: bugst
  baudRate: 57600
  parity: e
  timeout: 300ms
device:
  address: 12
shell:
  uppercase: true
logging:
  level: debug
`)

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyUSB1", cfg.Serial.Port)
	assert.Equal(t, "bugst", cfg.Serial.Backend)
	assert.Equal(t, 57600, cfg.Serial.BaudRate)
	assert.Equal(t, "E", cfg.Serial.Parity)
	assert.Equal(t, 300*time.Millisecond, cfg.Serial.Timeout)
	assert.Equal(t, 12, cfg.Device.Address)
	assert.True(t, cfg.Shell.Uppercase)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "bmac.toml", `
[serial]
port = "COM12"
baudRate = 19200

[device]
address = 7
`)

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "COM12", cfg.Serial.Port)
	assert.Equal(t, 19200, cfg.Serial.BaudRate)
	assert.Equal(t, 7, cfg.Device.Address)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("BMAC_SERIAL_PORT", "/dev/ttyUSB3")
	t.Setenv("BMAC_DEVICE_ADDRESS", "42")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyUSB3", cfg.Serial.Port)
	assert.Equal(t, 42, cfg.Device.Address)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Serial: SerialConfig{Backend: "goburrow", BaudRate: 115200, Parity: "N", Timeout: time.Second},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "address 99", mutate: func(c *Config) { c.Device.Address = 99 }},
		{name: "address 100", mutate: func(c *Config) { c.Device.Address = 100 }, wantErr: "invalid address"},
		{name: "address 127", mutate: func(c *Config) { c.Device.Address = 127 }, wantErr: "invalid address"},
		{name: "negative address", mutate: func(c *Config) { c.Device.Address = -1 }, wantErr: "invalid address"},
		{name: "baudrate 4800", mutate: func(c *Config) { c.Serial.BaudRate = 4800 }, wantErr: "unsupported baudrate"},
		{name: "baudrate 9600", mutate: func(c *Config) { c.Serial.BaudRate = 9600 }},
		{name: "parity X", mutate: func(c *Config) { c.Serial.Parity = "X" }, wantErr: "invalid parity"},
		{name: "backend", mutate: func(c *Config) { c.Serial.Backend = "tarm" }, wantErr: "unknown serial backend"},
		{name: "zero timeout", mutate: func(c *Config) { c.Serial.Timeout = 0 }, wantErr: "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
