// Package config loads daemon configuration from an optional YAML file.
// Values not present in the file keep their defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/RouterInfoMan/ecg-pm/internal/adc"
	"github.com/RouterInfoMan/ecg-pm/internal/gpio"
)

// Config holds the ecg-pm daemon configuration.
type Config struct {
	PeriodMs    int64      `yaml:"period_ms"`
	HeartbeatMs int64      `yaml:"heartbeat_ms"`
	Pins        PinsConfig `yaml:"pins"`
	ADC         ADCConfig  `yaml:"adc"`
	MQTT        MQTTConfig `yaml:"mqtt"`
	HTTP        HTTPConfig `yaml:"http"`
}

// PinsConfig holds the GPIO wiring (BCM numbering).
type PinsConfig struct {
	LED     int `yaml:"led"`
	LOPlus  int `yaml:"lo_plus"`
	LOMinus int `yaml:"lo_minus"`
}

// ADCConfig holds the converter wiring.
type ADCConfig struct {
	Bus     string `yaml:"bus"`
	Address uint16 `yaml:"address"`
	Channel int    `yaml:"channel"`
}

// MQTTConfig holds broker settings. An empty broker disables publishing.
type MQTTConfig struct {
	Broker string `yaml:"broker"`
}

// HTTPConfig holds status server settings. An empty addr disables it.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the configuration used when no file or flag overrides it.
func Default() *Config {
	return &Config{
		PeriodMs:    4,
		HeartbeatMs: (15 * time.Minute).Milliseconds(),
		Pins: PinsConfig{
			LED:     gpio.PinLED,
			LOPlus:  gpio.PinLOPlus,
			LOMinus: gpio.PinLOMinus,
		},
		ADC: ADCConfig{
			Bus:     "",
			Address: adc.DefaultAddress,
			Channel: adc.DefaultChannel,
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
	}
}

// Load reads the file at path over the defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the daemon cannot run with.
func (c *Config) Validate() error {
	if c.PeriodMs <= 0 {
		return fmt.Errorf("period_ms must be positive, got %d", c.PeriodMs)
	}
	if c.HeartbeatMs < 0 {
		return fmt.Errorf("heartbeat_ms must not be negative, got %d", c.HeartbeatMs)
	}
	if c.ADC.Channel < 0 || c.ADC.Channel > 3 {
		return fmt.Errorf("adc channel %d out of range 0-3", c.ADC.Channel)
	}
	return nil
}

// Period returns the sampling period as a duration.
func (c *Config) Period() time.Duration {
	return time.Duration(c.PeriodMs) * time.Millisecond
}

// Heartbeat returns the heartbeat interval as a duration. Zero disables it.
func (c *Config) Heartbeat() time.Duration {
	return time.Duration(c.HeartbeatMs) * time.Millisecond
}
