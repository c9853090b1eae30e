// Package config holds the wdtd daemon configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bkuschak/attiny-watchdog/core"
)

type Config struct {
	// Serial device of the I2C bridge adapter.
	Device string `yaml:"device"`
	Baud   int    `yaml:"baud"`

	// 7-bit slave address of the watchdog. Zero means the firmware
	// default.
	SlaveAddress uint8 `yaml:"slave_address"`

	// How often to pet, and what countdown value each pet reloads.
	PetIntervalMs int   `yaml:"pet_interval_ms"`
	Reload        uint8 `yaml:"reload"`

	// Capability flags written on start.
	EnableReset      bool `yaml:"enable_reset"`
	EnablePowerCycle bool `yaml:"enable_powercycle"`
	EnableAlert      bool `yaml:"enable_alert"`

	Verbose bool `yaml:"verbose"`
}

// Load reads and validates a YAML config file, applying defaults for
// anything unset.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Baud == 0 {
		c.Baud = 115200
	}
	if c.SlaveAddress == 0 {
		c.SlaveAddress = core.SlaveAddress
	}
	if c.Reload == 0 {
		c.Reload = 0xFF
	}
	if c.PetIntervalMs == 0 {
		// Half the first-stage deadline leaves plenty of slack.
		c.PetIntervalMs = int(c.firstStageDeadline() / (2 * time.Millisecond))
	}
	if !c.EnableReset && !c.EnablePowerCycle && !c.EnableAlert {
		c.EnablePowerCycle = true
		c.EnableAlert = true
	}
}

// Validate rejects configurations that could not keep the watchdog petted.
func (c *Config) Validate() error {
	if c.Device == "" {
		return fmt.Errorf("config: device is required")
	}
	if c.Baud <= 0 {
		return fmt.Errorf("config: baud must be positive, got %d", c.Baud)
	}
	if c.SlaveAddress > 0x7F {
		return fmt.Errorf("config: slave_address %#02x exceeds 7 bits", c.SlaveAddress)
	}
	if c.PetIntervalMs <= 0 {
		return fmt.Errorf("config: pet_interval_ms must be positive, got %d", c.PetIntervalMs)
	}
	if interval := c.PetInterval(); interval >= c.firstStageDeadline() {
		return fmt.Errorf("config: pet interval %v misses the %v first-stage deadline",
			interval, c.firstStageDeadline())
	}
	return nil
}

// PetInterval returns the pet period as a duration.
func (c *Config) PetInterval() time.Duration {
	return time.Duration(c.PetIntervalMs) * time.Millisecond
}

// Flags builds the CONTROL register byte written on start.
func (c *Config) Flags() uint8 {
	var b uint8
	if c.EnableReset {
		b |= core.CtrlEnableReset
	}
	if c.EnablePowerCycle {
		b |= core.CtrlEnablePowerCycle
	}
	if c.EnableAlert {
		b |= core.CtrlEnableAlert
	}
	return b
}

// firstStageDeadline is how long the device waits before the alert stage,
// given the configured reload value.
func (c *Config) firstStageDeadline() time.Duration {
	return time.Duration(c.Reload) * core.TickPeriod
}
