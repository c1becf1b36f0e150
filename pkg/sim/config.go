package sim

import (
	"encoding/json"
	"os"
)

const DefaultConfigFile = "quadsim.json"

// FileConfig is the persisted simulator configuration
type FileConfig struct {
	CPR      int        `json:"cpr"`
	Axes     int        `json:"axes"`
	Hz       int        `json:"hz"`
	Axis1    AxisConfig `json:"axis1"`
	Axis2    AxisConfig `json:"axis2"`
	Quantize bool       `json:"quantize"`
}

// AxisConfig describes a steady-rotation trajectory for one axis
type AxisConfig struct {
	Rate   float64 `json:"rate"`   // degrees per second
	Offset float64 `json:"offset"` // starting angle in degrees
}

// ToConfig converts the persisted form into a runnable Config
func (c *FileConfig) ToConfig() Config {
	return Config{
		CPR:      c.CPR,
		Axes:     c.Axes,
		Hz:       c.Hz,
		Axis1:    ConstantRate{Rate: c.Axis1.Rate, Offset: c.Axis1.Offset},
		Axis2:    ConstantRate{Rate: c.Axis2.Rate, Offset: c.Axis2.Offset},
		Quantize: c.Quantize,
	}
}

// DefaultFileConfig returns the configuration the setup command starts
// from: the script defaults of 1 deg/sec on axis 1 and 10 deg/sec on
// axis 2 offset by 90 degrees.
func DefaultFileConfig() FileConfig {
	return FileConfig{
		CPR:   4096,
		Axes:  2,
		Hz:    20,
		Axis1: AxisConfig{Rate: 1.0},
		Axis2: AxisConfig{Rate: 10.0, Offset: 90.0},
	}
}

// LoadConfig loads configuration from the default config file
func LoadConfig() (*FileConfig, error) {
	return LoadConfigFrom(DefaultConfigFile)
}

// LoadConfigFrom loads configuration from a specific file
func LoadConfigFrom(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg FileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save saves configuration to the default config file
func (c *FileConfig) Save() error {
	return c.SaveTo(DefaultConfigFile)
}

// SaveTo saves configuration to a specific file
func (c *FileConfig) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ConfigExists returns true if the default config file exists
func ConfigExists() bool {
	_, err := os.Stat(DefaultConfigFile)
	return err == nil
}
