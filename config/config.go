package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Refund  RefundConfig  `yaml:"refund"`
	Logging LoggingConfig `yaml:"logging"`
}

type StorageConfig struct {
	Dir              string `yaml:"dir"`
	PassengersFile   string `yaml:"passengers_file"`
	FlightsFile      string `yaml:"flights_file"`
	ReservationsFile string `yaml:"reservations_file"`
}

func (s StorageConfig) PassengersPath() string {
	return filepath.Join(s.Dir, s.PassengersFile)
}

func (s StorageConfig) FlightsPath() string {
	return filepath.Join(s.Dir, s.FlightsFile)
}

func (s StorageConfig) ReservationsPath() string {
	return filepath.Join(s.Dir, s.ReservationsFile)
}

type RefundConfig struct {
	FullWindowHours int   `yaml:"full_window_hours"`
	HalfWindowHours int   `yaml:"half_window_hours"`
	EarlyPercent    int64 `yaml:"early_percent"`
	LatePercent     int64 `yaml:"late_percent"`
}

func (r RefundConfig) FullWindow() time.Duration {
	return time.Duration(r.FullWindowHours) * time.Hour
}

func (r RefundConfig) HalfWindow() time.Duration {
	return time.Duration(r.HalfWindowHours) * time.Hour
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Dir:              "data",
			PassengersFile:   "passengers.csv",
			FlightsFile:      "flights.csv",
			ReservationsFile: "reservations.csv",
		},
		Refund: RefundConfig{
			FullWindowHours: 48,
			HalfWindowHours: 24,
			EarlyPercent:    90,
			LatePercent:     50,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// LoadConfig reads a yaml config file, filling unset fields from the
// defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}
