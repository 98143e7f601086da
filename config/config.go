package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/mhoffer/parkcast/core/recommend"
	"github.com/mhoffer/parkcast/infra/mqtt"
)

type Config struct {
	Dataset   DatasetConfig    `json:"dataset"`
	Model     ModelConfig      `json:"model"`
	Simulator SimulatorConfig  `json:"simulator"`
	Policy    recommend.Policy `json:"policy"`
	Metrics   MetricsConfig    `json:"metrics"`
	MQTT      mqtt.Config      `json:"mqtt"`
}

// DatasetConfig locates the static parking dataset.
type DatasetConfig struct {
	// Path is the CSV file the catalog and pattern tables are built from.
	Path string `json:"path"`
}

// ModelConfig locates the trained model artifact bundle.
type ModelConfig struct {
	// Dir holds the four artifact files. Missing artifacts put the
	// predictor in degraded mode rather than failing startup.
	Dir string `json:"dir"`
}

// SimulatorConfig controls booking table generation.
type SimulatorConfig struct {
	// Seed fixes the pseudo-random stream so the table is stable for the
	// whole session.
	Seed int64 `json:"seed"`
}

// MetricsConfig defines settings for metrics sinks.
type MetricsConfig struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Dataset.Path == "" {
		c.Dataset.Path = "resources/parking.csv"
	}
	if c.Model.Dir == "" {
		c.Model.Dir = "models"
	}
	if c.Simulator.Seed == 0 {
		c.Simulator.Seed = 42
	}
	if c.Metrics.PrometheusPort == "" {
		c.Metrics.PrometheusPort = ":2112"
	}
	c.Policy.SetDefaults()
	c.MQTT.SetDefaults()
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Dataset.Path == "" {
		return fmt.Errorf("dataset path is required")
	}
	if c.Metrics.InfluxEnabled && c.Metrics.InfluxURL == "" {
		return fmt.Errorf("influx_url is required when influx is enabled")
	}
	return c.MQTT.Validate()
}

// Load reads the configuration file and applies PK_ environment overrides.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		// A missing file is fine: defaults plus environment overrides
		// describe a complete demo setup.
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("PK_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "pk_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
