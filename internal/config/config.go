package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FieldCounts holds how many inputs each thesis list starts with.
type FieldCounts struct {
	Ideas        int `yaml:"ideas" toml:"ideas"`
	Catalysts    int `yaml:"catalysts" toml:"catalysts"`
	Fundamentals int `yaml:"fundamentals" toml:"fundamentals"`
	Risks        int `yaml:"risks" toml:"risks"`
	Plan         int `yaml:"plan" toml:"plan"`
}

// Config holds all application configuration.
type Config struct {
	Author    string `yaml:"author" toml:"author"`
	OutputDir string `yaml:"output_dir" toml:"output_dir"`
	Server    struct {
		Addr      string  `yaml:"addr" toml:"addr"`
		RateLimit float64 `yaml:"rate_limit" toml:"rate_limit"` // requests per second per client, negative disables
		Burst     int     `yaml:"burst" toml:"burst"`
	} `yaml:"server" toml:"server"`
	Report struct {
		GaugeWidth int `yaml:"gauge_width" toml:"gauge_width"`
	} `yaml:"report" toml:"report"`
	Thesis struct {
		InitialFields FieldCounts `yaml:"initial_fields" toml:"initial_fields"`
	} `yaml:"thesis" toml:"thesis"`
}

// DefaultPath is used when CONFIG_PATH is unset.
const DefaultPath = "configs/config.yaml"

// Path returns the config file location, honouring CONFIG_PATH.
func Path() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return DefaultPath
}

// Load reads config from a YAML or TOML file, then applies environment
// variable overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := decode(path, data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("ADVISOR_AUTHOR"); v != "" {
		cfg.Author = v
	}
	if v := os.Getenv("ADVISOR_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("ADVISOR_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("ADVISOR_GAUGE_WIDTH"); v != "" {
		if w, err := strconv.Atoi(v); err == nil {
			cfg.Report.GaugeWidth = w
		}
	}

	// Defaults
	if cfg.OutputDir == "" {
		cfg.OutputDir = "out"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.RateLimit == 0 {
		cfg.Server.RateLimit = 10
	}
	if cfg.Server.Burst == 0 {
		cfg.Server.Burst = 20
	}
	if cfg.Report.GaugeWidth == 0 {
		cfg.Report.GaugeWidth = 20
	}
	fc := &cfg.Thesis.InitialFields
	if fc.Ideas == 0 {
		fc.Ideas = 3
	}
	if fc.Catalysts == 0 {
		fc.Catalysts = 2
	}
	if fc.Fundamentals == 0 {
		fc.Fundamentals = 3
	}
	if fc.Risks == 0 {
		fc.Risks = 2
	}
	if fc.Plan == 0 {
		fc.Plan = 3
	}

	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Unmarshal(data, cfg)
	default:
		return yaml.Unmarshal(data, cfg)
	}
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.Report.GaugeWidth < 5 || c.Report.GaugeWidth > 100 {
		return fmt.Errorf("report.gauge_width must be between 5 and 100")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.RateLimit > 0 && c.Server.Burst < 1 {
		return fmt.Errorf("server.burst must be at least 1 when rate limiting is on")
	}
	fc := c.Thesis.InitialFields
	for name, n := range map[string]int{
		"ideas": fc.Ideas, "catalysts": fc.Catalysts, "fundamentals": fc.Fundamentals,
		"risks": fc.Risks, "plan": fc.Plan,
	} {
		if n < 0 {
			return fmt.Errorf("thesis.initial_fields.%s must not be negative", name)
		}
	}
	return nil
}
