package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the conventional name of the configuration file.
const FileName = "glclean.yaml"

// DefaultUploadLimit caps uploaded workbooks at 16 MiB.
const DefaultUploadLimit int64 = 16 << 20

// Config represents the top-level glclean.yaml configuration.
type Config struct {
	Paths      PathsConfig      `yaml:"paths"`
	Outputs    OutputsConfig    `yaml:"outputs"`
	Period     PeriodConfig     `yaml:"period"`
	Statements StatementsConfig `yaml:"statements"`
	Server     ServerConfig     `yaml:"server"`
}

// PathsConfig locates the directories the pipeline reads and writes.
type PathsConfig struct {
	Output string `yaml:"output"`
	Upload string `yaml:"upload"`
}

// OutputsConfig names the generated workbooks.
type OutputsConfig struct {
	Chart      string `yaml:"chart"`
	Ledgers    string `yaml:"ledgers"`
	Statements string `yaml:"statements"`
	Summary    string `yaml:"summary"`
}

// Names returns the output file names in a stable order.
func (o OutputsConfig) Names() []string {
	return []string{o.Ledgers, o.Statements, o.Chart, o.Summary}
}

// PeriodConfig is the reporting period assumed for sheets without one.
type PeriodConfig struct {
	DefaultStart string `yaml:"default_start"` // "dd.mm.yyyy"
	DefaultEnd   string `yaml:"default_end"`
}

// StatementsConfig controls balance checking and the period-result row.
type StatementsConfig struct {
	Tolerance  float64 `yaml:"tolerance"`
	PlugNumber string  `yaml:"plug_number"`
	PlugName   string  `yaml:"plug_name"`
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Addr        string `yaml:"addr"`
	UploadLimit int64  `yaml:"upload_limit"` // bytes
}

// Load reads a glclean.yaml file from disk. Fields missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads path when it exists and returns the defaults otherwise.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Output: ".",
			Upload: "uploads",
		},
		Outputs: OutputsConfig{
			Chart:      "Plan_Comptable.xlsx",
			Ledgers:    "Comptes_Cleans.xlsx",
			Statements: "Financial_Statements.xlsx",
			Summary:    "Summary.xlsx",
		},
		Period: PeriodConfig{
			DefaultStart: "01.01.2023",
			DefaultEnd:   "31.12.2023",
		},
		Statements: StatementsConfig{
			Tolerance:  0.01,
			PlugNumber: "2979",
			PlugName:   "Résultat de l’exercice",
		},
		Server: ServerConfig{
			Addr:        ":5000",
			UploadLimit: DefaultUploadLimit,
		},
	}
}

// Environment variables that override file settings.
const (
	EnvAddr      = "GLCLEAN_ADDR"
	EnvOutputDir = "GLCLEAN_OUTPUT_DIR"
	EnvUploadDir = "GLCLEAN_UPLOAD_DIR"
)

// ApplyEnv overrides settings from non-empty environment variables looked
// up through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvAddr)); v != "" {
		c.Server.Addr = v
	}
	if v := strings.TrimSpace(getenv(EnvOutputDir)); v != "" {
		c.Paths.Output = v
	}
	if v := strings.TrimSpace(getenv(EnvUploadDir)); v != "" {
		c.Paths.Upload = v
	}
}
