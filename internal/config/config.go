package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/san-kum/motionlab/internal/kinematics"
	"github.com/san-kum/motionlab/internal/session"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFallTime        = 1.0
	DefaultInitialVelocity = 20.0
	DefaultAngle           = 45
	DefaultPlotWidth       = 60
	DefaultPlotHeight      = 12
	DefaultLocale          = "en-US"
	DefaultTheme           = "ocean"
	DefaultDataDir         = ".motionlab"
	DefaultLogName         = "motionlab.log"
)

// ErrInvalidPlot is returned when the plot size cannot hold a graph.
var ErrInvalidPlot = errors.New("config: plot width and height must be positive")

type Config struct {
	Locale    string         `yaml:"locale" env:"MOTIONLAB_LOCALE"`
	Theme     string         `yaml:"theme" env:"MOTIONLAB_THEME"`
	DataDir   string         `yaml:"data_dir" env:"MOTIONLAB_DATA_DIR"`
	LogFile   string         `yaml:"log_file" env:"MOTIONLAB_LOG_FILE"`
	StartView session.View   `yaml:"start_view"`
	Inputs    session.Inputs `yaml:"inputs"`
	Plot      PlotConfig     `yaml:"plot"`
}

type PlotConfig struct {
	Width  int `yaml:"width" env:"MOTIONLAB_PLOT_WIDTH"`
	Height int `yaml:"height" env:"MOTIONLAB_PLOT_HEIGHT"`
}

func DefaultConfig() *Config {
	return &Config{
		Locale:    DefaultLocale,
		Theme:     DefaultTheme,
		DataDir:   DefaultDataDir,
		StartView: session.Home,
		Inputs: session.Inputs{
			FallTime: DefaultFallTime,
			Projectile: session.ProjectileInputs{
				InitialVelocity: DefaultInitialVelocity,
				Angle:           DefaultAngle,
			},
		},
		Plot: PlotConfig{
			Width:  DefaultPlotWidth,
			Height: DefaultPlotHeight,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path yields the
// defaults. Environment overrides are applied afterwards.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from MOTIONLAB_* environment variables.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

// Save writes cfg to path in the format Load reads.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// WriteYAML writes cfg in the same format Load reads.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return enc.Close()
}

// Validate clamps slider defaults into their domains and rejects an
// unusable plot size.
func (c *Config) Validate() error {
	if c.Plot.Width <= 0 || c.Plot.Height <= 0 {
		return ErrInvalidPlot
	}
	c.Inputs.FallTime = kinematics.Clamp(c.Inputs.FallTime, kinematics.FallTimeMin, kinematics.FallTimeMax)
	c.Inputs.Projectile.Angle = kinematics.ClampInt(c.Inputs.Projectile.Angle, kinematics.AngleMin, kinematics.AngleMax)
	if !c.StartView.Valid() {
		c.StartView = session.Home
	}
	return nil
}

// LogPath is where the interactive session writes its log.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, DefaultLogName)
}
