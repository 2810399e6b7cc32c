// Package config loads engine and sandbox settings from a YAML file, with
// sane defaults when no file is given.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tomz197/roundbox/internal/physics"
)

// Config is the root of the YAML file.
type Config struct {
	Physics PhysicsConfig `yaml:"physics"`
	Sandbox SandboxConfig `yaml:"sandbox"`
	SSH     SSHConfig     `yaml:"ssh"`
}

// PhysicsConfig tunes the collision engine. Zero values fall back to the
// physics package defaults.
type PhysicsConfig struct {
	CellSize           float64 `yaml:"cell_size"`
	DenseCellThreshold int     `yaml:"dense_cell_threshold"`
	SolverIterations   int     `yaml:"solver_iterations"`
	Restitution        float64 `yaml:"restitution"`
	Epsilon            float64 `yaml:"epsilon"`
	MaxSpeed           float64 `yaml:"max_speed"`
}

// SandboxConfig sizes the demo arena, in world units.
type SandboxConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	FPS    int     `yaml:"fps"`
}

// SSHConfig configures the wish server. Env vars override file values.
type SSHConfig struct {
	Host        string `yaml:"host"`
	Port        string `yaml:"port"`
	HostKeyPath string `yaml:"host_key_path"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Physics: PhysicsConfig{
			CellSize:           physics.DefaultCellSize,
			DenseCellThreshold: physics.DefaultDenseCellThreshold,
			SolverIterations:   physics.DefaultIterations,
			Restitution:        physics.DefaultRestitution,
			Epsilon:            physics.DefaultEpsilon,
			MaxSpeed:           physics.DefaultMaxSpeed,
		},
		Sandbox: SandboxConfig{
			Width:  120,
			Height: 80,
			FPS:    60,
		},
		SSH: SSHConfig{
			Host:        "::",
			Port:        "2222",
			HostKeyPath: ".ssh/roundbox_host_key",
		},
	}
}

// Load reads and parses the YAML file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path when non-empty, the defaults otherwise.
func LoadOrDefault(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Params maps the physics section onto engine parameters.
func (c Config) Params() physics.Params {
	return physics.Params{
		CellSize:           c.Physics.CellSize,
		DenseCellThreshold: c.Physics.DenseCellThreshold,
		Iterations:         c.Physics.SolverIterations,
		Restitution:        c.Physics.Restitution,
		Epsilon:            c.Physics.Epsilon,
		MaxSpeed:           c.Physics.MaxSpeed,
	}
}

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
