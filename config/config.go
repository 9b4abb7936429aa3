// Package config provides configuration loading and access for the toy.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Scene     SceneConfig     `yaml:"scene"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Materials MaterialsConfig `yaml:"materials"`
	Tilt      TiltConfig      `yaml:"tilt"`
	Arena     ArenaConfig     `yaml:"arena"`
	Camera    CameraConfig    `yaml:"camera"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SceneConfig selects the mode and the models dropped into the arena.
type SceneConfig struct {
	Mode       string  `yaml:"mode"`        // well | box | orbit
	Model      string  `yaml:"model"`       // heart | frame | obj
	ModelPath  string  `yaml:"model_path"`  // OBJ path when model=obj
	ModelScale float64 `yaml:"model_scale"` // uniform visual/collision scale
	Count      int     `yaml:"count"`       // number of dropped models
	DropHeight float64 `yaml:"drop_height"` // spawn height above the floor
	Mass       float64 `yaml:"mass"`        // per-model mass
}

// PhysicsConfig holds integrator and solver parameters.
type PhysicsConfig struct {
	DT                   float64 `yaml:"dt"`                    // fixed step seconds
	MaxSubsteps          int     `yaml:"max_substeps"`          // catch-up bound per frame
	SolverIterations     int     `yaml:"solver_iterations"`     // contact relaxation passes
	LinearDamping        float64 `yaml:"linear_damping"`        // per-second velocity decay [0,1)
	AngularDamping       float64 `yaml:"angular_damping"`       // per-second spin decay [0,1)
	MaxSpeed             float64 `yaml:"max_speed"`             // velocity clamp, 0 = off
	RestitutionThreshold float64 `yaml:"restitution_threshold"` // min impact speed for bounce
}

// MaterialsConfig holds the contact material table.
type MaterialsConfig struct {
	DefaultFriction    float64        `yaml:"default_friction"`
	DefaultRestitution float64        `yaml:"default_restitution"`
	Pairs              []MaterialPair `yaml:"pairs"`
}

// MaterialPair tunes the contact response between two material tags.
type MaterialPair struct {
	A           string  `yaml:"a"`
	B           string  `yaml:"b"`
	Friction    float64 `yaml:"friction"`
	Restitution float64 `yaml:"restitution"`
}

// TiltConfig holds the gravity input mapping parameters.
type TiltConfig struct {
	MaxAngleDeg float64 `yaml:"max_angle_deg"` // clamp for each tilt axis
	Scale       float64 `yaml:"scale"`         // horizontal gravity per full tilt
	Vertical    float64 `yaml:"vertical"`      // constant floor-ward component (negative)
}

// ArenaConfig holds boundary geometry parameters.
type ArenaConfig struct {
	Margin        float64 `yaml:"margin"`         // wall overshoot past frustum edges
	WallHeight    float64 `yaml:"wall_height"`    // floor-arena wall height
	WallThickness float64 `yaml:"wall_thickness"` // floor-arena wall thickness
	Depth         float64 `yaml:"depth"`          // sandwich half-depth along the camera axis
}

// CameraConfig holds view parameters shared by rendering and boundary math.
type CameraConfig struct {
	FovYDeg  float64 `yaml:"fov_y_deg"`
	Distance float64 `yaml:"distance"` // camera to arena plane
}

// TelemetryConfig holds stats collection settings.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // window size in simulation seconds
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	DT32      float32 // Physics.DT as float32
	ScreenW32 float32
	ScreenH32 float32
	Aspect    float64 // Screen.Width / Screen.Height
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.clampMaterials()
	cfg.computeDerived()

	return cfg, nil
}

// clampMaterials forces friction and restitution into [0,1].
// Restitution above 1 would add energy on every bounce.
func (c *Config) clampMaterials() {
	c.Materials.DefaultFriction = clamp01(c.Materials.DefaultFriction)
	c.Materials.DefaultRestitution = clamp01(c.Materials.DefaultRestitution)
	for i := range c.Materials.Pairs {
		p := &c.Materials.Pairs[i]
		p.Friction = clamp01(p.Friction)
		p.Restitution = clamp01(p.Restitution)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Screen.Width <= 0 {
		c.Screen.Width = 1280
	}
	if c.Screen.Height <= 0 {
		c.Screen.Height = 720
	}
	if c.Physics.MaxSubsteps < 1 {
		c.Physics.MaxSubsteps = 1
	}
	if c.Physics.SolverIterations < 1 {
		c.Physics.SolverIterations = 1
	}
	if c.Scene.Count < 1 {
		c.Scene.Count = 1
	}
	if c.Scene.ModelScale <= 0 {
		c.Scene.ModelScale = 1
	}
	if c.Scene.Mass <= 0 {
		c.Scene.Mass = 1
	}

	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.Aspect = float64(c.Screen.Width) / float64(c.Screen.Height)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
