package onion

import (
	"bytes"
	"fmt"
	"os"

	"github.com/gekko3d/onion/platform"
	"github.com/gekko3d/onion/render/core"
	"github.com/gekko3d/onion/render/gpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type CameraConfig struct {
	Eye    [3]float32 `toml:"eye"`
	Target [3]float32 `toml:"target"`
	Up     [3]float32 `toml:"up"`
	Fovy   float32    `toml:"fovy"`
	Znear  float32    `toml:"znear"`
	Zfar   float32    `toml:"zfar"`
	// Speed is the orbit controller step per update.
	Speed float32 `toml:"speed"`
}

type GridConfig struct {
	Rows    int     `toml:"rows"`
	Cols    int     `toml:"cols"`
	Spacing float32 `toml:"spacing"`
}

// Config is the engine configuration. LoadConfig overlays a TOML file on
// DefaultConfig, so a file only needs the keys it changes.
type Config struct {
	Debug       bool         `toml:"debug"`
	PresentMode string       `toml:"present_mode"`
	ClearColor  [4]float64   `toml:"clear_color"`
	ExitKey     string       `toml:"exit_key"`
	Window      WindowConfig `toml:"window"`
	Camera      CameraConfig `toml:"camera"`
	Instances   GridConfig   `toml:"instances"`
}

func DefaultConfig() Config {
	return Config{
		PresentMode: "auto",
		ClearColor:  [4]float64{0.1, 0.2, 0.3, 1.0},
		ExitKey:     "escape",
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Onion",
		},
		Camera: CameraConfig{
			Eye:    [3]float32{0, 1, 2},
			Target: [3]float32{0, 0, 0},
			Up:     [3]float32{0, 1, 0},
			Fovy:   45,
			Znear:  0.1,
			Zfar:   100,
			Speed:  0.2,
		},
		Instances: GridConfig{Rows: 10, Cols: 10, Spacing: 1},
	}
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes TOML over the defaults and validates the result.
// Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if _, _, ok := gpu.ParsePresentMode(c.PresentMode); !ok {
		return fmt.Errorf("unknown present_mode %q", c.PresentMode)
	}
	if _, err := c.ExitKeyValue(); err != nil {
		return err
	}
	if c.Camera.Fovy <= 0 || c.Camera.Fovy >= 180 {
		return fmt.Errorf("camera fovy must be in (0, 180), got %v", c.Camera.Fovy)
	}
	if c.Camera.Znear <= 0 || c.Camera.Zfar <= c.Camera.Znear {
		return fmt.Errorf("camera planes must satisfy 0 < znear < zfar, got %v..%v", c.Camera.Znear, c.Camera.Zfar)
	}
	if c.Camera.Eye == c.Camera.Target {
		return fmt.Errorf("camera eye and target coincide at %v", c.Camera.Eye)
	}
	up := mgl32.Vec3(c.Camera.Up)
	if up.Len() < 1e-6 {
		return fmt.Errorf("camera up must be non-zero, got %v", c.Camera.Up)
	}
	forward := mgl32.Vec3(c.Camera.Target).Sub(mgl32.Vec3(c.Camera.Eye)).Normalize()
	if forward.Cross(up.Normalize()).Len() < 1e-6 {
		return fmt.Errorf("camera up %v is parallel to the view direction", c.Camera.Up)
	}
	if c.Camera.Speed < 0 {
		return fmt.Errorf("camera speed must not be negative, got %v", c.Camera.Speed)
	}
	if c.Instances.Rows < 0 || c.Instances.Cols < 0 {
		return fmt.Errorf("instance grid must not be negative, got %dx%d", c.Instances.Rows, c.Instances.Cols)
	}
	return nil
}

// ExitKeyValue resolves ExitKey. "" and "none" disable the exit key.
func (c Config) ExitKeyValue() (platform.Key, error) {
	if c.ExitKey == "" || c.ExitKey == "none" {
		return platform.KeyUnknown, nil
	}
	k, ok := platform.ParseKey(c.ExitKey)
	if !ok {
		return platform.KeyUnknown, fmt.Errorf("unknown exit_key %q", c.ExitKey)
	}
	return k, nil
}

// NewCamera builds the configured camera. Aspect is fixed up from the
// surface at graphics init.
func (c Config) NewCamera() *core.Camera {
	return core.NewCamera(
		mgl32.Vec3(c.Camera.Eye),
		mgl32.Vec3(c.Camera.Target),
		mgl32.Vec3(c.Camera.Up),
		c.Camera.Fovy,
		float32(c.Window.Width)/float32(c.Window.Height),
		c.Camera.Znear,
		c.Camera.Zfar,
	)
}

func (c Config) GPUOptions(logger Logger) []gpu.Option {
	cc := c.ClearColor
	return []gpu.Option{
		gpu.WithLogger(logger),
		gpu.WithPresentMode(c.PresentMode),
		gpu.WithClearColor(cc[0], cc[1], cc[2], cc[3]),
		gpu.WithCamera(c.NewCamera()),
		gpu.WithInstanceGrid(c.Instances.Rows, c.Instances.Cols, c.Instances.Spacing),
	}
}
