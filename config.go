package pushy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/gekko3d/pushy/dragger"
)

// Config holds tool and window settings. Values come from DefaultConfig, then
// an optional TOML file, then PUSHY_* environment variables.
type Config struct {
	Sensitivity        float32  `env:"PUSHY_SENSITIVITY"`
	OrthoSpeed         float32  `env:"PUSHY_ORTHO_SPEED"`
	CompensateModifier string   `env:"PUSHY_COMPENSATE_MODIFIER"`
	ScaleContexts      []string `env:"PUSHY_SCALE_CONTEXTS" envSeparator:","`

	Hotkey    string `env:"PUSHY_HOTKEY"`
	SelectKey string `env:"PUSHY_SELECT_KEY"`
	MoveKey   string `env:"PUSHY_MOVE_KEY"`
	RotateKey string `env:"PUSHY_ROTATE_KEY"`
	ScaleKey  string `env:"PUSHY_SCALE_KEY"`

	HistoryDepth int    `env:"PUSHY_HISTORY_DEPTH"`
	Debug        bool   `env:"PUSHY_DEBUG"`
	LogPrefix    string `env:"PUSHY_LOG_PREFIX"`

	WindowWidth  int    `env:"PUSHY_WINDOW_WIDTH"`
	WindowHeight int    `env:"PUSHY_WINDOW_HEIGHT"`
	WindowTitle  string `env:"PUSHY_WINDOW_TITLE"`
	ScenePath    string `env:"PUSHY_SCENE"`
}

func DefaultConfig() Config {
	opts := dragger.DefaultOptions()
	return Config{
		Sensitivity:        opts.Sensitivity,
		OrthoSpeed:         opts.OrthoSpeed,
		CompensateModifier: opts.CompensateModifier.String(),
		ScaleContexts:      opts.ScaleContexts,
		Hotkey:             "d",
		SelectKey:          "q",
		MoveKey:            "w",
		RotateKey:          "e",
		ScaleKey:           "r",
		HistoryDepth:       DefaultHistoryDepth,
		LogPrefix:          "pushy",
		WindowWidth:        1280,
		WindowHeight:       720,
		WindowTitle:        "pushy",
	}
}

type fileConfig struct {
	Sensitivity        float32  `toml:"sensitivity"`
	OrthoSpeed         float32  `toml:"ortho_speed"`
	CompensateModifier string   `toml:"compensate_modifier"`
	ScaleContexts      []string `toml:"scale_contexts"`
	Hotkey             string   `toml:"hotkey"`
	SelectKey          string   `toml:"select_key"`
	MoveKey            string   `toml:"move_key"`
	RotateKey          string   `toml:"rotate_key"`
	ScaleKey           string   `toml:"scale_key"`
	HistoryDepth       int      `toml:"history_depth"`
	Debug              bool     `toml:"debug"`
	LogPrefix          string   `toml:"log_prefix"`
	Window             struct {
		Width  int    `toml:"width"`
		Height int    `toml:"height"`
		Title  string `toml:"title"`
	} `toml:"window"`
	Scene string `toml:"scene"`
}

// LoadConfig overlays the TOML file at path on the defaults. Keys missing from
// the file keep their default.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("sensitivity") {
		cfg.Sensitivity = raw.Sensitivity
	}
	if meta.IsDefined("ortho_speed") {
		cfg.OrthoSpeed = raw.OrthoSpeed
	}
	if meta.IsDefined("compensate_modifier") {
		cfg.CompensateModifier = strings.TrimSpace(raw.CompensateModifier)
	}
	if meta.IsDefined("scale_contexts") {
		cfg.ScaleContexts = normalizeList(raw.ScaleContexts)
	}

	if meta.IsDefined("hotkey") {
		cfg.Hotkey = strings.TrimSpace(raw.Hotkey)
	}
	if meta.IsDefined("select_key") {
		cfg.SelectKey = strings.TrimSpace(raw.SelectKey)
	}
	if meta.IsDefined("move_key") {
		cfg.MoveKey = strings.TrimSpace(raw.MoveKey)
	}
	if meta.IsDefined("rotate_key") {
		cfg.RotateKey = strings.TrimSpace(raw.RotateKey)
	}
	if meta.IsDefined("scale_key") {
		cfg.ScaleKey = strings.TrimSpace(raw.ScaleKey)
	}

	if meta.IsDefined("history_depth") {
		cfg.HistoryDepth = raw.HistoryDepth
	}
	if meta.IsDefined("debug") {
		cfg.Debug = raw.Debug
	}
	if meta.IsDefined("log_prefix") {
		cfg.LogPrefix = strings.TrimSpace(raw.LogPrefix)
	}

	if meta.IsDefined("window", "width") {
		cfg.WindowWidth = raw.Window.Width
	}
	if meta.IsDefined("window", "height") {
		cfg.WindowHeight = raw.Window.Height
	}
	if meta.IsDefined("window", "title") {
		cfg.WindowTitle = raw.Window.Title
	}
	if meta.IsDefined("scene") {
		cfg.ScenePath = strings.TrimSpace(raw.Scene)
	}

	return cfg, nil
}

// ApplyEnv overrides fields whose PUSHY_* variable is set.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	c.ScaleContexts = normalizeList(c.ScaleContexts)
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Sensitivity <= 0 {
		errs = append(errs, fmt.Errorf("sensitivity must be positive, got %v", c.Sensitivity))
	}
	if c.OrthoSpeed <= 0 {
		errs = append(errs, fmt.Errorf("ortho_speed must be positive, got %v", c.OrthoSpeed))
	}
	if _, err := dragger.ParseModifier(c.CompensateModifier); err != nil {
		errs = append(errs, err)
	}
	if c.HistoryDepth <= 0 {
		errs = append(errs, fmt.Errorf("history_depth must be positive, got %d", c.HistoryDepth))
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.WindowWidth, c.WindowHeight))
	}

	seen := make(map[Key]string)
	for name, k := range map[string]string{
		"hotkey":     c.Hotkey,
		"select_key": c.SelectKey,
		"move_key":   c.MoveKey,
		"rotate_key": c.RotateKey,
		"scale_key":  c.ScaleKey,
	} {
		key, ok := ParseKey(k)
		if !ok {
			errs = append(errs, fmt.Errorf("%s: unknown key %q", name, k))
			continue
		}
		if other, dup := seen[key]; dup {
			errs = append(errs, fmt.Errorf("%s and %s share key %q", name, other, k))
		}
		seen[key] = name
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SessionOptions converts the tool settings for dragger.NewSession. Call after
// Validate; an unparsable modifier falls back to the default.
func (c Config) SessionOptions() dragger.Options {
	opts := dragger.DefaultOptions()
	opts.Sensitivity = c.Sensitivity
	opts.OrthoSpeed = c.OrthoSpeed
	if mod, err := dragger.ParseModifier(c.CompensateModifier); err == nil {
		opts.CompensateModifier = mod
	}
	if c.ScaleContexts != nil {
		opts.ScaleContexts = append([]string(nil), c.ScaleContexts...)
	}
	return opts
}

func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		v := strings.TrimSpace(s)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
