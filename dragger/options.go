package dragger

import (
	"fmt"
	"strings"
)

const (
	// DefaultSensitivity converts screen pixels into a depth fraction.
	DefaultSensitivity float32 = 0.005
	// DefaultOrthoSpeed multiplies the delta for orthographic cameras.
	DefaultOrthoSpeed float32 = 2
)

type Modifier int

const (
	ModNone Modifier = iota
	ModShift
	ModCtrl
	ModAlt
)

func (m Modifier) String() string {
	switch m {
	case ModShift:
		return "shift"
	case ModCtrl:
		return "ctrl"
	case ModAlt:
		return "alt"
	}
	return "none"
}

func ParseModifier(s string) (Modifier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ModNone, nil
	case "shift":
		return ModShift, nil
	case "ctrl", "control":
		return ModCtrl, nil
	case "alt":
		return ModAlt, nil
	}
	return ModNone, fmt.Errorf("unknown modifier %q", s)
}

type Options struct {
	Sensitivity float32
	OrthoSpeed  float32
	// CompensateModifier held at press time turns on scale compensation.
	CompensateModifier Modifier
	// ScaleContexts are tool contexts that turn on scale compensation when the
	// drag starts from them.
	ScaleContexts []string
}

func DefaultOptions() Options {
	return Options{
		Sensitivity:        DefaultSensitivity,
		OrthoSpeed:         DefaultOrthoSpeed,
		CompensateModifier: ModCtrl,
		ScaleContexts:      []string{"scale"},
	}
}
