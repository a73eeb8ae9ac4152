// Command pushy opens a viewport on a scene and runs the push/pull tool: hold
// the hotkey and drag left or right to move the selection along the camera axis.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gekko3d/pushy"
)

const (
	StateRunning pushy.State = iota
	StateExit
)

func main() {
	var configPath, scenePath string
	var debug bool
	flag.StringVar(&configPath, "config", "", "TOML config file")
	flag.StringVar(&scenePath, "scene", "", "JSON scene file (default: built-in cube)")
	flag.BoolVar(&debug, "debug", false, "debug logging")
	flag.Parse()

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if scenePath != "" {
		cfg.ScenePath = scenePath
	}
	if debug {
		cfg.Debug = true
	}

	scene := pushy.DefaultScene()
	if cfg.ScenePath != "" {
		if scene, err = pushy.LoadScene(cfg.ScenePath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	app := pushy.NewAppBuilder().
		UseStates(StateRunning, StateExit).
		UseModule(
			pushy.LoggingModule{Prefix: cfg.LogPrefix, Debug: cfg.Debug},
			pushy.NewPlatformWindow(cfg.WindowWidth, cfg.WindowHeight, cfg.WindowTitle),
			pushy.InputModule{},
			pushy.HierarchyModule{},
			pushy.PushPullModule{Config: cfg},
			pushy.CameraNavModule{},
		).
		Build()

	if err := pushy.SpawnScene(app.Commands(), scene); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	app.FlushCommands()
	app.UseSystem(
		pushy.System(pushy.ToolTitleSystem).
			InStage(pushy.PostUpdate).
			InState(pushy.OnExecute(StateRunning)),
	)

	if ws, ok := pushy.Resource[pushy.WindowState](app); ok {
		defer ws.Destroy()
	}
	app.Run()
}

func loadConfig(path string) (pushy.Config, error) {
	cfg := pushy.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = pushy.LoadConfig(path); err != nil {
			return pushy.Config{}, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return pushy.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return pushy.Config{}, err
	}
	return cfg, nil
}
