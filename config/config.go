package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/buptczq/WinMenu/common"
)

// Config captures runtime configuration for the host.
type Config struct {
	Window   Window
	Settings Settings
	Remote   Remote
	Logging  Logging
	NoTray   bool
}

type Window struct {
	Title         string
	Width, Height int
}

type Settings struct {
	IniName string
	DataDir string
}

type Remote struct {
	Enabled  bool
	PipeName string
}

type Logging struct {
	FilePath string
	Debug    bool
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet(common.APP_NAME, flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	title := fs.String("title", common.APP_NAME, "window title")
	width := fs.Int("width", 640, "window width in pixels")
	height := fs.Int("height", 480, "window height in pixels")
	iniName := fs.String("ini", envOrDefault(env, common.ENV_INI, common.INI_NAME), "settings file; bare names live in the data directory")
	dataDir := fs.String("data-dir", envOrDefault(env, common.ENV_DATA_DIR, ""), "data directory (default: data next to the executable)")
	pipe := fs.String("pipe", envOrDefault(env, common.ENV_PIPE, common.PIPE_NAME), "named pipe for remote control")
	noPipe := fs.Bool("no-pipe", envOrBool(env, common.ENV_NO_PIPE, false), "disable the remote control pipe")
	noTray := fs.Bool("no-tray", envOrBool(env, common.ENV_NO_TRAY, false), "do not show a tray icon")
	logFile := fs.String("log-file", envOrDefault(env, common.ENV_LOG_FILE, ""), "write JSON logs to this file")
	debug := fs.Bool("debug", envOrBool(env, common.ENV_DEBUG, false), "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if *width <= 0 || *height <= 0 {
		return Config{}, fmt.Errorf("window size must be positive (got %dx%d)", *width, *height)
	}
	if strings.TrimSpace(*iniName) == "" {
		return Config{}, fmt.Errorf("settings file name must not be empty")
	}

	return Config{
		Window: Window{
			Title:  *title,
			Width:  *width,
			Height: *height,
		},
		Settings: Settings{
			IniName: *iniName,
			DataDir: *dataDir,
		},
		Remote: Remote{
			Enabled:  !*noPipe,
			PipeName: *pipe,
		},
		Logging: Logging{
			FilePath: *logFile,
			Debug:    *debug,
		},
		NoTray: *noTray,
	}, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok && v != "" {
		return v
	}
	return fallback
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
