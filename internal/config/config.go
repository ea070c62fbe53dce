// Package config loads codexterm configuration from YAML via viper.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/asynkron/codexterm/internal/execclient"
	"github.com/asynkron/codexterm/internal/lessons"
)

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

// PlaygroundStarterCode seeds the playground editor.
const PlaygroundStarterCode = `# Welcome to Python Playground!
def greet(name):
    """Simple greeting function"""
    return f"Hello, {name}!"

# Test the function
message = greet("World")
print(message)

# Try some math
numbers = [1, 2, 3, 4, 5]
sum_result = sum(numbers)
print(f"Sum of numbers: {sum_result}")`

// LessonStarterCode seeds the editor on a lesson page.
const LessonStarterCode = "# Write your Python code here\nprint(\"Hello, World!\")\n"

// Config is the top-level configuration.
type Config struct {
	ConfigVersion int           `mapstructure:"config_version" yaml:"config_version"`
	Execute       ExecuteConfig `mapstructure:"execute" yaml:"execute"`
	Lessons       LessonsConfig `mapstructure:"lessons" yaml:"lessons"`
	Playground    StarterConfig `mapstructure:"playground" yaml:"playground"`
	Lesson        StarterConfig `mapstructure:"lesson" yaml:"lesson"`
	Auth          AuthConfig    `mapstructure:"auth" yaml:"auth"`
	Logging       LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Serve         ServeConfig   `mapstructure:"serve" yaml:"serve"`
}

// ExecuteConfig points the client at the execution endpoint and configures
// the interpreter used by serve.
type ExecuteConfig struct {
	URL             string        `mapstructure:"url" yaml:"url"`
	Timeout         time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Interpreter     string        `mapstructure:"interpreter" yaml:"interpreter"`
	InterpreterArgs []string      `mapstructure:"interpreter_args" yaml:"interpreter_args"`
	// Workdir is the interpreter's working directory for run --local and
	// serve. Empty inherits the caller's directory.
	Workdir         string        `mapstructure:"workdir" yaml:"workdir"`
}

// LessonsConfig selects where lessons come from. File wins over the API.
type LessonsConfig struct {
	File   string `mapstructure:"file" yaml:"file"`
	APIURL string `mapstructure:"api_url" yaml:"api_url"`
	Course string `mapstructure:"course" yaml:"course"`
}

// StarterConfig holds the code an editor starts with.
type StarterConfig struct {
	StarterCode string `mapstructure:"starter_code" yaml:"starter_code"`
}

// AuthConfig seeds the signed-in flag. Any non-empty token counts as signed in.
type AuthConfig struct {
	Token string `mapstructure:"token" yaml:"token"`
}

// LoggingConfig controls where interactive commands write logs.
type LoggingConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

// ServeConfig configures the execution endpoint server.
type ServeConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		ConfigVersion: CurrentConfigVersion,
		Execute: ExecuteConfig{
			URL:             execclient.DefaultEndpoint,
			Timeout:         0,
			Interpreter:     execclient.DefaultInterpreter[0],
			InterpreterArgs: append([]string(nil), execclient.DefaultInterpreter[1:]...),
		},
		Lessons: LessonsConfig{
			APIURL: lessons.DefaultAPIURL,
		},
		Playground: StarterConfig{StarterCode: PlaygroundStarterCode},
		Lesson:     StarterConfig{StarterCode: LessonStarterCode},
		Logging: LoggingConfig{
			File:  filepath.Join(home, ".codexterm", "codexterm.log"),
			Level: "info",
		},
		Serve: ServeConfig{Addr: ":5000"},
	}, nil
}

// DefaultConfigPath returns the standard config path.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".codexterm", "config.yaml"), nil
}

// LoggedIn reports whether the config seeds a signed-in session.
func (c Config) LoggedIn() bool {
	return c.Auth.Token != ""
}
