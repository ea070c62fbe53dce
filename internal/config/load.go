package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Load reads configuration from the provided path. If path is empty, uses
// DefaultConfigPath. A missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("execute.url", cfg.Execute.URL)
	v.SetDefault("execute.timeout", cfg.Execute.Timeout)
	v.SetDefault("execute.interpreter", cfg.Execute.Interpreter)
	v.SetDefault("execute.interpreter_args", cfg.Execute.InterpreterArgs)
	v.SetDefault("execute.workdir", cfg.Execute.Workdir)
	v.SetDefault("lessons.file", cfg.Lessons.File)
	v.SetDefault("lessons.api_url", cfg.Lessons.APIURL)
	v.SetDefault("lessons.course", cfg.Lessons.Course)
	v.SetDefault("playground.starter_code", cfg.Playground.StarterCode)
	v.SetDefault("lesson.starter_code", cfg.Lesson.StarterCode)
	v.SetDefault("auth.token", cfg.Auth.Token)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("serve.addr", cfg.Serve.Addr)

	configLoaded := false
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		configLoaded = true
	}

	if configLoaded {
		if !v.InConfig("config_version") {
			return Config{}, fmt.Errorf("config_version is required; expected %d", CurrentConfigVersion)
		}
		if v.GetInt("config_version") != CurrentConfigVersion {
			return Config{}, fmt.Errorf("unsupported config_version %d; expected %d", v.GetInt("config_version"), CurrentConfigVersion)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	expandConfigEnv(&cfg)
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if err := validateURL("execute.url", cfg.Execute.URL); err != nil {
		return err
	}
	if cfg.Lessons.APIURL != "" {
		if err := validateURL("lessons.api_url", cfg.Lessons.APIURL); err != nil {
			return err
		}
	}
	if cfg.Execute.Timeout < 0 {
		return fmt.Errorf("execute.timeout must not be negative")
	}
	// A bare number decodes as nanoseconds.
	if cfg.Execute.Timeout > 0 && cfg.Execute.Timeout < time.Millisecond {
		return fmt.Errorf("execute.timeout %v is below 1ms; include a unit (e.g. 5s)", cfg.Execute.Timeout)
	}
	if strings.TrimSpace(cfg.Execute.Interpreter) == "" {
		return fmt.Errorf("execute.interpreter is required")
	}
	return nil
}

func validateURL(key, raw string) error {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("%s must be an http(s) URL with a host (e.g. http://localhost:5000/execute)", key)
	}
	return nil
}

func expandConfigEnv(cfg *Config) {
	if cfg == nil {
		return
	}
	cfg.Lessons.File = expandEnv(cfg.Lessons.File)
	cfg.Logging.File = expandEnv(cfg.Logging.File)
	cfg.Execute.Interpreter = expandEnv(cfg.Execute.Interpreter)
	cfg.Execute.Workdir = expandEnv(cfg.Execute.Workdir)
	cfg.Auth.Token = expandEnv(cfg.Auth.Token)
}

func expandEnv(value string) string {
	if value == "" {
		return value
	}
	return os.Expand(value, func(key string) string {
		if key == "" {
			return ""
		}
		if val, ok := os.LookupEnv(key); ok {
			return val
		}
		return "$" + key
	})
}

// WriteDefault writes the default config to the target path.
func WriteDefault(path string, overwrite bool) (string, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config already exists at %s", path)
		}
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
