// Package config loads countdown settings from defaults, a TOML file,
// COUNTDOWN_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lixenwraith/countdown/duration"
)

// EnvPrefix prefixes every environment override, e.g. COUNTDOWN_TIMER_TICK
const EnvPrefix = "COUNTDOWN"

// PathEnv names the environment variable consulted when no --config is given
const PathEnv = "COUNTDOWN_CONFIG"

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Timer   Timer   `mapstructure:"timer"`
	Display Display `mapstructure:"display"`
	Sound   Sound   `mapstructure:"sound"`
	Log     Log     `mapstructure:"log"`
}

type Timer struct {
	// Default is the packed HHMMSS entry loaded at startup and on reset
	Default string        `mapstructure:"default"`
	Tick    time.Duration `mapstructure:"tick"`
}

type Display struct {
	Title  string `mapstructure:"title"`
	Millis bool   `mapstructure:"millis"`
	// WrapHours keeps the hour field modulo 60; false shows true hours
	WrapHours bool `mapstructure:"wrap_hours"`
}

type Sound struct {
	Enabled bool `mapstructure:"enabled"`
}

type Log struct {
	// Level is a logrus level name, empty disables logging
	Level   string `mapstructure:"level"`
	File    string `mapstructure:"file"`
	MaxSize int64  `mapstructure:"max_size"`
}

// DefaultDuration decodes Timer.Default
func (c *Config) DefaultDuration() time.Duration {
	return duration.ParseEntry(c.Timer.Default)
}

// flagKeys maps command-line flag names to config keys
var flagKeys = map[string]string{
	"duration":  "timer.default",
	"tick":      "timer.tick",
	"millis":    "display.millis",
	"log-level": "log.level",
	"log-file":  "log.file",
}

// Loader resolves configuration through its own viper instance
type Loader struct {
	v    *viper.Viper
	path string
}

// NewLoader creates a loader with defaults and environment binding in place
func NewLoader() *Loader {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return &Loader{v: v}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("timer.default", "500")
	v.SetDefault("timer.tick", 10*time.Millisecond)
	v.SetDefault("display.title", "Countdown Timer")
	v.SetDefault("display.millis", true)
	v.SetDefault("display.wrap_hours", true)
	v.SetDefault("sound.enabled", true)
	v.SetDefault("log.level", "")
	v.SetDefault("log.file", "logs/countdown.log")
	v.SetDefault("log.max_size", 10*1024*1024)
}

// BindFlags binds the known flags present in fs, unknown flags are skipped
func (l *Loader) BindFlags(fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := l.v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %q: %w", name, err)
		}
	}
	if f := fs.Lookup("no-sound"); f != nil && f.Changed {
		l.v.Set("sound.enabled", false)
	}
	return nil
}

// Load reads path (or $COUNTDOWN_CONFIG when path is empty) if set, then
// resolves and validates the configuration
func (l *Loader) Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(PathEnv)
	}
	if path != "" {
		l.v.SetConfigType("toml")
		l.v.SetConfigFile(path)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		l.path = path
	}
	return l.resolve()
}

func (l *Loader) resolve() (*Config, error) {
	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Watch calls onChange with the re-resolved configuration whenever the config
// file changes. No-op when no file was loaded. onChange runs on viper's watcher
// goroutine.
func (l *Loader) Watch(log logrus.FieldLogger, onChange func(*Config)) {
	if l.path == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := l.resolve()
		if err != nil {
			log.WithError(err).WithField("file", e.Name).Warn("ignoring config change")
			return
		}
		log.WithField("file", e.Name).Info("config reloaded")
		onChange(cfg)
	})
	l.v.WatchConfig()
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if len(c.Timer.Default) > duration.MaxEntryLen {
		return fmt.Errorf("%w: timer.default %q longer than %d digits", ErrInvalid, c.Timer.Default, duration.MaxEntryLen)
	}
	if _, err := duration.ParseEntryChecked(c.Timer.Default); errors.Is(err, duration.ErrMalformed) {
		return fmt.Errorf("%w: timer.default: %v", ErrInvalid, err)
	}
	if c.Timer.Tick < time.Millisecond || c.Timer.Tick > time.Second {
		return fmt.Errorf("%w: timer.tick %s outside [1ms, 1s]", ErrInvalid, c.Timer.Tick)
	}
	if c.Log.Level != "" {
		if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
		}
	}
	if c.Log.MaxSize <= 0 {
		return fmt.Errorf("%w: log.max_size must be positive", ErrInvalid)
	}
	return nil
}
