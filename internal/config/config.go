package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "taskflow.db"
	DefaultLogName        = "taskflow.log"
	DefaultStorageKey     = "taskflow_tasks"

	appDirName = "taskflow"
	envConfig  = "TASKFLOW_CONFIG"
)

type Keymap struct {
	Quit      string `toml:"quit"`
	Add       string `toml:"add"`
	Up        string `toml:"up"`
	Down      string `toml:"down"`
	Toggle    string `toml:"toggle"`
	Delete    string `toml:"delete"`
	Undo      string `toml:"undo"`
	Search    string `toml:"search"`
	PrevDay   string `toml:"prev_day"`
	NextDay   string `toml:"next_day"`
	PrevMonth string `toml:"prev_month"`
	NextMonth string `toml:"next_month"`
	Today     string `toml:"today"`
	Confirm   string `toml:"confirm"`
	Cancel    string `toml:"cancel"`
	NextTag   string `toml:"next_tag"`
}

type Config struct {
	DBPath         string   `toml:"db_path"`
	StorageKey     string   `toml:"storage_key"`
	LogFile        string   `toml:"log_file"`
	DefaultTag     string   `toml:"default_tag"`
	UndoTimeout    Duration `toml:"undo_timeout"`
	SearchDebounce Duration `toml:"search_debounce"`
	Keys           Keymap   `toml:"keys"`
}

// Duration reads and writes TOML strings such as "3s" or "200ms".
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// ResolveConfigPath picks $TASKFLOW_CONFIG, then $XDG_CONFIG_HOME/taskflow,
// then ~/.config/taskflow, falling back to the working directory.
func ResolveConfigPath() string {
	if p := os.Getenv(envConfig); p != "" {
		return p
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName, DefaultConfigFileName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", appDirName, DefaultConfigFileName)
	}
	return DefaultConfigFileName
}

// LoadOrCreate reads path, writing the defaults there first if it is missing.
// Relative db_path and log_file values resolve against the config directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(filepath.Dir(path)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if cfg.StorageKey == "" {
		cfg.StorageKey = DefaultStorageKey
	}
	if cfg.UndoTimeout.Duration <= 0 {
		cfg.UndoTimeout.Duration = 3 * time.Second
	}
	if cfg.SearchDebounce.Duration < 0 {
		cfg.SearchDebounce.Duration = 0
	}
	return cfg.resolve(filepath.Dir(path)), nil
}

func (c Config) resolve(dir string) Config {
	if c.DBPath != "" && !filepath.IsAbs(c.DBPath) {
		c.DBPath = filepath.Join(dir, c.DBPath)
	}
	if c.LogFile != "" && !filepath.IsAbs(c.LogFile) {
		c.LogFile = filepath.Join(dir, c.LogFile)
	}
	return c
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default returns the built-in configuration.
func Default() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		DBPath:         DefaultDBName,
		StorageKey:     DefaultStorageKey,
		LogFile:        DefaultLogName,
		DefaultTag:     "General",
		UndoTimeout:    Duration{3 * time.Second},
		SearchDebounce: Duration{200 * time.Millisecond},
		Keys: Keymap{
			Quit:      "q",
			Add:       "n",
			Up:        "k",
			Down:      "j",
			Toggle:    " ",
			Delete:    "d",
			Undo:      "u",
			Search:    "/",
			PrevDay:   "h",
			NextDay:   "l",
			PrevMonth: "[",
			NextMonth: "]",
			Today:     "t",
			Confirm:   "enter",
			Cancel:    "esc",
			NextTag:   "tab",
		},
	}
}
