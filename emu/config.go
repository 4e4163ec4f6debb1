package emu

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"plu/emu/log"

	"github.com/BurntSushi/toml"
	"github.com/kirsle/configdir"
)

type Config struct {
	Emulation EmulationConfig `toml:"emulation"`
	Slots     []SlotConfig    `toml:"slot"`
	Host      HostConfig      `toml:"host"`

	TraceOut io.WriteCloser `toml:"-"`
}

type EmulationConfig struct {
	// Delay after each instruction. 0 runs at full speed.
	Speed          time.Duration `toml:"speed"`
	LogLevel       int           `toml:"log_level"`
	StallThreshold int           `toml:"stall_threshold"`
	PauseSleep     time.Duration `toml:"pause_sleep"`
}

// SlotConfig maps a device on the bus.
type SlotConfig struct {
	Base uint16 `toml:"base"`
	Kind string `toml:"kind"` // via, cf, serial or null
}

type HostConfig struct {
	StatusInterval time.Duration `toml:"status_interval"`
	RemoteAddr     string        `toml:"remote_addr"`
}

// MaxLogLevel is the most verbose engine log level.
const MaxLogLevel = 3

// DefaultSlots returns the slot map of the reference board.
func DefaultSlots() []SlotConfig {
	return []SlotConfig{
		{Base: 0xFF80, Kind: "null"},
		{Base: 0xFF90, Kind: "null"},
		{Base: 0xFFA0, Kind: "null"},
		{Base: 0xFFB0, Kind: "null"},
		{Base: 0xFFC0, Kind: "via"},
		{Base: 0xFFD0, Kind: "cf"},
		{Base: 0xFFE0, Kind: "serial"},
	}
}

func DefaultConfig() Config {
	return Config{
		Emulation: EmulationConfig{
			StallThreshold: 2,
			PauseSleep:     100 * time.Millisecond,
		},
		Slots: DefaultSlots(),
		Host: HostConfig{
			StatusInterval: 5 * time.Second,
		},
	}
}

// Check replaces invalid values with their default.
func (cfg *Config) Check() {
	def := DefaultConfig()
	if cfg.Emulation.LogLevel < 0 || cfg.Emulation.LogLevel > MaxLogLevel {
		log.ModEmu.Warnf("Invalid log level %d, fallback to 0", cfg.Emulation.LogLevel)
		cfg.Emulation.LogLevel = 0
	}
	if cfg.Emulation.StallThreshold < 0 {
		cfg.Emulation.StallThreshold = 0
	}
	if cfg.Emulation.PauseSleep <= 0 {
		cfg.Emulation.PauseSleep = def.Emulation.PauseSleep
	}
	if cfg.Emulation.Speed < 0 {
		cfg.Emulation.Speed = 0
	}
	if len(cfg.Slots) == 0 {
		cfg.Slots = def.Slots
	}
}

// ConfigDir returns the plu config directory, creating it if needed.
var ConfigDir = sync.OnceValue(func() string {
	dir := configdir.LocalConfig("plu")
	if err := configdir.MakePath(dir); err != nil {
		log.ModEmu.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})

const cfgFilename = "config.toml"

// ConfigPath returns the path of the configuration file in the plu config
// directory.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), cfgFilename)
}

// LoadConfigOrDefault loads the configuration from the plu config directory,
// or provide a default one.
func LoadConfigOrDefault() Config {
	cfg, err := LoadConfig(ConfigPath())
	if err != nil {
		log.ModEmu.WarnZ("Invalid config, using defaults").Error("err", err).End()
		return DefaultConfig()
	}
	return cfg
}

// LoadConfig loads the configuration at path. Missing values take their
// default and a missing file gives the default configuration.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	cfg.Slots = nil

	_, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	cfg.Check()
	return cfg, nil
}

// SaveConfig writes cfg at path, in TOML.
func SaveConfig(path string, cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}

	return os.WriteFile(path, buf, 0644)
}
