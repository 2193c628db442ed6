package main

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"softpatch/log"
)

type Config struct {
	Patch PatchConfig `toml:"patch"`
	Log   LogConfig   `toml:"log"`
}

type PatchConfig struct {
	// Dir holds patches named after their game. Empty means next to the game.
	Dir string `toml:"dir"`

	// Headered is the default answer to "does this IPS patch expect a
	// headered ROM": ask, auto, yes or no.
	Headered string `toml:"headered"`

	// Suffix is appended to the ROM name to build the default output path.
	Suffix string `toml:"suffix"`
}

type LogConfig struct {
	Modules []string `toml:"modules"`
}

const DefaultFileMode = os.FileMode(0755)

var ConfigDir = sync.OnceValue(func() string {
	cfgdir, err := os.UserConfigDir()
	if err != nil {
		log.ModCLI.Fatalf("failed to get user config directory: %v", err)
	}

	dir := filepath.Join(cfgdir, "softpatch")
	if err := os.MkdirAll(dir, DefaultFileMode); err != nil {
		log.ModCLI.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})

var defaultConfig = Config{
	Patch: PatchConfig{
		Dir:      "",
		Headered: "ask",
		Suffix:   " (patched)",
	},
}

const cfgFilename = "config.toml"

// ConfigPath returns path, or the default configuration file when empty.
func ConfigPath(path string) string {
	if path != "" {
		return path
	}
	return filepath.Join(ConfigDir(), cfgFilename)
}

// LoadConfig loads the configuration at path. Keys missing from the file
// keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return defaultConfig, err
	}
	return cfg, nil
}

// LoadConfigOrDefault loads the configuration from path (or the softpatch
// config directory), or provide a default one.
func LoadConfigOrDefault(path string) Config {
	path = ConfigPath(path)
	cfg, err := LoadConfig(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.ModCLI.Warnf("failed to load config %s: %v", path, err)
		}
		return defaultConfig
	}
	return cfg
}

// SaveConfig into path (or the softpatch config directory).
func SaveConfig(path string, cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	path = ConfigPath(path)
	if err := os.MkdirAll(filepath.Dir(path), DefaultFileMode); err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}
