package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"lread/internal/diagfmt"
	"lread/internal/reader"
)

const configFileName = "lread.toml"

// lreadConfig mirrors lread.toml. Empty strings mean "not set".
type lreadConfig struct {
	Path   string       `toml:"-"`
	Reader readerConfig `toml:"reader"`
	Output outputConfig `toml:"output"`
	Cache  cacheConfig  `toml:"cache"`
}

type readerConfig struct {
	Comments string `toml:"comments"`
}

type outputConfig struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

type cacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// activeConfig is filled by the root PersistentPreRunE.
var activeConfig lreadConfig

func errInvalidColor(value string) error {
	return fmt.Errorf("invalid color mode %q (expected auto|on|off)", value)
}

// findConfigFile walks from startDir up to the filesystem root.
func findConfigFile(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadConfig(path string) (lreadConfig, error) {
	var cfg lreadConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return lreadConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return lreadConfig{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	cfg.Path = path
	if err := cfg.validate(); err != nil {
		return lreadConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c lreadConfig) validate() error {
	if c.Reader.Comments != "" {
		if _, err := reader.ParseCommentPolicy(c.Reader.Comments); err != nil {
			return fmt.Errorf("[reader] comments: %w", err)
		}
	}
	if c.Output.Format != "" {
		if _, ok := diagfmt.ParseFormat(c.Output.Format); !ok {
			return fmt.Errorf("[output] format: unknown format %q", c.Output.Format)
		}
	}
	switch c.Output.Color {
	case "", "auto", "on", "off":
	default:
		return fmt.Errorf("[output] color: %w", errInvalidColor(c.Output.Color))
	}
	return nil
}

// loadConfigForCommand honours --config and otherwise searches upwards from
// the working directory. A missing file is not an error.
func loadConfigForCommand(cmd *cobra.Command) (lreadConfig, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return lreadConfig{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if explicit != "" {
		return loadConfig(explicit)
	}
	path, ok, err := findConfigFile(".")
	if err != nil || !ok {
		return lreadConfig{}, err
	}
	return loadConfig(path)
}

// stringSetting returns the flag value when it was set explicitly, then the
// config value, then the flag default.
func stringSetting(cmd *cobra.Command, flag, fromConfig string) (string, error) {
	value, err := cmd.Flags().GetString(flag)
	if err != nil {
		return "", fmt.Errorf("failed to get %s flag: %w", flag, err)
	}
	if cmd.Flags().Changed(flag) || fromConfig == "" {
		return value, nil
	}
	return fromConfig, nil
}
