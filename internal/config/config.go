// Package config handles loading specimen.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the project configuration file, discovered by walking upward
// from the directory under test.
const FileName = "specimen.toml"

// Config represents the specimen.toml configuration file.
type Config struct {
	// Update selects the update mode used when the SPECIMEN_UPDATE
	// environment variable is unset: auto, always, new, or no.
	Update string `toml:"update"`

	// SnapshotDir is where snapshot files live, relative to each test
	// file's directory. Empty means the built-in default.
	SnapshotDir string `toml:"snapshot-dir"`

	// FormatTokens pretty-prints parseable snapshot values.
	FormatTokens bool `toml:"format-tokens"`

	// IgnoreDocs excludes doc comments from snapshot comparison.
	IgnoreDocs bool `toml:"ignore-docs"`
}

// Load loads configuration for the project containing dir, merging the
// nearest specimen.toml over the global config file. Keys no file defines
// keep their defaults: format-tokens and ignore-docs are on, update and
// snapshot-dir are empty.
func Load(dir string) (*Config, error) {
	globalPath, err := globalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg := &Config{}
	var projectMeta toml.MetaData
	projectDir, err := Discover(dir)
	if err != nil {
		return nil, err
	}
	if projectDir != "" {
		projectCfg, projectMeta, err = loadConfigFile(filepath.Join(projectDir, FileName))
		if err != nil {
			return nil, err
		}
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	return merged, nil
}

// Discover walks upward from dir looking for a specimen.toml file. It
// returns the directory containing the nearest one, or the empty string
// when no ancestor has one.
func Discover(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return dir, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func globalConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "specimen", "config.toml"), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{FormatTokens: true, IgnoreDocs: true}
	merged.Update = mergeString(projectMeta.IsDefined("update"), projectCfg.Update, globalCfg.Update)
	merged.SnapshotDir = mergeString(projectMeta.IsDefined("snapshot-dir"), projectCfg.SnapshotDir, globalCfg.SnapshotDir)
	merged.FormatTokens = mergeBool(projectMeta.IsDefined("format-tokens"), projectCfg.FormatTokens, globalMeta.IsDefined("format-tokens"), globalCfg.FormatTokens, merged.FormatTokens)
	merged.IgnoreDocs = mergeBool(projectMeta.IsDefined("ignore-docs"), projectCfg.IgnoreDocs, globalMeta.IsDefined("ignore-docs"), globalCfg.IgnoreDocs, merged.IgnoreDocs)

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

func mergeBool(projectDefined, projectValue, globalDefined, globalValue, fallback bool) bool {
	if projectDefined {
		return projectValue
	}
	if globalDefined {
		return globalValue
	}
	return fallback
}
