package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape. Every field mirrors a
// CLI flag; precedence is CLI > local file > global file.
type FileConfig struct {
	WCAGLevel     *string `yaml:"wcag_level"`
	Section508    *bool   `yaml:"section508"`
	BestPractices *bool   `yaml:"best_practices"`
	Experimental  *bool   `yaml:"experimental"`
	Screenshots   *bool   `yaml:"screenshots"`

	Threads     *int    `yaml:"threads"`
	TimeoutSecs *int    `yaml:"timeout_seconds"`
	Include     *string `yaml:"include"`
	Exclude     *string `yaml:"exclude"`
	NoBrowser   *bool   `yaml:"no_browser"`
	NoColor     *bool   `yaml:"no_color"`
	EvidenceDir *string `yaml:"evidence_dir"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches the working directory for a project config file.
func LoadLocal(dir string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".a11yscan.yml", ".a11yscan.yaml", "a11yscan.yml", "a11yscan.yaml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the user config from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "a11yscan", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}
