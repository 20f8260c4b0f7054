package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultConfigFileName is the standard configuration file name.
	DefaultConfigFileName = "studentgen.toml"

	// XDGConfigSubdir is the subdirectory under XDG_CONFIG_HOME for studentgen.
	XDGConfigSubdir = "studentgen"
)

// LoadError represents an error that occurred while loading configuration.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading config from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load attempts to load configuration from multiple sources in order of precedence:
// 1. Explicit path (if provided)
// 2. XDG config path (~/.config/studentgen/studentgen.toml)
// 3. Current working directory (./studentgen.toml)
// 4. Built-in defaults
//
// Returns the loaded configuration and the path it was loaded from. The path
// is empty when the built-in defaults are used.
func Load(explicitPath string) (*Config, string, error) {
	candidates := []string{explicitPath}
	if explicitPath == "" {
		candidates = searchPaths()
	}

	for _, path := range candidates {
		// An explicit path must exist; search paths are optional.
		if explicitPath == "" && !fileExists(path) {
			continue
		}
		cfg, err := loadFromFile(path)
		if err != nil {
			return nil, "", &LoadError{Path: path, Err: err}
		}
		return cfg, path, nil
	}

	return Default(), "", nil
}

// searchPaths lists the implicit configuration locations in precedence order.
func searchPaths() []string {
	var paths []string
	if xdgPath := xdgConfigPath(); xdgPath != "" {
		paths = append(paths, xdgPath)
	}
	return append(paths, filepath.Join(".", DefaultConfigFileName))
}

// loadFromFile reads and parses a TOML configuration file.
func loadFromFile(path string) (*Config, error) {
	// Start with defaults so missing values get sensible defaults
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	// A schools table in the file replaces the defaults instead of being
	// merged into them element by element.
	defaultSchools := cfg.Dataset.Schools
	cfg.Dataset.Schools = nil

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}

	if !md.IsDefined("dataset", "schools") {
		cfg.Dataset.Schools = defaultSchools
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Save writes a configuration to a TOML file.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0640)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	header := `# studentgen configuration file
#
# Synthetic student dataset generator. Edit as needed; seed = 0 gives a
# different dataset on every run.

`
	if _, err := f.WriteString(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("encoding TOML: %w", err)
	}

	return nil
}

// xdgConfigPath returns the XDG-compliant config file path.
// Returns empty string if XDG_CONFIG_HOME is not set and HOME is not available.
func xdgConfigPath() string {
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig != "" {
		return filepath.Join(xdgConfig, XDGConfigSubdir, DefaultConfigFileName)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", XDGConfigSubdir, DefaultConfigFileName)
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ConfigPath returns the configuration file path that would be used.
// Useful for displaying to users and for -write-config.
func ConfigPath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}

	paths := searchPaths()
	for _, path := range paths {
		if fileExists(path) {
			return path
		}
	}

	// New configs go to the first search path, XDG when available.
	return paths[0]
}

// EnsureLogDir creates the log directory if needed.
// Returns the path to the log file, or empty when file logging is disabled.
func EnsureLogDir(cfg *Config) (string, error) {
	logPath := cfg.Logging.File

	if logPath == "" {
		return "", nil
	}

	dir := filepath.Dir(logPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return "", fmt.Errorf("creating log directory: %w", err)
		}
	}

	return logPath, nil
}

// EnsureOutputDir creates the parent directory of path if needed.
func EnsureOutputDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return nil
}
