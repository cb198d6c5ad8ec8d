package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// IgnoreMismatchEnv suppresses the non-zero exit for collected
	// kernel version mismatches. Structural failures still abort.
	IgnoreMismatchEnv = "IGNORE_KERNEL_MISMATCH"

	// InspectorCommand queries packages through the rpm program.
	InspectorCommand = "command"
	// InspectorHeader reads the NEVRA directly from the RPM header.
	InspectorHeader = "header"

	defaultRTExtensionsDir = "extensions/extensions/kernel-rt"
	defaultBuildsDir       = "builds"
)

// Config carries everything the checker needs for one run. It is built
// once in the CLI layer and passed down; nothing reads process-wide
// state after this point.
type Config struct {
	// Workspace is the build workspace root (the single CLI argument).
	Workspace string `yaml:"-"`

	// SupportedArches lists the architectures the check runs on. On any
	// other host architecture the run is a successful no-op.
	SupportedArches []string `yaml:"supportedArches"`

	// IgnoreMismatch prints collected mismatches without failing the run.
	IgnoreMismatch bool `yaml:"ignoreMismatch"`

	// Inspector selects the package inspector backend.
	Inspector string `yaml:"inspector"`

	// RTExtensionsDir is the kernel-rt package tree, relative to Workspace.
	RTExtensionsDir string `yaml:"rtExtensionsDir"`

	// BuildsDir is the build output tree, relative to Workspace.
	BuildsDir string `yaml:"buildsDir"`

	// ReportDir, when set, is where mismatch reports are persisted in
	// addition to stdout. Empty keeps the run read-only.
	ReportDir string `yaml:"reportDir"`
}

// Default returns the checker configuration with stock paths and the
// x86_64-only architecture gate.
func Default(workspace string) *Config {
	return &Config{
		Workspace:       workspace,
		SupportedArches: []string{"x86_64"},
		Inspector:       InspectorCommand,
		RTExtensionsDir: defaultRTExtensionsDir,
		BuildsDir:       defaultBuildsDir,
	}
}

// Load builds the configuration for a workspace: defaults, then an
// optional kernel-rt-check.yml in the workspace root, then environment
// overrides.
func Load(workspace string) (*Config, error) {
	cfg := Default(workspace)

	configFile := filepath.Join(workspace, "kernel-rt-check.yml")
	if _, err := os.Stat(configFile); err == nil {
		if err := cfg.loadFile(configFile); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if cfg.Inspector != InspectorCommand && cfg.Inspector != InspectorHeader {
		return nil, fmt.Errorf("invalid inspector %q (expected %s|%s)",
			cfg.Inspector, InspectorCommand, InspectorHeader)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(IgnoreMismatchEnv); ok {
		c.IgnoreMismatch = truthy(v)
	}
}

// RTPackageDir returns the absolute kernel-rt extension directory.
func (c *Config) RTPackageDir() string {
	return filepath.Join(c.Workspace, c.RTExtensionsDir)
}

// ManifestPath returns the absolute commitmeta.json path for the
// latest build of the given architecture.
func (c *Config) ManifestPath(arch string) string {
	return filepath.Join(c.Workspace, c.BuildsDir, "latest", arch, "commitmeta.json")
}

// truthy follows the flag's documented integer semantics but accepts
// bool spellings as well.
func truthy(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n != 0
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return false
}
