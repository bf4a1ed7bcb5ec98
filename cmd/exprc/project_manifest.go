package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const noExprcTomlMessage = "no exprc.toml found\nplease specify the schema directory explicitly, e.g.:\n  exprc build path/to/schemas"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig `toml:"package"`
	Build   buildConfig   `toml:"build"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type buildConfig struct {
	Src   string `toml:"src"`
	Out   string `toml:"out"`
	Cache *bool  `toml:"cache"`
}

func findExprcToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "exprc.toml")
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

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findExprcToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return projectConfig{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [package].name", path)
	}
	return cfg, nil
}

// srcDir resolves the schema directory of the project, defaulting to the
// manifest root.
func (m *projectManifest) srcDir() string {
	src := strings.TrimSpace(m.Config.Build.Src)
	if src == "" {
		return m.Root
	}
	return filepath.Join(m.Root, filepath.FromSlash(src))
}

// outDir resolves the output directory, defaulting to <root>/gen.
func (m *projectManifest) outDir() string {
	out := strings.TrimSpace(m.Config.Build.Out)
	if out == "" {
		out = "gen"
	}
	return filepath.Join(m.Root, filepath.FromSlash(out))
}

// cacheEnabled defaults to true unless the manifest disables it.
func (m *projectManifest) cacheEnabled() bool {
	if m.Config.Build.Cache == nil {
		return true
	}
	return *m.Config.Build.Cache
}
