package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new exprc project",
	Long: `Initialize a new exprc project by creating a project manifest (exprc.toml)
and a sample schema (schemas/main.exp). If [path|name] is omitted, initializes
the current directory. If a non-existing name is provided, a directory will be
created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "exprc-project"
	}

	manifestPath := filepath.Join(target, "exprc.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	if err := os.WriteFile(manifestPath, []byte(buildDefaultManifest(name)), os.FileMode(0o600)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	schemaDir := filepath.Join(target, "schemas")
	if err := os.MkdirAll(schemaDir, 0o755); err != nil {
		return fmt.Errorf("failed to create schema directory: %w", err)
	}
	schemaPath := filepath.Join(schemaDir, "main.exp")
	createdSchema := false
	if _, err := os.Stat(schemaPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(schemaPath, []byte(defaultMainSchema()), 0o600); err != nil {
			return fmt.Errorf("failed to write main.exp: %w", err)
		}
		createdSchema = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized exprc project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - exprc.toml\n")
	if createdSchema {
		fmt.Fprintf(os.Stdout, "  - schemas/main.exp\n")
	} else {
		fmt.Fprintf(os.Stdout, "  - schemas/main.exp (existing)\n")
	}
	return nil
}

func buildDefaultManifest(name string) string {
	return fmt.Sprintf(`# exprc project manifest
[package]
name = "%s"

[build]
src = "schemas"
out = "gen"
cache = true
`, name)
}

func defaultMainSchema() string {
	return `SCHEMA main;

TYPE length = REAL; END_TYPE;

ENTITY point;
  x : length;
  y : length;
  label : OPTIONAL STRING;
END_ENTITY;

END_SCHEMA;
`
}
