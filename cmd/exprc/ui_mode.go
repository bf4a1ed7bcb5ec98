package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode selects how `exprc build` reports progress: the live stage view,
// plain per-stage lines, or a TTY check deciding between the two.
type uiMode uint8

const (
	uiModeAuto uiMode = iota
	uiModeTUI
	uiModePlain
)

// readUIMode parses the --ui flag. "tui" and "plain" are accepted as
// spelled-out aliases for on/off.
func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on", "tui":
		return uiModeTUI, nil
	case "off", "plain":
		return uiModePlain, nil
	}
	return uiModeAuto, fmt.Errorf("invalid --ui value %q (expected auto, on or off)", value)
}

// wantTUI resolves auto against whether stdout is a terminal.
func (m uiMode) wantTUI() bool {
	switch m {
	case uiModeTUI:
		return true
	case uiModePlain:
		return false
	}
	return isTerminal(os.Stdout)
}
