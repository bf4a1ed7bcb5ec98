package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"exprc/internal/diag"
	"exprc/internal/driver"
	"exprc/internal/observ"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path]",
	Short: "Check EXPRESS schemas for semantic errors",
	Long:  `Check parses and legalizes every *.exp file under the given directory (or the project's schema directory)`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "number of parallel workers (0 = GOMAXPROCS)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}

	dir, err := resolveSchemaDir(args)
	if err != nil {
		return err
	}

	res, err := driver.CheckDir(cmd.Context(), dir, &driver.CheckOptions{
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		EnableTimings:  showTimings,
	})
	if err != nil {
		return err
	}

	if res.Bag.Len() > 0 {
		res.Bag.Sort()
		diag.Render(os.Stderr, res.FileSet, res.Bag)
	}
	if showTimings {
		printTimingReport(res.Timing)
	}
	if res.Bag.HasErrors() {
		return fmt.Errorf("check reported errors")
	}
	if !quiet {
		schemas := 0
		if res.IR != nil {
			schemas = len(res.IR.Schemas)
		}
		fmt.Printf("checked %d files, %d schemas\n", len(res.Files), schemas)
	}
	return nil
}

// resolveSchemaDir picks the directory to operate on: an explicit argument
// wins, then the project manifest, then the working directory fails loudly.
func resolveSchemaDir(args []string) (string, error) {
	if len(args) > 0 && filepath.Clean(args[0]) != "." {
		target := args[0]
		st, err := os.Stat(target)
		if err != nil {
			return "", err
		}
		if !st.IsDir() {
			return "", fmt.Errorf("%q is not a directory", target)
		}
		return target, nil
	}

	manifest, found, err := loadProjectManifest(".")
	if err != nil {
		return "", err
	}
	if found {
		return manifest.srcDir(), nil
	}
	if len(args) > 0 {
		// explicit "." without a manifest still means the working directory
		return args[0], nil
	}
	return "", errors.New(noExprcTomlMessage)
}

func printTimingReport(report observ.Report) {
	fmt.Fprint(os.Stderr, "timings:\n")
	for _, phase := range report.Phases {
		fmt.Fprintf(os.Stderr, "  %-20s %7.2f ms", phase.Name, phase.DurationMS)
		if phase.Note != "" {
			fmt.Fprintf(os.Stderr, "  // %s", phase.Note)
		}
		fmt.Fprintln(os.Stderr)
	}
	fmt.Fprintf(os.Stderr, "  %-20s %7.2f ms\n", "total", report.TotalMS)
}
