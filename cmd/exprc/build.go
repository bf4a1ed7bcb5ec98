package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"exprc/internal/buildpipeline"
	"exprc/internal/diag"
	"exprc/internal/driver"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [path]",
	Short: "Compile EXPRESS schemas into Go packages",
	Long:  "Build legalizes every schema under the project's schema directory and emits one Go package per schema.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().String("out", "", "output directory (defaults to the manifest's [build].out)")
	buildCmd.Flags().Bool("no-cache", false, "bypass the build cache")
	buildCmd.Flags().Int("jobs", 0, "number of parallel workers (0 = GOMAXPROCS)")
	buildCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	outFlag, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
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

	dir, outDir, title, useCache, err := resolveBuildTarget(args, outFlag)
	if err != nil {
		return err
	}
	if noCache {
		useCache = false
	}

	files, err := driver.ListExpressFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no *.exp files under %s", dir)
	}
	displayFiles := displayFileList(files, dir)

	req := &buildpipeline.BuildRequest{
		Dir:            dir,
		OutDir:         outDir,
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		UseCache:       useCache,
		EnableTimings:  showTimings,
		Files:          displayFiles,
	}

	var result buildpipeline.BuildResult
	if uiModeValue.wantTUI() && !quiet {
		result, err = runBuildWithUI(cmd.Context(), title, displayFiles, req)
	} else {
		result, err = buildpipeline.Build(cmd.Context(), req)
	}

	if errors.Is(err, buildpipeline.ErrDiagnostics) && result.Check != nil {
		result.Check.Bag.Sort()
		diag.Render(os.Stderr, result.Check.FileSet, result.Check.Bag)
		return err
	}
	if err != nil {
		return err
	}

	if showTimings {
		printStageTimings(result.Timings)
	}
	if !quiet {
		if result.CacheHit {
			fmt.Println("restored from cache")
		}
		for _, path := range result.Generated {
			fmt.Printf("  %s\n", path)
		}
	}
	return nil
}

func resolveBuildTarget(args []string, outFlag string) (dir, outDir, title string, useCache bool, err error) {
	manifest, found, err := loadProjectManifest(".")
	if err != nil {
		return "", "", "", false, err
	}

	switch {
	case len(args) > 0 && filepath.Clean(args[0]) != ".":
		dir = args[0]
		st, statErr := os.Stat(dir)
		if statErr != nil {
			return "", "", "", false, statErr
		}
		if !st.IsDir() {
			return "", "", "", false, fmt.Errorf("%q is not a directory", dir)
		}
		outDir = filepath.Join(dir, "gen")
		title = filepath.Base(dir)
		useCache = true
	case found:
		dir = manifest.srcDir()
		outDir = manifest.outDir()
		title = manifest.Config.Package.Name
		useCache = manifest.cacheEnabled()
	default:
		return "", "", "", false, errors.New(noExprcTomlMessage)
	}

	if outFlag != "" {
		outDir = outFlag
	}
	return dir, outDir, title, useCache, nil
}

func displayFileList(files []string, baseDir string) []string {
	names := make([]string, 0, len(files))
	for _, file := range files {
		name := file
		if rel, err := filepath.Rel(baseDir, file); err == nil {
			name = rel
		}
		names = append(names, filepath.ToSlash(name))
	}
	return names
}

func printStageTimings(timings buildpipeline.Timings) {
	fmt.Fprint(os.Stderr, "timings:\n")
	for _, stage := range []buildpipeline.Stage{
		buildpipeline.StageParse,
		buildpipeline.StageLegalize,
		buildpipeline.StageEmit,
	} {
		if !timings.Has(stage) {
			continue
		}
		ms := float64(timings.Duration(stage).Microseconds()) / 1000.0
		fmt.Fprintf(os.Stderr, "  %-20s %7.2f ms\n", string(stage), ms)
	}
	total := timings.Sum(buildpipeline.StageParse, buildpipeline.StageLegalize, buildpipeline.StageEmit)
	fmt.Fprintf(os.Stderr, "  %-20s %7.2f ms\n", "total", float64(total.Microseconds())/1000.0)
}
