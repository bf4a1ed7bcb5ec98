package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"exprc/internal/ast"
	"exprc/internal/diag"
	"exprc/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.exp",
	Short: "Parse an EXPRESS schema file",
	Long:  `Parse builds the syntax tree of one schema file and prints a declaration summary`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	result, err := driver.Parse(filePath, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		diag.Render(os.Stderr, result.FileSet, result.Bag)
	}
	if result.Bag.HasErrors() {
		return fmt.Errorf("parse reported errors")
	}
	if !quiet {
		printTreeSummary(result.Tree)
	}
	return nil
}

func printTreeSummary(tree *ast.SyntaxTree) {
	for _, schema := range tree.Schemas {
		fmt.Printf("schema %s: %d entities, %d types\n",
			schema.Name, len(schema.Entities), len(schema.Types))
		for _, entity := range schema.Entities {
			fmt.Printf("  entity %s (%d attributes)\n", entity.Name, len(entity.Attributes))
		}
		for _, decl := range schema.Types {
			fmt.Printf("  type %s\n", decl.Name)
		}
	}
}
