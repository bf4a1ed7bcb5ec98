package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"exprc/internal/diag"
	"exprc/internal/driver"
	"exprc/internal/source"
	"exprc/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.exp",
	Short: "Tokenize an EXPRESS schema file",
	Long:  `Tokenize breaks down an EXPRESS schema file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Tokenize(filePath, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		diag.Render(os.Stderr, result.FileSet, result.Bag)
	}

	switch format {
	case "pretty":
		return formatTokensPretty(os.Stdout, result.Tokens, result.FileSet)
	case "json":
		return formatTokensJSON(os.Stdout, result.Tokens, result.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func formatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for _, tok := range tokens {
		start, _ := fs.Resolve(tok.Span)
		if tok.Text != "" {
			fmt.Fprintf(w, "%4d:%-3d %-14s %q\n", start.Line, start.Col, tok.Kind, tok.Text)
		} else {
			fmt.Fprintf(w, "%4d:%-3d %s\n", start.Line, start.Col, tok.Kind)
		}
	}
	return nil
}

type tokenJSON struct {
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

func formatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	out := make([]tokenJSON, 0, len(tokens))
	for _, tok := range tokens {
		start, _ := fs.Resolve(tok.Span)
		out = append(out, tokenJSON{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Line: start.Line,
			Col:  start.Col,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
