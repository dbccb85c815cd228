package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lread/internal/diagfmt"
	"lread/internal/driver"
)

var scanCmd = &cobra.Command{
	Use:   "scan [flags] [<file|->]",
	Short: "Split Lisp source into lexemes",
	Long:  `Scan prints the raw lexemes of a file with their positions, before any classification`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().String("input", "", "file or - for stdin (same as the positional argument)")
	scanCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runScan(cmd *cobra.Command, args []string) error {
	path, err := inputPath(cmd, args)
	if err != nil {
		return err
	}

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	var result *driver.ScanResult
	if path == "-" {
		result, err = driver.ScanReader(cmd.Context(), "<stdin>", cmd.InOrStdin())
	} else {
		result, err = driver.Scan(cmd.Context(), path)
	}
	if err != nil {
		return fmt.Errorf("scanning failed: %w", err)
	}

	switch format {
	case "pretty":
		return diagfmt.FormatLexemesPretty(cmd.OutOrStdout(), result.Lexemes, result.FileSet)
	case "json":
		return diagfmt.FormatLexemesJSON(cmd.OutOrStdout(), result.Lexemes, result.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
