package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lread/internal/diag"
	"lread/internal/diagfmt"
	"lread/internal/source"
)

// errReadFailed is returned after the reader diagnostics were already
// printed, so cobra must not print it again.
var errReadFailed = errors.New("read failed")

func failRead(cmd *cobra.Command) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return errReadFailed
}

// splitTimings separates OBS6001 entries, which --timings prints as a table,
// from everything else.
func splitTimings(bag *diag.Bag) (rest *diag.Bag, timings []diag.Diagnostic) {
	if bag == nil {
		return diag.NewBag(0), nil
	}
	rest = diag.NewBag(int(bag.Cap()))
	for _, d := range bag.Items() {
		if d.Code == diag.ObsTimings {
			timings = append(timings, d)
			continue
		}
		rest.Add(d)
	}
	return rest, timings
}

// printDiagnostics renders bag on stderr as pretty text or JSON depending on
// --diagnostics. Timing entries are left to printTimings.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) error {
	rest, _ := splitTimings(bag)
	if rest.Len() == 0 {
		return nil
	}
	rest.Sort()

	mode, err := cmd.Flags().GetString("diagnostics")
	if err != nil {
		mode = "pretty"
	}
	out := cmd.ErrOrStderr()
	switch mode {
	case "json":
		return diagfmt.JSON(out, rest, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
			IncludeFixes:     true,
		})
	case "pretty", "":
		colored, err := useColor(cmd, out)
		if err != nil {
			return err
		}
		diagfmt.Pretty(out, rest, fs, diagfmt.PrettyOpts{
			Color:     colored,
			Context:   2,
			ShowNotes: true,
			ShowFixes: true,
		})
		return nil
	default:
		return fmt.Errorf("unknown diagnostics format: %s (expected pretty|json)", mode)
	}
}

func writeHeader(w io.Writer, path string) error {
	_, err := fmt.Fprintf(w, "== %s ==\n", path)
	return err
}
