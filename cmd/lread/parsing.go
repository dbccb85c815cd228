package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"lread/internal/diagfmt"
	"lread/internal/driver"
	"lread/internal/reader"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] [<file|directory|->]",
	Short: "Read Lisp source and print its forms",
	Long: `Parse reads a Lisp source file, standard input ("-") or every source file in a
directory and prints one serialised token per top-level form`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("input", "", "file, directory or - for stdin (same as the positional argument)")
	parseCmd.Flags().String("format", "ndjson", "output format (ndjson|pretty|tree|dump)")
	parseCmd.Flags().String("comments", "drop", "top-level comment policy (drop|keep)")
	parseCmd.Flags().String("diagnostics", "pretty", "diagnostics format on stderr (pretty|json)")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	parseCmd.Flags().String("ui", "auto", "progress UI for directory processing (auto|on|off)")
	parseCmd.Flags().Bool("cache", false, "reuse read results from the disk cache")
}

// parseSettings is everything runParse needs after flags and lread.toml are
// merged.
type parseSettings struct {
	input   string
	format  diagfmt.Format
	quiet   bool
	options driver.Options
}

func inputPath(cmd *cobra.Command, args []string) (string, error) {
	input, err := cmd.Flags().GetString("input")
	if err != nil {
		return "", fmt.Errorf("failed to get input flag: %w", err)
	}
	switch {
	case len(args) == 1 && input != "" && args[0] != input:
		return "", fmt.Errorf("conflicting inputs %q and --input %q", args[0], input)
	case len(args) == 1:
		return args[0], nil
	case input != "":
		return input, nil
	default:
		return "", fmt.Errorf("no input: pass a path or --input")
	}
}

func readParseSettings(cmd *cobra.Command, args []string) (parseSettings, error) {
	var s parseSettings
	var err error
	if s.input, err = inputPath(cmd, args); err != nil {
		return s, err
	}

	formatName, err := stringSetting(cmd, "format", activeConfig.Output.Format)
	if err != nil {
		return s, err
	}
	format, ok := diagfmt.ParseFormat(formatName)
	if !ok {
		return s, fmt.Errorf("unknown format: %s", formatName)
	}
	s.format = format

	commentsName, err := stringSetting(cmd, "comments", activeConfig.Reader.Comments)
	if err != nil {
		return s, err
	}
	comments, err := reader.ParseCommentPolicy(commentsName)
	if err != nil {
		return s, err
	}
	s.options.Reader = reader.Options{Comments: comments}

	if s.options.MaxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return s, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if s.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return s, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.options.Timer, err = newTimer(cmd); err != nil {
		return s, err
	}

	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return s, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if !cmd.Flags().Changed("cache") {
		useCache = activeConfig.Cache.Enabled
	}
	if useCache {
		if s.options.Cache, err = driver.OpenDiskCache("lread", activeConfig.Cache.Dir); err != nil {
			return s, fmt.Errorf("failed to open cache: %w", err)
		}
	}
	return s, nil
}

func runParse(cmd *cobra.Command, args []string) error {
	settings, err := readParseSettings(cmd, args)
	if err != nil {
		return err
	}
	// флаги разобраны, дальше ошибки не про использование
	cmd.SilenceUsage = true

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	colored, err := useColor(cmd, stdout)
	if err != nil {
		return err
	}
	formsOpts := diagfmt.FormsOpts{Format: settings.format, Color: colored}

	var result *driver.ParseResult
	switch settings.input {
	case "-":
		result, err = driver.ParseReader(cmd.Context(), "<stdin>", cmd.InOrStdin(), settings.options)
	default:
		// Проверяем, файл это или директория
		st, statErr := os.Stat(settings.input)
		if statErr != nil {
			return fmt.Errorf("failed to stat path: %w", statErr)
		}
		if st.IsDir() {
			return runParseDir(cmd, settings, formsOpts)
		}
		result, err = driver.Parse(cmd.Context(), settings.input, settings.options)
	}
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if err := printDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
		return err
	}
	if !settings.quiet {
		printTimings(stderr, settings.options.Timer)
	}
	if result.Err != nil {
		return failRead(cmd)
	}
	return diagfmt.FormatForms(stdout, result.Forms, formsOpts)
}

func runParseDir(cmd *cobra.Command, settings parseSettings, formsOpts diagfmt.FormsOpts) error {
	dir := settings.input
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	var result *driver.DirResult
	if shouldUseTUI(mode) && !settings.quiet {
		files, listErr := driver.ListSourceFiles(dir)
		if listErr != nil {
			return fmt.Errorf("parsing failed: %w", listErr)
		}
		result, err = runParseDirWithUI(cmd.Context(), "lread parse "+dir, files, dir, settings.options, jobs)
	} else {
		result, err = driver.ParseDir(cmd.Context(), dir, settings.options, jobs, nil)
	}
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	for _, r := range result.Files {
		if r.ParseResult == nil {
			continue
		}
		if err := printDiagnostics(cmd, r.Bag, result.FileSet); err != nil {
			return err
		}
	}
	if err := printDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
		return err
	}
	if !settings.quiet {
		printTimings(cmd.ErrOrStderr(), settings.options.Timer)
	}

	if err := writeDirForms(cmd.OutOrStdout(), result, formsOpts, settings.quiet); err != nil {
		return err
	}
	if result.HasErrors() {
		return failRead(cmd)
	}
	return nil
}

// writeDirForms prints the forms of every successfully read file. NDJSON
// lines carry the file path; the other formats get a "== path ==" header.
func writeDirForms(w io.Writer, result *driver.DirResult, opts diagfmt.FormsOpts, quiet bool) error {
	printed := 0
	for _, r := range result.Files {
		if r.ParseResult == nil || r.Err != nil {
			continue
		}
		displayPath := r.Path
		if r.File != nil {
			displayPath = r.File.FormatPath("auto", result.FileSet.BaseDir())
		}

		fileOpts := opts
		if opts.Format == diagfmt.FormatNDJSON {
			fileOpts.Origin = displayPath
		} else if !quiet {
			if printed > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if err := writeHeader(w, displayPath); err != nil {
				return err
			}
		}
		if err := diagfmt.FormatForms(w, r.Forms, fileOpts); err != nil {
			return err
		}
		printed++
	}
	return nil
}
