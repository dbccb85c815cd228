package main

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lread/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "lread",
	Short: "Lisp reader and s-expression toolkit",
	Long:  `lread turns Lisp source text into a tree of tokens and prints it in several formats`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfigForCommand(cmd)
		if err != nil {
			return err
		}
		activeConfig = cfg

		stopProfiling, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		cleanups = append(cleanups, stopProfiling)

		stopTracing, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		cleanups = append(cleanups, stopTracing)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		runCleanups()
	},
}

// cleanups останавливают профилировщик и трейсер; PersistentPostRun не
// вызывается при ошибке команды, поэтому main тоже зовёт runCleanups
var cleanups []func()

func runCleanups() {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	cleanups = nil
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("config", "", "path to lread.toml (default: search upwards from the working directory)")

	rootCmd.PersistentFlags().String("trace", "", "write trace events to a file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "ring buffer size for --trace-mode=ring")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", time.Duration(0), "emit a heartbeat event at this interval (0 disables)")

	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to this file")
}

// main runs the root command. A failing command exits with status 1.
func main() {
	err := rootCmd.Execute()
	runCleanups()
	if err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// isStdoutFile returns the command's output as a file, or nil when it was
// redirected to a buffer (tests).
func isStdoutFile(cmd *cobra.Command) *os.File {
	f, _ := cmd.OutOrStdout().(*os.File)
	return f
}

// useColor resolves the --color flag (or [output] color) for w. Writers that
// are not files never count as terminals.
func useColor(cmd *cobra.Command, w io.Writer) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	if !cmd.Root().PersistentFlags().Changed("color") && activeConfig.Output.Color != "" {
		colorFlag = activeConfig.Output.Color
	}
	switch colorFlag {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		f, _ := w.(*os.File)
		return isTerminal(f), nil
	default:
		return false, errInvalidColor(colorFlag)
	}
}
