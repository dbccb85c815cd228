package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"lread/internal/diagfmt"
	"lread/internal/driver"
	"lread/internal/reader"
	"lread/internal/version"
)

const (
	historyFile = ".lread_history"
	promptMain  = "lread> "
	promptCont  = "  ...> "
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Read forms interactively",
	Long: `Repl reads one complete input at a time and prints the forms it contains.
Unbalanced input asks for continuation lines. Type :quit to exit`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	replCmd.Flags().String("comments", "drop", "top-level comment policy (drop|keep)")
}

// promptReader is the part of liner.State the input loop needs.
type promptReader interface {
	Prompt(prompt string) (string, error)
}

type replSession struct {
	cmd     *cobra.Command
	opts    driver.Options
	out     io.Writer
	colored bool
}

func runRepl(cmd *cobra.Command, _ []string) error {
	commentsName, err := stringSetting(cmd, "comments", activeConfig.Reader.Comments)
	if err != nil {
		return err
	}
	comments, err := reader.ParseCommentPolicy(commentsName)
	if err != nil {
		return err
	}
	colored, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	session := &replSession{
		cmd:     cmd,
		opts:    driver.Options{Reader: reader.Options{Comments: comments}, MaxDiagnostics: maxDiagnostics},
		out:     cmd.OutOrStdout(),
		colored: colored,
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		color.NoColor = !colored
		fmt.Fprintf(session.out, "lread %s, type :quit to exit\n", version.Colored())
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		src, ok := readByParseProbe(ln, promptMain, promptCont, session.opts.Reader)
		if !ok {
			fmt.Fprintln(session.out)
			return nil
		}
		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if strings.HasPrefix(trimmed, ":") {
			if session.command(trimmed) {
				return nil
			}
			continue
		}
		session.eval(src)
	}
}

// readByParseProbe collects lines until they form input that is either
// complete or wrong in a way more lines cannot fix. ok is false at EOF.
// An aborted prompt (Ctrl+C) drops the pending lines.
func readByParseProbe(ln promptReader, prompt, cont string, opts reader.Options) (string, bool) {
	var b strings.Builder

	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if b.Len() == len(line) && strings.HasPrefix(strings.TrimSpace(line), ":") {
			return src, true
		}
		if _, perr := reader.ReadString(src, opts); reader.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}

// command handles a :directive line and reports whether the session ends.
func (s *replSession) command(line string) bool {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case ":quit", ":q", ":exit":
		return true
	case ":comments":
		if len(fields) != 2 {
			fmt.Fprintf(s.out, "comments: %s\n", s.opts.Reader.Comments)
			return false
		}
		policy, err := reader.ParseCommentPolicy(fields[1])
		if err != nil {
			fmt.Fprintln(s.cmd.ErrOrStderr(), err)
			return false
		}
		s.opts.Reader.Comments = policy
	case ":help":
		fmt.Fprintln(s.out, ":quit               leave the repl")
		fmt.Fprintln(s.out, ":comments drop|keep set the top-level comment policy")
	default:
		fmt.Fprintln(s.out, "unknown command, type :help")
	}
	return false
}

// eval reads src and prints its forms, or the diagnostics when it fails.
func (s *replSession) eval(src string) {
	res, err := driver.ParseReader(s.cmd.Context(), "<repl>", strings.NewReader(src), s.opts)
	if err != nil {
		fmt.Fprintln(s.cmd.ErrOrStderr(), err)
		return
	}
	if res.Err != nil {
		if err := printDiagnostics(s.cmd, res.Bag, res.FileSet); err != nil {
			fmt.Fprintln(s.cmd.ErrOrStderr(), err)
		}
		return
	}
	err = diagfmt.FormatForms(s.out, res.Forms, diagfmt.FormsOpts{Format: diagfmt.FormatPretty, Color: s.colored})
	if err != nil {
		fmt.Fprintln(s.cmd.ErrOrStderr(), err)
	}
}
