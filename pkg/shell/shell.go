// Package shell is the interactive front end: it reads command lines,
// runs them against a workspace and prints the results.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"

	"github.com/zhangbiao2009/primitive-db/pkg/config"
	"github.com/zhangbiao2009/primitive-db/pkg/db"
	"github.com/zhangbiao2009/primitive-db/pkg/logging"
	"github.com/zhangbiao2009/primitive-db/pkg/types"
)

// ConfirmPrompt is shown before destructive commands
const ConfirmPrompt = `Are you sure you want to perform "%s"? [y/n]: `

var titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)

// LineReader is the part of *readline.Instance the shell uses
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

// Shell runs a read-eval-print loop over a LineReader. It also answers
// confirmation prompts, so it can be passed to db.Open as the Confirmer.
type Shell struct {
	reader LineReader
	out    io.Writer
	prompt string
}

var _ db.Confirmer = (*Shell)(nil)

// New creates a shell
func New(reader LineReader, out io.Writer, prompt string) *Shell {
	return &Shell{
		reader: reader,
		out:    out,
		prompt: prompt,
	}
}

// NewReadline opens a terminal line reader with history and command
// completion
func NewReadline(cfg config.Config) (*readline.Instance, error) {
	completer := readline.NewPrefixCompleter(
		readline.PcItem("create_table"),
		readline.PcItem("drop_table"),
		readline.PcItem("list_tables"),
		readline.PcItem("info"),
		readline.PcItem("insert", readline.PcItem("into")),
		readline.PcItem("select", readline.PcItem("from")),
		readline.PcItem("update"),
		readline.PcItem("delete", readline.PcItem("from")),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	)

	return readline.NewEx(&readline.Config{
		Prompt:            cfg.Prompt,
		HistoryFile:       cfg.HistoryFile,
		AutoComplete:      completer,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
}

// Confirm asks the user to approve action. Only "y" approves; an
// interrupt or end of input declines.
func (s *Shell) Confirm(action string) (bool, error) {
	s.reader.SetPrompt(fmt.Sprintf(ConfirmPrompt, action))
	defer s.reader.SetPrompt(s.prompt)

	line, err := s.reader.Readline()
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	return strings.ToLower(strings.TrimSpace(line)) == "y", nil
}

// Run reads and executes commands until exit, end of input, or an
// interrupt on an empty line.
func (s *Shell) Run(database *db.DB) error {
	s.printWelcome()

	for {
		s.reader.SetPrompt(s.prompt)
		line, err := s.reader.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if strings.TrimSpace(line) == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read command: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		result := s.execute(database, line)
		if result.Kind == types.ResultExit {
			return nil
		}
	}
}

// Exec runs a single command and returns its error, if any
func (s *Shell) Exec(database *db.DB, line string) error {
	result := s.execute(database, line)
	return result.Err
}

// RunScript executes one command per line of r. Blank lines and lines
// starting with # are skipped. Every command runs even if an earlier one
// fails; the returned error reports how many failed.
func (s *Shell) RunScript(database *db.DB, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	total, failed := 0, 0

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		total++
		result := s.execute(database, line)
		if result.Err != nil {
			failed++
		}
		if result.Kind == types.ResultExit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d commands failed", failed, total)
	}
	return nil
}

func (s *Shell) execute(database *db.DB, line string) db.Result {
	result := database.Execute(line)
	fmt.Fprintln(s.out, db.FormatResult(result))

	if result.Command == types.CmdSelect {
		stats := database.CacheStats()
		logging.WithComponent("shell").Debug("select cache",
			"hits", stats.Hits, "misses", stats.Misses, "entries", stats.Entries)
	}
	return result
}

func (s *Shell) printWelcome() {
	fmt.Fprintln(s.out, titleStyle.Render("primitive-db"))
	fmt.Fprintln(s.out, "***")
	fmt.Fprintln(s.out, "Type 'help' for the list of commands, 'exit' to quit.")
}
