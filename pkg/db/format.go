package db

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/zhangbiao2009/primitive-db/pkg/parser"
	"github.com/zhangbiao2009/primitive-db/pkg/query"
	"github.com/zhangbiao2009/primitive-db/pkg/types"
)

var (
	primaryColor = lipgloss.Color("#7C3AED")
	errorColor   = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#94A3B8")
	borderColor  = lipgloss.Color("#334155")

	headerStyle = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(borderColor)
)

var helpEntries = []struct {
	cmd  types.CommandType
	desc string
}{
	{types.CmdCreateTable, "create a table"},
	{types.CmdListTables, "list all tables"},
	{types.CmdInfo, "show a table's columns and record count"},
	{types.CmdDropTable, "drop a table"},
	{types.CmdInsert, "insert a record"},
	{types.CmdSelect, "select records"},
	{types.CmdUpdate, "update records"},
	{types.CmdDelete, "delete records"},
	{types.CmdHelp, "show this help"},
	{types.CmdExit, "exit the program"},
}

// HelpText lists every command with its syntax
func HelpText() string {
	ops := make([]string, len(query.Operators))
	for i, op := range query.Operators {
		ops[i] = string(op)
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Commands:"))
	sb.WriteString("\n")
	for _, e := range helpEntries {
		fmt.Fprintf(&sb, "  %s - %s\n", parser.Usage(e.cmd), e.desc)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Types: %s\n", strings.Join(types.SupportedTypes, ", "))
	fmt.Fprintf(&sb, "Operators: %s\n", strings.Join(ops, ", "))
	sb.WriteString(`Values: "quoted" is a string, true/false a bool, digits an int`)
	return sb.String()
}

// FormatResult renders a result for the terminal
func FormatResult(r Result) string {
	if r.Err != nil {
		return errorStyle.Render("Error:") + " " + r.Err.Error()
	}

	switch r.Kind {
	case types.ResultRows:
		return withElapsed(r, formatRecords(r))
	case types.ResultTables:
		return formatTables(r.Tables)
	case types.ResultInfo:
		return formatInfo(r)
	case types.ResultSuccess:
		return withElapsed(r, r.Message)
	default:
		return r.Message
	}
}

// formatRecords renders records as a table with columns in schema order
func formatRecords(r Result) string {
	if len(r.Records) == 0 {
		return "No records found"
	}

	headers := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		headers[i] = headerStyle.Render(c)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle }).
		Headers(headers...)

	for _, rec := range r.Records {
		row := make([]string, len(r.Columns))
		for i, c := range r.Columns {
			if v, ok := rec[c]; ok && v != nil {
				row[i] = v.String()
			}
		}
		t.Row(row...)
	}
	return t.String()
}

func formatTables(tables []string) string {
	if len(tables) == 0 {
		return "No tables found"
	}

	var sb strings.Builder
	for i, name := range tables {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("- ")
		sb.WriteString(name)
	}
	return sb.String()
}

func formatInfo(r Result) string {
	info := r.Info
	cols := joinColumns(info.Columns)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", headerStyle.Render("Table:"), info.Name)
	fmt.Fprintf(&sb, "%s %s\n", headerStyle.Render("Columns:"), cols)
	fmt.Fprintf(&sb, "%s %d", headerStyle.Render("Records:"), info.RecordCount)
	return sb.String()
}

// withElapsed appends the timing line for insert and select
func withElapsed(r Result, body string) string {
	switch r.Command {
	case types.CmdInsert, types.CmdSelect:
		timing := fmt.Sprintf("%s completed in %.3f seconds.", r.Command, r.Elapsed.Seconds())
		return body + "\n" + mutedStyle.Render(timing)
	}
	return body
}
