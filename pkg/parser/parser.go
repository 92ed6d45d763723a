package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/zhangbiao2009/primitive-db/pkg/dberr"
	"github.com/zhangbiao2009/primitive-db/pkg/query"
	"github.com/zhangbiao2009/primitive-db/pkg/types"
)

var (
	createTableRe = regexp.MustCompile(`(?i)^create_table\s+(\S+)(.*)$`)
	dropTableRe   = regexp.MustCompile(`(?i)^drop_table\s+(\S+)$`)
	infoRe        = regexp.MustCompile(`(?i)^info\s+(\S+)$`)
	insertRe      = regexp.MustCompile(`(?i)^insert\s+into\s+(\S+)\s+values\s*(.*)$`)
	selectRe      = regexp.MustCompile(`(?i)^select\s+from\s+(\S+)(?:\s+where\s+(.+))?$`)
	updateRe      = regexp.MustCompile(`(?i)^update\s+(\S+)\s+set\s+(.+)$`)
	deleteRe      = regexp.MustCompile(`(?i)^delete\s+from\s+(\S+)\s+where\s+(.+)$`)
	whereRe       = regexp.MustCompile(`(?i)\swhere\s`)
	whereKeyRe    = regexp.MustCompile(`(?i)^\s+where\s+`)
	andRe         = regexp.MustCompile(`(?i)^\s+and\s+`)
)

var usages = map[types.CommandType]string{
	types.CmdCreateTable: "create_table <table> <column:type> ...",
	types.CmdDropTable:   "drop_table <table>",
	types.CmdListTables:  "list_tables",
	types.CmdInfo:        "info <table>",
	types.CmdInsert:      "insert into <table> values (<value>, ...)",
	types.CmdSelect:      "select from <table> [where <column> <op> <value> [and ...]]",
	types.CmdUpdate:      "update <table> set <column> = <value>[, ...] where <column> <op> <value> [and ...]",
	types.CmdDelete:      "delete from <table> where <column> <op> <value> [and ...]",
	types.CmdHelp:        "help",
	types.CmdExit:        "exit",
}

// Usage returns the syntax line of a command
func Usage(c types.CommandType) string {
	return usages[c]
}

// SimpleParser implements the Parser interface with one regular expression
// per command.
type SimpleParser struct{}

// NewParser creates a new SimpleParser
func NewParser() Parser {
	return &SimpleParser{}
}

// Parse parses one shell line. A trailing semicolon is ignored and keywords
// are case-insensitive.
func (p *SimpleParser) Parse(line string) (Statement, error) {
	line = strings.TrimSpace(line)
	line = strings.TrimSpace(strings.TrimRight(line, ";"))

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, syntaxError("empty command")
	}

	switch strings.ToLower(fields[0]) {
	case "create_table":
		return p.parseCreateTable(line)
	case "drop_table":
		m := dropTableRe.FindStringSubmatch(line)
		if m == nil {
			return nil, usageError(types.CmdDropTable)
		}
		return &DropTableStatement{Table: m[1]}, nil
	case "list_tables":
		if len(fields) != 1 {
			return nil, usageError(types.CmdListTables)
		}
		return &ListTablesStatement{}, nil
	case "info":
		m := infoRe.FindStringSubmatch(line)
		if m == nil {
			return nil, usageError(types.CmdInfo)
		}
		return &InfoStatement{Table: m[1]}, nil
	case "insert":
		return p.parseInsert(line)
	case "select":
		return p.parseSelect(line)
	case "update":
		return p.parseUpdate(line)
	case "delete":
		return p.parseDelete(line)
	case "help":
		return &HelpStatement{}, nil
	case "exit":
		return &ExitStatement{}, nil
	default:
		return nil, syntaxError("unknown command: %s. Type 'help' for the list of commands", fields[0])
	}
}

// parseCreateTable parses `create_table <table> <col:type> ...`. Column
// definitions are validated by the catalog.
func (p *SimpleParser) parseCreateTable(line string) (*CreateTableStatement, error) {
	m := createTableRe.FindStringSubmatch(line)
	if m == nil {
		return nil, usageError(types.CmdCreateTable)
	}
	return &CreateTableStatement{
		Table:   m[1],
		Columns: strings.Fields(m[2]),
	}, nil
}

// parseInsert parses `insert into <table> values (<v>, ...)`
func (p *SimpleParser) parseInsert(line string) (*InsertStatement, error) {
	m := insertRe.FindStringSubmatch(line)
	if m == nil {
		return nil, usageError(types.CmdInsert)
	}

	values, err := parseValueList(strings.TrimSpace(m[2]))
	if err != nil {
		return nil, err
	}
	return &InsertStatement{Table: m[1], Values: values}, nil
}

// parseSelect parses `select from <table> [where ...]`
func (p *SimpleParser) parseSelect(line string) (*SelectStatement, error) {
	m := selectRe.FindStringSubmatch(line)
	if m == nil {
		return nil, usageError(types.CmdSelect)
	}

	stmt := &SelectStatement{Table: m[1]}
	if m[2] != "" {
		where, err := parseWhere(m[2])
		if err != nil {
			return nil, err
		}
		stmt.Where = where
	}
	return stmt, nil
}

// parseUpdate parses `update <table> set <assignments> where <conditions>`
func (p *SimpleParser) parseUpdate(line string) (*UpdateStatement, error) {
	m := updateRe.FindStringSubmatch(line)
	if m == nil {
		return nil, usageError(types.CmdUpdate)
	}

	setClause, whereClause, err := cutWhere(m[2])
	if err != nil {
		return nil, err
	}
	if whereClause == "" {
		return nil, syntaxError("update requires a where clause. Usage: %s", Usage(types.CmdUpdate))
	}
	if setClause == "" {
		return nil, usageError(types.CmdUpdate)
	}

	set, err := parseSet(setClause)
	if err != nil {
		return nil, err
	}
	where, err := parseWhere(whereClause)
	if err != nil {
		return nil, err
	}
	return &UpdateStatement{Table: m[1], Set: set, Where: where}, nil
}

// parseDelete parses `delete from <table> where <conditions>`
func (p *SimpleParser) parseDelete(line string) (*DeleteStatement, error) {
	m := deleteRe.FindStringSubmatch(line)
	if m == nil {
		if !whereRe.MatchString(line) {
			return nil, syntaxError("delete requires a where clause. Usage: %s", Usage(types.CmdDelete))
		}
		return nil, usageError(types.CmdDelete)
	}

	where, err := parseWhere(m[2])
	if err != nil {
		return nil, err
	}
	return &DeleteStatement{Table: m[1], Where: where}, nil
}

// Helper functions for parsing

// ParseValue converts a literal to a Value: a quoted literal is a string,
// true/false (any case) a bool, an integer an int, and anything else the
// bare string itself.
func ParseValue(raw string) types.Value {
	raw = strings.TrimSpace(raw)

	if isQuoted(raw) {
		return types.NewStringValue(raw[1 : len(raw)-1])
	}
	switch strings.ToLower(raw) {
	case "true":
		return types.NewBoolValue(true)
	case "false":
		return types.NewBoolValue(false)
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return types.NewIntValue(i)
	}
	return types.NewStringValue(raw)
}

// parseValueList parses `(<v>, ...)`. Commas inside quotes do not split.
func parseValueList(s string) ([]types.Value, error) {
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return nil, syntaxError("values must be enclosed in parentheses")
	}

	content := strings.TrimSpace(s[1 : len(s)-1])
	if content == "" {
		return []types.Value{}, nil
	}

	parts, err := splitOutsideQuotes(content, commaSeparator)
	if err != nil {
		return nil, err
	}

	values := make([]types.Value, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, syntaxError("empty value in: %s", s)
		}
		values = append(values, ParseValue(part))
	}
	return values, nil
}

// parseWhere parses `<column> <op> <value> [and ...]`
func parseWhere(clause string) (query.Where, error) {
	parts, err := splitOutsideQuotes(strings.TrimSpace(clause), andSeparator)
	if err != nil {
		return nil, err
	}

	where := make(query.Where, len(parts))
	for _, part := range parts {
		column, op, value, err := parseCondition(part)
		if err != nil {
			return nil, err
		}
		if _, dup := where[column]; dup {
			return nil, syntaxError("column '%s' appears more than once in where clause", column)
		}
		if op == query.OpEq {
			where[column] = query.Eq(value)
		} else {
			where[column] = query.Cmp(op, value)
		}
	}
	return where, nil
}

// parseSet parses `<column> = <value>[, ...]`
func parseSet(clause string) (query.Set, error) {
	parts, err := splitOutsideQuotes(strings.TrimSpace(clause), commaSeparator)
	if err != nil {
		return nil, err
	}

	set := make(query.Set, len(parts))
	for _, part := range parts {
		column, op, value, err := parseCondition(part)
		if err != nil || op != query.OpEq {
			return nil, syntaxError("invalid set assignment: %s", strings.TrimSpace(part))
		}
		if _, dup := set[column]; dup {
			return nil, syntaxError("column '%s' is assigned more than once", column)
		}
		set[column] = value
	}
	return set, nil
}

// parseCondition splits `<column> <op> <value>` at the first operator
// outside quotes.
func parseCondition(s string) (string, query.Operator, types.Value, error) {
	s = strings.TrimSpace(s)

	idx, op := findOperator(s)
	if idx < 0 {
		return "", "", nil, syntaxError("invalid where condition: %s. Supported operators: %s", s, operatorList())
	}

	column := strings.TrimSpace(s[:idx])
	raw := strings.TrimSpace(s[idx+len(op):])
	if column == "" || raw == "" {
		return "", "", nil, syntaxError("invalid where condition: %s", s)
	}
	return column, op, ParseValue(raw), nil
}

// findOperator returns the offset of the first operator outside quotes,
// trying longer operators first at each offset.
func findOperator(s string) (int, query.Operator) {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		default:
			for _, op := range query.Operators {
				if strings.HasPrefix(s[i:], string(op)) {
					return i, op
				}
			}
		}
	}
	return -1, ""
}

func operatorList() string {
	ops := make([]string, len(query.Operators))
	for i, op := range query.Operators {
		ops[i] = string(op)
	}
	return strings.Join(ops, ", ")
}

// separator reports the length of the separator at the start of rest, or 0
type separator func(rest string) int

func commaSeparator(rest string) int {
	if rest[0] == ',' {
		return 1
	}
	return 0
}

func andSeparator(rest string) int {
	if loc := andRe.FindStringIndex(rest); loc != nil {
		return loc[1]
	}
	return 0
}

// splitOutsideQuotes splits s at every separator that is not inside a
// single- or double-quoted literal.
func splitOutsideQuotes(s string, sep separator) ([]string, error) {
	var parts []string
	var quote byte
	start := 0

	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		default:
			if n := sep(s[i:]); n > 0 {
				parts = append(parts, s[start:i])
				i += n
				start = i
				continue
			}
		}
		i++
	}

	if quote != 0 {
		return nil, syntaxError("unterminated quote in: %s", s)
	}
	return append(parts, s[start:]), nil
}

// cutWhere splits s at the first where keyword outside quotes. where is
// empty when there is no such keyword.
func cutWhere(s string) (before, where string, err error) {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		default:
			if loc := whereKeyRe.FindStringIndex(s[i:]); loc != nil {
				return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+loc[1]:]), nil
			}
		}
	}
	if quote != 0 {
		return "", "", syntaxError("unterminated quote in: %s", s)
	}
	return strings.TrimSpace(s), "", nil
}

func isQuoted(s string) bool {
	return len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0]
}

func syntaxError(format string, args ...any) error {
	return dberr.New(dberr.KindSyntax, format, args...)
}

func usageError(c types.CommandType) error {
	return syntaxError("invalid %s syntax. Usage: %s", c, Usage(c))
}
