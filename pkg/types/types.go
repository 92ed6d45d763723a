package types

import "strings"

// DataType represents a column data type
type DataType int

const (
	TypeInvalid DataType = iota
	TypeInt
	TypeStr
	TypeBool
)

// SupportedTypes lists the type tokens accepted in column definitions,
// in the order they are reported to the user.
var SupportedTypes = []string{"bool", "int", "str"}

// String returns the type token used in column definitions
func (t DataType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeStr:
		return "str"
	case TypeBool:
		return "bool"
	default:
		return "invalid"
	}
}

// ParseDataType converts a type token to a DataType. The token is matched
// case-insensitively and surrounding whitespace is ignored.
func ParseDataType(token string) (DataType, bool) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "int":
		return TypeInt, true
	case "str":
		return TypeStr, true
	case "bool":
		return TypeBool, true
	default:
		return TypeInvalid, false
	}
}

// CommandType represents the type of shell command
type CommandType int

const (
	CmdCreateTable CommandType = iota
	CmdDropTable
	CmdListTables
	CmdInsert
	CmdSelect
	CmdUpdate
	CmdDelete
	CmdInfo
	CmdHelp
	CmdExit
)

var commandNames = map[CommandType]string{
	CmdCreateTable: "create_table",
	CmdDropTable:   "drop_table",
	CmdListTables:  "list_tables",
	CmdInsert:      "insert",
	CmdSelect:      "select",
	CmdUpdate:      "update",
	CmdDelete:      "delete",
	CmdInfo:        "info",
	CmdHelp:        "help",
	CmdExit:        "exit",
}

// String returns the shell keyword of the command
func (c CommandType) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// Mutates reports whether the command changes table data or the catalog.
func (c CommandType) Mutates() bool {
	switch c {
	case CmdCreateTable, CmdDropTable, CmdInsert, CmdUpdate, CmdDelete:
		return true
	}
	return false
}

// ResultType represents the type of command result
type ResultType int

const (
	ResultSuccess ResultType = iota
	ResultRows
	ResultTables
	ResultInfo
	ResultHelp
	ResultCancelled
	ResultExit
	ResultError
)
