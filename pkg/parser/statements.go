package parser

import (
	"github.com/zhangbiao2009/primitive-db/pkg/query"
	"github.com/zhangbiao2009/primitive-db/pkg/types"
)

// CreateTableStatement is `create_table <table> <col:type> ...`
type CreateTableStatement struct {
	Table   string
	Columns []string
}

func (s *CreateTableStatement) Type() types.CommandType { return types.CmdCreateTable }
func (s *CreateTableStatement) TableName() string       { return s.Table }

// DropTableStatement is `drop_table <table>`
type DropTableStatement struct {
	Table string
}

func (s *DropTableStatement) Type() types.CommandType { return types.CmdDropTable }
func (s *DropTableStatement) TableName() string       { return s.Table }

// ListTablesStatement is `list_tables`
type ListTablesStatement struct{}

func (s *ListTablesStatement) Type() types.CommandType { return types.CmdListTables }

// InfoStatement is `info <table>`
type InfoStatement struct {
	Table string
}

func (s *InfoStatement) Type() types.CommandType { return types.CmdInfo }
func (s *InfoStatement) TableName() string       { return s.Table }

// InsertStatement is `insert into <table> values (<v>, ...)`
type InsertStatement struct {
	Table  string
	Values []types.Value
}

func (s *InsertStatement) Type() types.CommandType { return types.CmdInsert }
func (s *InsertStatement) TableName() string       { return s.Table }

// SelectStatement is `select from <table> [where ...]`. A nil Where
// selects every record.
type SelectStatement struct {
	Table string
	Where query.Where
}

func (s *SelectStatement) Type() types.CommandType { return types.CmdSelect }
func (s *SelectStatement) TableName() string       { return s.Table }

// UpdateStatement is `update <table> set <col> = <v>[, ...] where ...`
type UpdateStatement struct {
	Table string
	Set   query.Set
	Where query.Where
}

func (s *UpdateStatement) Type() types.CommandType { return types.CmdUpdate }
func (s *UpdateStatement) TableName() string       { return s.Table }

// DeleteStatement is `delete from <table> where ...`
type DeleteStatement struct {
	Table string
	Where query.Where
}

func (s *DeleteStatement) Type() types.CommandType { return types.CmdDelete }
func (s *DeleteStatement) TableName() string       { return s.Table }

// HelpStatement is `help`
type HelpStatement struct{}

func (s *HelpStatement) Type() types.CommandType { return types.CmdHelp }

// ExitStatement is `exit`
type ExitStatement struct{}

func (s *ExitStatement) Type() types.CommandType { return types.CmdExit }
