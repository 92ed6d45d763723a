package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/zhangbiao2009/primitive-db/pkg/cache"
	"github.com/zhangbiao2009/primitive-db/pkg/catalog"
	"github.com/zhangbiao2009/primitive-db/pkg/config"
	"github.com/zhangbiao2009/primitive-db/pkg/dberr"
	"github.com/zhangbiao2009/primitive-db/pkg/executor"
	"github.com/zhangbiao2009/primitive-db/pkg/logging"
	"github.com/zhangbiao2009/primitive-db/pkg/parser"
	"github.com/zhangbiao2009/primitive-db/pkg/storage"
	"github.com/zhangbiao2009/primitive-db/pkg/storage/jsonfile"
	"github.com/zhangbiao2009/primitive-db/pkg/storage/memory"
	"github.com/zhangbiao2009/primitive-db/pkg/types"
)

// Confirmer asks the user to approve a destructive command
type Confirmer interface {
	Confirm(action string) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface
type ConfirmFunc func(action string) (bool, error)

func (f ConfirmFunc) Confirm(action string) (bool, error) {
	return f(action)
}

// confirmActions names the commands that need approval
var confirmActions = map[types.CommandType]string{
	types.CmdDropTable: "drop table",
	types.CmdDelete:    "delete records",
}

// Options configures a DB
type Options struct {
	// Confirmer approves drop_table and delete. Nil approves everything.
	Confirmer Confirmer
	// AssumeYes skips confirmation.
	AssumeYes bool
}

// DB is the workspace the shell talks to: it owns the engine, the select
// cache and the confirmation hook. The catalog is reloaded from storage for
// every command.
type DB struct {
	parser    parser.Parser
	executor  *executor.Executor
	cache     *cache.QueryCache
	confirmer Confirmer
	assumeYes bool
	now       func() time.Time
}

// Result is the typed outcome of one command. The shell decides how to
// present it.
type Result struct {
	Kind    types.ResultType
	Command types.CommandType
	Table   string

	// Message is set for commands that only report success
	Message string

	// For select
	Columns []string
	Records []storage.Record

	// For list_tables
	Tables []string

	// For info
	Info *executor.TableInfo

	// Records inserted, updated, deleted or returned
	Affected int

	Elapsed time.Duration
	Err     error
}

// Success reports whether the command ran without error
func (r Result) Success() bool {
	return r.Err == nil
}

// New creates a workspace over store
func New(store storage.Store, opts Options) *DB {
	return &DB{
		parser:    parser.NewParser(),
		executor:  executor.NewExecutor(store),
		cache:     cache.New(),
		confirmer: opts.Confirmer,
		assumeYes: opts.AssumeYes,
		now:       time.Now,
	}
}

// NewMemory creates a workspace backed by process memory
func NewMemory() *DB {
	return New(memory.New(), Options{})
}

// Open creates a workspace over the JSON files named by cfg
func Open(cfg config.Config, confirmer Confirmer) (*DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	store, err := jsonfile.New(cfg.DataDir, cfg.MetaFile)
	if err != nil {
		return nil, fmt.Errorf("open workspace: %w", err)
	}
	return New(store, Options{Confirmer: confirmer, AssumeYes: cfg.AssumeYes}), nil
}

// CacheStats returns the select cache counters
func (db *DB) CacheStats() cache.Stats {
	return db.cache.Stats()
}

// Execute parses and runs one shell line
func (db *DB) Execute(line string) Result {
	stmt, err := db.parser.Parse(line)
	if err != nil {
		logging.GetLogger().Debug("parse failed", "line", line, "error", err)
		return Result{Kind: types.ResultError, Err: err}
	}
	return db.ExecuteStatement(stmt)
}

// ExecuteStatement runs a parsed statement: it asks for confirmation where
// needed, times the engine call, and invalidates the select cache after any
// successful write.
func (db *DB) ExecuteStatement(stmt parser.Statement) Result {
	cmd := stmt.Type()
	table := tableOf(stmt)
	log := logging.WithOp(cmd.String())

	switch cmd {
	case types.CmdHelp:
		return Result{Kind: types.ResultHelp, Command: cmd, Message: HelpText()}
	case types.CmdExit:
		return Result{Kind: types.ResultExit, Command: cmd, Message: "Goodbye!"}
	}

	if action, ok := confirmActions[cmd]; ok && !db.assumeYes && db.confirmer != nil {
		approved, err := db.confirmer.Confirm(action)
		if err != nil {
			return Result{Kind: types.ResultError, Command: cmd, Table: table, Err: fmt.Errorf("confirm %s: %w", action, err)}
		}
		if !approved {
			log.Info("command cancelled", "table", table)
			return Result{Kind: types.ResultCancelled, Command: cmd, Table: table, Message: "Operation cancelled."}
		}
	}

	start := db.now()
	res, err := db.dispatch(stmt)
	elapsed := db.now().Sub(start)

	if err != nil {
		log.Warn("command failed", "table", table, "elapsed", elapsed, "error", err)
		return Result{Kind: types.ResultError, Command: cmd, Table: table, Elapsed: elapsed, Err: err}
	}

	if cmd.Mutates() {
		db.cache.InvalidateAll()
	}

	res.Command = cmd
	res.Table = table
	res.Elapsed = elapsed
	log.Debug("command executed", "table", table, "elapsed", elapsed, "affected", res.Affected)
	return res
}

func (db *DB) dispatch(stmt parser.Statement) (Result, error) {
	cat, err := db.executor.LoadCatalog()
	if err != nil {
		return Result{}, err
	}

	switch s := stmt.(type) {
	case *parser.CreateTableStatement:
		next, err := db.executor.CreateTable(cat, s.Table, s.Columns)
		if err != nil {
			return Result{}, err
		}
		cols, err := next.Columns(s.Table)
		if err != nil {
			return Result{}, err
		}
		return Result{
			Kind:    types.ResultSuccess,
			Message: fmt.Sprintf("Table '%s' created with columns: %s", s.Table, joinColumns(cols)),
		}, nil

	case *parser.DropTableStatement:
		if _, err := db.executor.DropTable(cat, s.Table); err != nil {
			return Result{}, err
		}
		return Result{Kind: types.ResultSuccess, Message: fmt.Sprintf("Table '%s' dropped.", s.Table)}, nil

	case *parser.ListTablesStatement:
		return Result{Kind: types.ResultTables, Tables: db.executor.ListTables(cat)}, nil

	case *parser.InfoStatement:
		info, err := db.executor.TableInfo(cat, s.Table)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: types.ResultInfo, Info: info}, nil

	case *parser.InsertStatement:
		rec, err := db.executor.Insert(cat, s.Table, s.Values)
		if err != nil {
			return Result{}, err
		}
		id, _ := rec.ID()
		return Result{
			Kind:     types.ResultSuccess,
			Message:  fmt.Sprintf("Record with ID=%d inserted into table '%s'.", id, s.Table),
			Affected: 1,
		}, nil

	case *parser.SelectStatement:
		records, err := db.cache.Get(s.Table, s.Where, func() ([]storage.Record, error) {
			return db.executor.Select(cat, s.Table, s.Where)
		})
		if err != nil {
			return Result{}, err
		}
		schema, ok := cat.GetTable(s.Table)
		if !ok {
			return Result{}, dberr.TableNotFound(s.Table)
		}
		return Result{
			Kind:     types.ResultRows,
			Columns:  schema.ColumnNames(),
			Records:  records,
			Affected: len(records),
		}, nil

	case *parser.UpdateStatement:
		n, err := db.executor.Update(cat, s.Table, s.Set, s.Where)
		if err != nil {
			return Result{}, err
		}
		return Result{
			Kind:     types.ResultSuccess,
			Message:  fmt.Sprintf("Updated %d record(s) in table '%s'.", n, s.Table),
			Affected: n,
		}, nil

	case *parser.DeleteStatement:
		n, err := db.executor.Delete(cat, s.Table, s.Where)
		if err != nil {
			return Result{}, err
		}
		return Result{
			Kind:     types.ResultSuccess,
			Message:  fmt.Sprintf("Deleted %d record(s) from table '%s'.", n, s.Table),
			Affected: n,
		}, nil
	}

	return Result{}, fmt.Errorf("unsupported statement %T", stmt)
}

func tableOf(stmt parser.Statement) string {
	if ts, ok := stmt.(parser.TableStatement); ok {
		return ts.TableName()
	}
	return ""
}

func joinColumns(cols []catalog.Column) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
