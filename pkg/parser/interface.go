package parser

import (
	"github.com/zhangbiao2009/primitive-db/pkg/types"
)

// Parser turns one shell line into a Statement
type Parser interface {
	Parse(line string) (Statement, error)
}

// Statement represents a parsed shell command
type Statement interface {
	Type() types.CommandType
}

// TableStatement is a Statement that targets a single table
type TableStatement interface {
	Statement
	TableName() string
}
