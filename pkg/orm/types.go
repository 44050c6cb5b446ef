package orm

import (
	"github.com/satishbabariya/ormlite-go/internal/core/query/domain"
	"github.com/satishbabariya/ormlite-go/internal/core/schema"
	"github.com/satishbabariya/ormlite-go/internal/service"
)

// Schema types.
type (
	Model    = schema.Model
	Field    = schema.Field
	Record   = schema.Record
	Registry = schema.Registry
)

// Query algebra types.
type (
	Node       = domain.Node
	Cond       = domain.Cond
	Alias      = domain.Alias
	Assignment = domain.Assignment
	Compiled   = domain.Compiled
	Dialect    = domain.SQLDialect
	Statement  = domain.Statement
)

// Model declaration.
var (
	NewModel      = schema.NewModel
	NewRegistry   = schema.NewRegistry
	FromStruct    = schema.FromStruct
	PrimaryKey    = schema.PrimaryKey
	String        = schema.String
	Int           = schema.Int
	Float         = schema.Float
	Bool          = schema.Bool
	DateTime      = schema.DateTime
	Relation      = schema.Relation
	Column        = schema.Column
	Nullable      = schema.Nullable
	AutoIncrement = schema.AutoIncrement
	OnCreate      = schema.OnCreate
	OnUpdate      = schema.OnUpdate
	Value         = schema.Value
	Now           = schema.Now
)

// Conditions and expressions.
var (
	F      = domain.F
	Where  = domain.Where
	And    = domain.And
	Or     = domain.Or
	RawSQL = domain.RawSQL
	Lookup = domain.Lookup
	Set    = domain.Set
	As     = domain.As
	Count  = domain.Count
	Sum    = domain.Sum
	Avg    = domain.Avg
	Max    = domain.Max
	Min    = domain.Min
)

// Errors returned by queries.
var (
	ErrNotFound        = service.ErrNotFound
	ErrMultipleRecords = service.ErrMultipleRecords
	ErrUnknownRelation = service.ErrUnknownRelation
)
