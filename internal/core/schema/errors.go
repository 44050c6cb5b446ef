package schema

import "errors"

// Declaration errors. They are returned when a model or registry is built,
// never later.
var (
	ErrNoModelName         = errors.New("model name is required")
	ErrMultiplePrimaryKeys = errors.New("model declares more than one primary key")
	ErrDuplicateField      = errors.New("duplicate field name")
	ErrDuplicateColumn     = errors.New("duplicate column name")
	ErrDuplicateModel      = errors.New("duplicate model name")
	ErrUnknownModel        = errors.New("unknown model")
	ErrUnknownType         = errors.New("unknown field type")
	ErrMissingRelation     = errors.New("relation field has no target model")
	ErrUnsupportedStruct   = errors.New("unsupported struct")
)
