package ports

import "github.com/vtx-labs/framecast/pkg/log"

// Logger is the structured logging port. It aliases pkg/log.Logger so
// internal packages import a single boundary package.
type Logger = log.Logger

// Field is a structured log field.
type Field = log.Field

// Re-exported field constructors for internal callers.
var (
	String   = log.String
	Int      = log.Int
	Uint64   = log.Uint64
	Bool     = log.Bool
	Duration = log.Duration
	Err      = log.Err
	Any      = log.Any
)
