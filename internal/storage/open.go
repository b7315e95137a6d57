package storage

import (
	"context"
	"fmt"
)

// Drivers accepted by Open.
const (
	DriverSQLite   = "sqlite"
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Options selects and configures a Backend.
type Options struct {
	Driver string
	// Path is the database or JSON file location for sqlite and file.
	Path string
	// DSN is the connection string for postgres.
	DSN string
}

// Open creates the Backend named by opts.Driver.
func Open(ctx context.Context, opts Options) (Backend, error) {
	switch opts.Driver {
	case DriverSQLite, "":
		return OpenSQLite(ctx, opts.Path)
	case DriverFile:
		return NewFileBackend(opts.Path)
	case DriverPostgres:
		return NewPostgres(ctx, opts.DSN)
	case DriverMemory:
		return NewMemoryBackend(nil), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
