// Package errors re-exports github.com/cockroachdb/errors for ts2mbt and
// declares the sentinel errors shared by the runner and the CLI.
//
//	if err := parse(); err != nil {
//	    return errors.Wrapf(err, "parse %s", path)
//	}
//	return errors.WithHint(err, "pass a .ts file or a directory")
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

var (
	WithHint     = crdb.WithHint
	WithHintf    = crdb.WithHintf
	WithDetail   = crdb.WithDetail
	WithDetailf  = crdb.WithDetailf
	GetAllHints  = crdb.GetAllHints
	FlattenHints = crdb.FlattenHints
)

var (
	Is        = crdb.Is
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Sentinel errors. Wrap them to add context; test with Is.
var (
	// ErrNoInputs indicates discovery found no TypeScript files.
	ErrNoInputs = New("no typescript inputs")

	// ErrStaleOutput indicates check mode found generated files that differ
	// from what would be generated now.
	ErrStaleOutput = New("generated output is stale")

	// ErrParse indicates the TypeScript parser could not produce a tree.
	ErrParse = New("parse failed")

	// ErrInvalidConfig indicates a configuration value failed validation.
	ErrInvalidConfig = New("invalid configuration")
)

// IsStale reports whether err is or wraps ErrStaleOutput.
func IsStale(err error) bool {
	return err != nil && Is(err, ErrStaleOutput)
}

// UserMessage renders err followed by its hints, one per line.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if hints := FlattenHints(err); hints != "" {
		msg += "\nhint: " + hints
	}
	return msg
}
