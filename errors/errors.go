// Package errors provides error handling for lcapgen.
//
// This package re-exports github.com/cockroachdb/errors so every package
// gets stack traces, wrapping and user-facing hints from one import:
//
//	if err := scaffold.Instantiate(src, dst, tokens); err != nil {
//	    return errors.Wrapf(err, "instantiate %s", tag)
//	}
//
//	return errors.WithHint(err, "run `lcapgen config init` to create lcapgen.toml")
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint     = crdb.WithHint
	WithHintf    = crdb.WithHintf
	WithDetail   = crdb.WithDetail
	WithDetailf  = crdb.WithDetailf
	FlattenHints = crdb.FlattenHints
	GetAllHints  = crdb.GetAllHints
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Sentinel errors. Wrap them with errors.Wrap to add context; check with errors.Is.
var (
	// ErrTemplateNotFound indicates no template folder exists for the framework
	ErrTemplateNotFound = New("template not found")

	// ErrIncompatibleTemplate indicates the template manifest rejects this generator version
	ErrIncompatibleTemplate = New("incompatible template")

	// ErrIndexNotFound indicates the shared components index file is missing
	ErrIndexNotFound = New("index file not found")

	// ErrNoComponents indicates extraction produced nothing to write
	ErrNoComponents = New("no components")

	// ErrFrontendNotFound indicates the host dump has no frontend of the requested name
	ErrFrontendNotFound = New("frontend not found")

	// ErrInvalidConfig indicates the configuration failed validation
	ErrInvalidConfig = New("invalid configuration")
)

// IsTemplateNotFound checks if an error is or wraps ErrTemplateNotFound
func IsTemplateNotFound(err error) bool {
	return err != nil && Is(err, ErrTemplateNotFound)
}

// IsIndexNotFound checks if an error is or wraps ErrIndexNotFound
func IsIndexNotFound(err error) bool {
	return err != nil && Is(err, ErrIndexNotFound)
}

// NewTemplateNotFoundError creates a template-not-found error with a formatted message
func NewTemplateNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrTemplateNotFound, Newf(format, args...).Error())
}

// NewIndexNotFoundError creates an index-not-found error with a formatted message
func NewIndexNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrIndexNotFound, Newf(format, args...).Error())
}
