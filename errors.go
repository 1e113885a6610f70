package configargparse

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes produced during resolution.
// The typed errors below unwrap to these, so callers can classify with
// errors.Is while reaching the payload through errors.As.
var (
	ErrSyntax        = errors.New("config file syntax error")
	ErrArityMismatch = errors.New("option arity mismatch")
	ErrUnknownKey    = errors.New("unknown config key")
	ErrMissingFile   = errors.New("config file not found")
)

// SyntaxError reports a config-file line that could not be parsed.
type SyntaxError struct {
	Path string
	Line int
	Text string // human-readable description of the offending input
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Text)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// ArityMismatchError reports a value whose shape does not match the
// option's arity: a non-boolean value for a flag option, or a bracketed
// list for a non-list option.
type ArityMismatchError struct {
	Option string
	Value  string
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("option --%s: value %q does not match the option's arity", e.Option, e.Value)
}

func (e *ArityMismatchError) Unwrap() error { return ErrArityMismatch }

// UnknownKeyError reports a config key that maps to no long-form option.
type UnknownKeyError struct {
	Key  string
	Path string
	Line int
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("%s:%d: unknown config key %q", e.Path, e.Line, e.Key)
}

func (e *UnknownKeyError) Unwrap() error { return ErrUnknownKey }

// MissingFileError reports an explicitly designated config file that does
// not exist. Candidates from the default search list are skipped silently
// instead.
type MissingFileError struct {
	Path   string
	Origin string // flag or environment variable that designated the path
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("config file %q (from %s) not found", e.Path, e.Origin)
}

func (e *MissingFileError) Unwrap() error { return ErrMissingFile }
