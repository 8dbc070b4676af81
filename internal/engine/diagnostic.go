package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingProjectRoot reports that no project root was configured.
	ErrMissingProjectRoot = errors.New("no project root configured")
	// ErrOutsideProjectRoot reports a resource that is not under the project
	// root while no explicit namespace was given.
	ErrOutsideProjectRoot = errors.New("resource is outside the project root")
	// ErrInvalidPath reports a path without a file name or directory.
	ErrInvalidPath = errors.New("resource path has no directory")
)

// DiagnosticCode is the stable identifier reported to the build.
type DiagnosticCode string

const (
	CodeMissingProjectRoot DiagnosticCode = "TE001"
	CodeOutsideProjectRoot DiagnosticCode = "TE002"
	CodeInvalidPath        DiagnosticCode = "TE003"
)

// Diagnostic is a per-resource configuration error. No unit is produced for
// a resource that yields a diagnostic, and processing of other resources is
// unaffected.
type Diagnostic struct {
	Code    DiagnosticCode
	Path    string
	Message string
	Err     error
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Code, d.Path, d.Message)
}

func (d *Diagnostic) Unwrap() error { return d.Err }

func newDiagnostic(path string, err error, format string, args ...any) *Diagnostic {
	d := &Diagnostic{Path: path, Err: err, Message: fmt.Sprintf(format, args...)}
	switch {
	case errors.Is(err, ErrMissingProjectRoot):
		d.Code = CodeMissingProjectRoot
	case errors.Is(err, ErrOutsideProjectRoot):
		d.Code = CodeOutsideProjectRoot
	default:
		d.Code = CodeInvalidPath
	}
	return d
}
