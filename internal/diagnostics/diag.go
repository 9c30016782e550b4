package diagnostics

import "fmt"

const (
	CodeRootMissing = "E_ROOT_MISSING"
	CodeRootNotDir  = "E_ROOT_NOT_DIR"
	CodeBadPattern  = "E_BAD_PATTERN"
	CodeCollision   = "E_COLLISION"
	CodeRender      = "E_RENDER"
	CodeWrite       = "E_WRITE"
)

// Diagnostic is a structured generator error tied to one example or root path.
type Diagnostic struct {
	Code    string
	Message string
	File    string
	Err     error
}

// Error implements the error interface with path and error code formatting.
func (d Diagnostic) Error() string {
	msg := d.Message
	if d.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, d.Err)
	}
	if d.Code == "" {
		return fmt.Sprintf("%s: %s", d.File, msg)
	}
	return fmt.Sprintf("%s [%s]: %s", d.File, d.Code, msg)
}

// Unwrap exposes the underlying cause so callers can use errors.Is.
func (d Diagnostic) Unwrap() error {
	return d.Err
}

// New constructs a Diagnostic value.
func New(code string, file string, msg string, err error) Diagnostic {
	return Diagnostic{
		Code:    code,
		Message: msg,
		File:    file,
		Err:     err,
	}
}
