package domain

import "fmt"

// DiagnosticCode classifies a non-fatal problem.
type DiagnosticCode string

const (
	DiagMalformedNode  DiagnosticCode = "malformed_node"
	DiagDuplicateKey   DiagnosticCode = "duplicate_key"
	DiagUnknownKey     DiagnosticCode = "unknown_key"
	DiagInvalidDrop    DiagnosticCode = "invalid_drop"
	DiagExpandMismatch DiagnosticCode = "expand_mismatch"
)

// Diagnostic describes a configuration or gesture problem that did not abort the computation.
type Diagnostic struct {
	Code    DiagnosticCode `json:"code"`
	Key     Key            `json:"key,omitempty"`
	Pos     Pos            `json:"pos,omitempty"`
	Message string         `json:"message"`
	Err     error          `json:"-"`
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}

// Reporter receives diagnostics. A nil Reporter drops them.
type Reporter func(Diagnostic)

// Report forwards d when r is set.
func (r Reporter) Report(d Diagnostic) {
	if r != nil {
		r(d)
	}
}
