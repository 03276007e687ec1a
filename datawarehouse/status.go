package datawarehouse

import (
	"fmt"
	"strings"
)

// ExecutionStatus is the schema's ExecutionStatusKind. The string value is the
// token written to the document.
type ExecutionStatus string

const (
	StatusPass         ExecutionStatus = "PASS"
	StatusFail         ExecutionStatus = "FAIL"
	StatusAborted      ExecutionStatus = "ABORTED"
	StatusNotCompleted ExecutionStatus = "NOT_COMPLETED"
)

// IsTerminal reports whether the status closes a run.
func (s ExecutionStatus) IsTerminal() bool {
	switch s {
	case StatusPass, StatusFail, StatusAborted:
		return true
	default:
		return false
	}
}

func (s ExecutionStatus) valid() bool {
	return s == StatusNotCompleted || s.IsTerminal()
}

func (s ExecutionStatus) String() string {
	return string(s)
}

// ParseExecutionStatus maps a schema token (case-insensitive) to a status.
func ParseExecutionStatus(value string) (ExecutionStatus, error) {
	status := ExecutionStatus(strings.ToUpper(strings.TrimSpace(value)))
	if !status.valid() {
		return "", fmt.Errorf("%w: unknown execution status %q", ErrConstruction, value)
	}
	return status, nil
}

// normalizeStatus maps the zero value to the incomplete sentinel.
func normalizeStatus(s ExecutionStatus) (ExecutionStatus, error) {
	if s == "" {
		return StatusNotCompleted, nil
	}
	if !s.valid() {
		return "", fmt.Errorf("%w: unknown execution status %q", ErrConstruction, string(s))
	}
	return s, nil
}

// RunState is the completion state of a run.
type RunState string

const (
	RunStateOpen      RunState = "open"
	RunStateCompleted RunState = "completed"
)
