// Package xmlvalidate checks Datawarehouse documents against the externally
// supplied XSD.
//
// A valid result means the document is structurally conformant, nothing more.
// The ingestion pipeline enforces integration rules the schema cannot express
// (see datawarehouse.Warehouse.Lint for the ones this module knows about), so
// a schema-valid document can still be rejected or misreported downstream.
package xmlvalidate

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Diagnostic is one structural violation reported by the engine.
type Diagnostic struct {
	Location string
	Message  string
}

func (d Diagnostic) String() string {
	if d.Location == "" {
		return d.Message
	}
	return d.Location + ": " + d.Message
}

// Result is the outcome of a check. An invalid document is a normal result,
// not an error.
type Result struct {
	Valid       bool
	Diagnostics []Diagnostic
}

// Err converts an invalid result into an error for callers that want to abort.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	issues := &ValidationError{}
	for _, d := range r.Diagnostics {
		issues.Add(d.String())
	}
	if len(issues.Issues) == 0 {
		issues.Add("document is not schema-valid")
	}
	return issues
}

// ValidationError aggregates schema violations.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "schema validation failed"
	}
	return "schema validation failed: " + strings.Join(e.Issues, "; ")
}

func (e *ValidationError) Add(issue string) {
	if strings.TrimSpace(issue) == "" {
		return
	}
	e.Issues = append(e.Issues, issue)
}

// Engine is an XSD validation engine loaded with one schema.
type Engine interface {
	// Validate returns the violations found in doc. It returns an error only
	// when the check itself could not run.
	Validate(doc []byte) ([]Diagnostic, error)
	Close()
}

// Validator validates documents against one schema. It is not safe for
// concurrent use.
type Validator struct {
	engine Engine
}

type options struct {
	engine Engine
}

type Option func(*options)

// WithEngine replaces the libxml2 engine. The schema path passed to New is
// ignored.
func WithEngine(engine Engine) Option {
	return func(o *options) {
		o.engine = engine
	}
}

// New loads the schema at schemaPath.
func New(schemaPath string, opts ...Option) (*Validator, error) {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.engine != nil {
		return &Validator{engine: o.engine}, nil
	}
	if strings.TrimSpace(schemaPath) == "" {
		return nil, errors.New("schema path is required")
	}
	engine, err := newLibxml2Engine(schemaPath)
	if err != nil {
		return nil, err
	}
	return &Validator{engine: engine}, nil
}

func (v *Validator) Validate(doc []byte) (Result, error) {
	if v == nil || v.engine == nil {
		return Result{}, errors.New("validator not initialized")
	}
	diagnostics, err := v.engine.Validate(doc)
	if err != nil {
		return Result{}, err
	}
	return Result{Valid: len(diagnostics) == 0, Diagnostics: diagnostics}, nil
}

func (v *Validator) ValidateFile(path string) (Result, error) {
	doc, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read document: %w", err)
	}
	return v.Validate(doc)
}

// Close releases the engine.
func (v *Validator) Close() {
	if v == nil || v.engine == nil {
		return
	}
	v.engine.Close()
	v.engine = nil
}

// ValidateFile loads schemaPath, checks the document at path, and releases the
// schema.
func ValidateFile(path, schemaPath string) (Result, error) {
	v, err := New(schemaPath)
	if err != nil {
		return Result{}, err
	}
	defer v.Close()
	return v.ValidateFile(path)
}
