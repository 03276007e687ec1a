package xmlvalidate

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/lestrrat-go/libxml2"
	"github.com/lestrrat-go/libxml2/xsd"
)

type libxml2Engine struct {
	schema *xsd.Schema
}

func newLibxml2Engine(schemaPath string) (*libxml2Engine, error) {
	raw, err := os.ReadFile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	schema, err := xsd.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", schemaPath, err)
	}
	return &libxml2Engine{schema: schema}, nil
}

func (e *libxml2Engine) Validate(doc []byte) ([]Diagnostic, error) {
	if e == nil || e.schema == nil {
		return nil, errors.New("schema not loaded")
	}
	parsed, err := libxml2.Parse(doc)
	if err != nil {
		return []Diagnostic{{Location: "document", Message: "not well-formed: " + err.Error()}}, nil
	}
	defer parsed.Free()

	err = e.schema.Validate(parsed)
	if err == nil {
		return nil, nil
	}
	var sve xsd.SchemaValidationError
	if !errors.As(err, &sve) {
		return nil, fmt.Errorf("run schema validation: %w", err)
	}
	var out []Diagnostic
	for _, verr := range sve.Errors() {
		out = append(out, parseDiagnostic(verr.Error()))
	}
	if len(out) == 0 {
		out = append(out, Diagnostic{Message: err.Error()})
	}
	return out, nil
}

func (e *libxml2Engine) Close() {
	if e == nil || e.schema == nil {
		return
	}
	e.schema.Free()
	e.schema = nil
}

// libxml2 prefixes schema errors with the offending element and attribute.
var diagnosticPattern = regexp.MustCompile(`^(Element '[^']*'(?:, attribute '[^']*')?):\s*(.*)$`)

func parseDiagnostic(msg string) Diagnostic {
	msg = strings.TrimSpace(msg)
	if m := diagnosticPattern.FindStringSubmatch(msg); m != nil {
		return Diagnostic{Location: m[1], Message: m[2]}
	}
	return Diagnostic{Message: msg}
}
