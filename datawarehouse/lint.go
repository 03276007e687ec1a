package datawarehouse

import (
	"fmt"
	"strings"
)

// Finding is an integration problem the XSD cannot express.
type Finding struct {
	Path    string
	Message string
}

func (f Finding) String() string {
	return f.Path + ": " + f.Message
}

type linter struct {
	findings []Finding
}

func (l *linter) add(path, format string, args ...any) {
	msg := strings.TrimSpace(fmt.Sprintf(format, args...))
	if msg == "" {
		return
	}
	l.findings = append(l.findings, Finding{Path: path, Message: msg})
}

// Lint reports problems the downstream ingestion rejects or misreports but a
// schema-valid document can still contain: a process run pointing at another
// product unit, parents completed over open children, and measures taken
// before their step started. It does not modify the tree.
func (w *Warehouse) Lint() []Finding {
	l := &linter{}
	if w.productUnit == nil {
		l.add("ProductUnit", "product unit is missing")
	}
	if w.processRun == nil {
		l.add("TopProcessRun", "process run is missing")
		return l.findings
	}
	p := w.processRun
	const root = "TopProcessRun"
	if w.productUnit != nil {
		if p.productUnitIdentifier != w.productUnit.identifier {
			l.add(root, "product unit identifier %q does not match product unit %q", p.productUnitIdentifier, w.productUnit.identifier)
		}
		if p.productFullName != w.productUnit.fullName {
			l.add(root, "product full name %q does not match product unit %q", p.productFullName, w.productUnit.fullName)
		}
	}
	for i, op := range p.operations {
		opPath := fmt.Sprintf("%s/OperationRun[%d]", root, i)
		l.openChild(root, &p.run, opPath, &op.run)
		for j, seq := range op.sequences {
			seqPath := fmt.Sprintf("%s/SequenceRun[%d]", opPath, j)
			l.openChild(opPath, &op.run, seqPath, &seq.run)
			for k, step := range seq.steps {
				stepPath := fmt.Sprintf("%s/StepRun[%d]", seqPath, k)
				l.openChild(seqPath, &seq.run, stepPath, &step.run)
				l.measure(stepPath, step)
			}
		}
	}
	return l.findings
}

func (l *linter) openChild(parentPath string, parent *run, childPath string, child *run) {
	if parent.State() == RunStateCompleted && child.State() == RunStateOpen {
		l.add(parentPath, "completed with status %s while %s is still open", parent.status, childPath)
	}
}

func (l *linter) measure(stepPath string, step *StepRun) {
	m := step.measure
	if m == nil {
		return
	}
	if m.time.Before(step.start) {
		l.add(stepPath+"/Measure", "measure time precedes step start")
	}
	if step.State() == RunStateCompleted && m.status == StatusNotCompleted {
		l.add(stepPath+"/Measure", "measure status is %s under a completed step", m.status)
	}
}
