package datawarehouse

import (
	"fmt"
	"slices"
	"time"
)

// ProcessRunSpec carries the attributes of a ProcessRun. ProductUnitIdentifier
// and ProductFullName are copies of the product unit's values, not a
// reference; both are required by the time the document is built.
type ProcessRunSpec struct {
	ID                    string
	Name                  string
	Version               string
	ProcessMode           string
	ProductUnitIdentifier string
	ProductFullName       string
	Status                ExecutionStatus
	StartTime             time.Time
	EndTime               time.Time
	Operations            []*OperationRun
}

// ProcessRun is the top-level record of one test execution.
type ProcessRun struct {
	run
	version               string
	processMode           string
	productUnitIdentifier string
	productFullName       string
	operations            []*OperationRun
}

func NewProcessRun(spec ProcessRunSpec) (*ProcessRun, error) {
	core, err := newRun(runFields{
		id:     spec.ID,
		name:   spec.Name,
		status: spec.Status,
		start:  spec.StartTime,
		end:    spec.EndTime,
	})
	if err != nil {
		return nil, err
	}
	pr := &ProcessRun{
		run:                   core,
		version:               spec.Version,
		processMode:           spec.ProcessMode,
		productUnitIdentifier: spec.ProductUnitIdentifier,
		productFullName:       spec.ProductFullName,
	}
	for _, op := range spec.Operations {
		if err := pr.AttachOperationRun(op); err != nil {
			pr.release()
			return nil, err
		}
	}
	return pr, nil
}

// AttachOperationRun appends op after the existing operations.
func (p *ProcessRun) AttachOperationRun(op *OperationRun) error {
	if op == nil {
		return fmt.Errorf("%w: operation run is nil", ErrConstruction)
	}
	if err := op.claim("operation run"); err != nil {
		return err
	}
	p.operations = append(p.operations, op)
	return nil
}

// AddOperationRun builds an OperationRun from spec and appends it.
func (p *ProcessRun) AddOperationRun(spec OperationRunSpec) (*OperationRun, error) {
	op, err := NewOperationRun(spec)
	if err != nil {
		return nil, err
	}
	if err := p.AttachOperationRun(op); err != nil {
		return nil, err
	}
	return op, nil
}

func (p *ProcessRun) release() {
	for _, op := range p.operations {
		op.attached = false
	}
	p.operations = nil
}

func (p *ProcessRun) Version() string                { return p.version }
func (p *ProcessRun) ProcessMode() string            { return p.processMode }
func (p *ProcessRun) ProductUnitIdentifier() string  { return p.productUnitIdentifier }
func (p *ProcessRun) ProductFullName() string        { return p.productFullName }
func (p *ProcessRun) OperationRuns() []*OperationRun { return slices.Clone(p.operations) }
