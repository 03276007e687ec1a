package datawarehouse

import (
	"fmt"
	"slices"
	"time"
)

// OperationRunSpec carries the attributes of an OperationRun. An empty
// ProcessName is taken from the owning process run when the document is built.
type OperationRunSpec struct {
	ID              string
	Name            string
	Station         string
	User            string
	ProcessName     string
	Status          ExecutionStatus
	StartTime       time.Time
	EndTime         time.Time
	Sequences       []*SequenceRun
	Characteristics []Characteristic
	Documents       []Document
}

// OperationRun is a named phase of a process run.
type OperationRun struct {
	run
	station     string
	user        string
	processName string
	sequences   []*SequenceRun
}

func NewOperationRun(spec OperationRunSpec) (*OperationRun, error) {
	core, err := newRun(runFields{
		id:              spec.ID,
		name:            spec.Name,
		status:          spec.Status,
		start:           spec.StartTime,
		end:             spec.EndTime,
		characteristics: spec.Characteristics,
		documents:       spec.Documents,
	})
	if err != nil {
		return nil, err
	}
	op := &OperationRun{
		run:         core,
		station:     spec.Station,
		user:        spec.User,
		processName: spec.ProcessName,
	}
	for _, seq := range spec.Sequences {
		if err := op.AttachSequenceRun(seq); err != nil {
			op.release()
			return nil, err
		}
	}
	return op, nil
}

// AttachSequenceRun appends seq after the existing sequences.
func (o *OperationRun) AttachSequenceRun(seq *SequenceRun) error {
	if seq == nil {
		return fmt.Errorf("%w: sequence run is nil", ErrConstruction)
	}
	if err := seq.claim("sequence run"); err != nil {
		return err
	}
	o.sequences = append(o.sequences, seq)
	return nil
}

// AddSequenceRun builds a SequenceRun from spec and appends it.
func (o *OperationRun) AddSequenceRun(spec SequenceRunSpec) (*SequenceRun, error) {
	seq, err := NewSequenceRun(spec)
	if err != nil {
		return nil, err
	}
	if err := o.AttachSequenceRun(seq); err != nil {
		return nil, err
	}
	return seq, nil
}

func (o *OperationRun) release() {
	for _, seq := range o.sequences {
		seq.attached = false
	}
	o.sequences = nil
}

func (o *OperationRun) Station() string              { return o.station }
func (o *OperationRun) User() string                 { return o.user }
func (o *OperationRun) ProcessName() string          { return o.processName }
func (o *OperationRun) SequenceRuns() []*SequenceRun { return slices.Clone(o.sequences) }
