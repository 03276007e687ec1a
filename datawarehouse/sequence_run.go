package datawarehouse

import (
	"fmt"
	"slices"
	"time"
)

// SequenceRunSpec carries the attributes of a SequenceRun. An empty Station
// is taken from the owning operation run when the document is built.
type SequenceRunSpec struct {
	ID              string
	Name            string
	Version         string
	Station         string
	User            string
	Status          ExecutionStatus
	StartTime       time.Time
	EndTime         time.Time
	Steps           []*StepRun
	Characteristics []Characteristic
	Documents       []Document
}

// SequenceRun is a named group of step runs, kept in execution order.
type SequenceRun struct {
	run
	version string
	station string
	user    string
	steps   []*StepRun
}

func NewSequenceRun(spec SequenceRunSpec) (*SequenceRun, error) {
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
	seq := &SequenceRun{
		run:     core,
		version: spec.Version,
		station: spec.Station,
		user:    spec.User,
	}
	for _, step := range spec.Steps {
		if err := seq.AttachStepRun(step); err != nil {
			seq.release()
			return nil, err
		}
	}
	return seq, nil
}

// AttachStepRun appends step after the existing steps.
func (s *SequenceRun) AttachStepRun(step *StepRun) error {
	if step == nil {
		return fmt.Errorf("%w: step run is nil", ErrConstruction)
	}
	if err := step.claim("step run"); err != nil {
		return err
	}
	s.steps = append(s.steps, step)
	return nil
}

// AddStepRun builds a StepRun from spec and appends it.
func (s *SequenceRun) AddStepRun(spec StepRunSpec) (*StepRun, error) {
	step, err := NewStepRun(spec)
	if err != nil {
		return nil, err
	}
	if err := s.AttachStepRun(step); err != nil {
		return nil, err
	}
	return step, nil
}

func (s *SequenceRun) release() {
	for _, step := range s.steps {
		step.attached = false
	}
	s.steps = nil
}

func (s *SequenceRun) Version() string      { return s.version }
func (s *SequenceRun) Station() string      { return s.station }
func (s *SequenceRun) User() string         { return s.user }
func (s *SequenceRun) StepRuns() []*StepRun { return slices.Clone(s.steps) }
