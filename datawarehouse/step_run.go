package datawarehouse

import (
	"fmt"
	"time"
)

// StepRunSpec carries the attributes of a StepRun.
type StepRunSpec struct {
	ID              string
	Name            string
	Status          ExecutionStatus
	StartTime       time.Time
	EndTime         time.Time
	Measure         *Measure
	Characteristics []Characteristic
	Documents       []Document
}

// StepRun is a single test step holding at most one Measure.
type StepRun struct {
	run
	measure *Measure
}

func NewStepRun(spec StepRunSpec) (*StepRun, error) {
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
	step := &StepRun{run: core}
	if spec.Measure != nil {
		if err := step.SetMeasure(spec.Measure); err != nil {
			return nil, err
		}
	}
	return step, nil
}

// SetMeasure attaches m. A step holds one measure; a second call fails with
// ErrConstruction, as does a measure already held by another step.
func (s *StepRun) SetMeasure(m *Measure) error {
	if m == nil {
		return fmt.Errorf("%w: measure is nil", ErrConstruction)
	}
	if s.measure != nil {
		return fmt.Errorf("%w: step run %q already has a measure", ErrConstruction, s.name)
	}
	if m.attached {
		return fmt.Errorf("%w: measure is already attached to a step run", ErrConstruction)
	}
	m.attached = true
	s.measure = m
	return nil
}

// RecordMeasure builds a Measure from spec and attaches it.
func (s *StepRun) RecordMeasure(spec MeasureSpec) (*Measure, error) {
	m, err := NewMeasure(spec)
	if err != nil {
		return nil, err
	}
	if err := s.SetMeasure(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *StepRun) Measure() (*Measure, bool) {
	return s.measure, s.measure != nil
}
