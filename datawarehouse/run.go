package datawarehouse

import (
	"fmt"
	"slices"
	"time"
)

// runFields are the attributes every run kind shares.
type runFields struct {
	id              string
	name            string
	status          ExecutionStatus
	start           time.Time
	end             time.Time
	characteristics []Characteristic
	documents       []Document
}

// run is the state shared by process, operation, sequence, and step runs. It
// owns the completion state machine.
type run struct {
	runFields
	attached bool
}

func newRun(f runFields) (run, error) {
	status, err := normalizeStatus(f.status)
	if err != nil {
		return run{}, err
	}
	id, err := normalizeID(f.id)
	if err != nil {
		return run{}, err
	}
	if err := validateAttachments(f.characteristics, f.documents); err != nil {
		return run{}, err
	}
	f.id = id
	f.status = status
	f.characteristics = slices.Clone(f.characteristics)
	f.documents = slices.Clone(f.documents)
	r := run{runFields: f}
	if r.start.IsZero() {
		r.start = time.Now()
	}
	if !status.IsTerminal() {
		if !r.end.IsZero() {
			return run{}, fmt.Errorf("%w: run %q has an end time but status %s", ErrConstruction, r.name, status)
		}
		return r, nil
	}
	if r.end.IsZero() {
		r.end = time.Now()
		if r.end.Before(r.start) {
			r.end = r.start
		}
	}
	if r.end.Before(r.start) {
		return run{}, fmt.Errorf("%w: run %q ends before it starts", ErrConstruction, r.name)
	}
	return r, nil
}

func (r *run) ID() string              { return r.id }
func (r *run) Name() string            { return r.name }
func (r *run) Status() ExecutionStatus { return r.status }
func (r *run) StartTime() time.Time    { return r.start }

// EndTime returns the end time; ok is false while the run is open.
func (r *run) EndTime() (end time.Time, ok bool) {
	if r.State() == RunStateOpen {
		return time.Time{}, false
	}
	return r.end, true
}

func (r *run) State() RunState {
	if r.status.IsTerminal() {
		return RunStateCompleted
	}
	return RunStateOpen
}

// Complete closes the run with status, ending now.
func (r *run) Complete(status ExecutionStatus) error {
	return r.CompleteAt(status, time.Now())
}

// CompleteAt closes the run with status and end time. It fails with
// ErrInvalidState when the run is already completed, when status is not
// terminal, or when end precedes the start time. A failed call leaves the run
// unchanged.
func (r *run) CompleteAt(status ExecutionStatus, end time.Time) error {
	if r.State() == RunStateCompleted {
		return fmt.Errorf("%w: run %q already completed with status %s", ErrInvalidState, r.name, r.status)
	}
	if !status.IsTerminal() {
		return fmt.Errorf("%w: run %q cannot complete with non-terminal status %q", ErrInvalidState, r.name, string(status))
	}
	if end.IsZero() {
		return fmt.Errorf("%w: run %q completion requires an end time", ErrInvalidState, r.name)
	}
	if end.Before(r.start) {
		return fmt.Errorf("%w: run %q cannot end before it starts", ErrInvalidState, r.name)
	}
	r.status = status
	r.end = end
	return nil
}

func (r *run) AddCharacteristic(c Characteristic) error {
	if err := c.validate(); err != nil {
		return err
	}
	r.characteristics = append(r.characteristics, c)
	return nil
}

func (r *run) AddDocument(d Document) error {
	if err := d.validate(); err != nil {
		return err
	}
	r.documents = append(r.documents, d)
	return nil
}

func (r *run) Characteristics() []Characteristic { return slices.Clone(r.characteristics) }
func (r *run) Documents() []Document             { return slices.Clone(r.documents) }

// claim marks the run as owned by a parent.
func (r *run) claim(kind string) error {
	if r.attached {
		return fmt.Errorf("%w: %s %q is already attached to a parent", ErrConstruction, kind, r.name)
	}
	r.attached = true
	return nil
}

func (r *run) ensureID(next IDGenerator) string {
	if r.id == "" {
		r.id = next()
	}
	return r.id
}
