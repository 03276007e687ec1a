package datawarehouse

import (
	"errors"
	"testing"
	"time"
)

func TestParseExecutionStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    ExecutionStatus
		wantErr bool
	}{
		{in: "PASS", want: StatusPass},
		{in: " fail ", want: StatusFail},
		{in: "aborted", want: StatusAborted},
		{in: "NOT_COMPLETED", want: StatusNotCompleted},
		{in: "DONE", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseExecutionStatus(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrConstruction) {
				t.Fatalf("ParseExecutionStatus(%q) err=%v, want ErrConstruction", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseExecutionStatus(%q) err=%v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseExecutionStatus(%q)=%s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestNewRun_EagerStates(t *testing.T) {
	open := Must(NewStepRun(StepRunSpec{StartTime: t0}))
	if open.State() != RunStateOpen || open.Status() != StatusNotCompleted {
		t.Fatalf("open run state=%s status=%s", open.State(), open.Status())
	}
	if _, ok := open.EndTime(); ok {
		t.Fatalf("open run reports an end time")
	}

	closed := Must(NewStepRun(StepRunSpec{StartTime: t0, EndTime: at(time.Minute), Status: StatusFail}))
	if closed.State() != RunStateCompleted {
		t.Fatalf("terminal run state=%s, want completed", closed.State())
	}
	if end, ok := closed.EndTime(); !ok || !end.Equal(at(time.Minute)) {
		t.Fatalf("EndTime()=%v,%v", end, ok)
	}

	defaulted := Must(NewStepRun(StepRunSpec{StartTime: t0, Status: StatusPass}))
	if end, ok := defaulted.EndTime(); !ok || end.Before(t0) {
		t.Fatalf("defaulted EndTime()=%v,%v want >= start", end, ok)
	}

	future := time.Now().Add(time.Hour)
	clamped := Must(NewStepRun(StepRunSpec{StartTime: future, Status: StatusPass}))
	if end, _ := clamped.EndTime(); end.Before(future) {
		t.Fatalf("defaulted end %v precedes start %v", end, future)
	}
}

func TestNewRun_Rejects(t *testing.T) {
	tests := []struct {
		name string
		spec StepRunSpec
	}{
		{
			name: "end time on incomplete run",
			spec: StepRunSpec{StartTime: t0, EndTime: at(time.Minute)},
		},
		{
			name: "end before start",
			spec: StepRunSpec{StartTime: t0, EndTime: at(-time.Minute), Status: StatusPass},
		},
		{
			name: "unknown status",
			spec: StepRunSpec{StartTime: t0, Status: "SKIPPED"},
		},
		{
			name: "id not a uuid",
			spec: StepRunSpec{ID: "STEP-1", StartTime: t0},
		},
		{
			name: "characteristic without name",
			spec: StepRunSpec{StartTime: t0, Characteristics: []Characteristic{{Value: "x"}}},
		},
		{
			name: "document without file",
			spec: StepRunSpec{StartTime: t0, Documents: []Document{{Name: "log"}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewStepRun(tt.spec); !errors.Is(err, ErrConstruction) {
				t.Fatalf("NewStepRun() err=%v, want ErrConstruction", err)
			}
		})
	}
}

func TestNewRun_KeepsUUIDID(t *testing.T) {
	const id = " 6f1c2f0e-8d7a-4b7e-9a51-3f2d5c8e4b10 "
	seq, err := NewSequenceRun(SequenceRunSpec{ID: id, StartTime: t0})
	if err != nil {
		t.Fatalf("NewSequenceRun() err=%v", err)
	}
	if seq.ID() != "6f1c2f0e-8d7a-4b7e-9a51-3f2d5c8e4b10" {
		t.Fatalf("ID()=%q, want trimmed uuid", seq.ID())
	}
	for _, spec := range []ProcessRunSpec{{ID: "RUN-42"}, {ID: "not-a-uuid-at-all"}} {
		if _, err := NewProcessRun(spec); !errors.Is(err, ErrConstruction) {
			t.Fatalf("NewProcessRun(ID=%q) err=%v, want ErrConstruction", spec.ID, err)
		}
	}
}

func TestCompleteAt(t *testing.T) {
	tests := []struct {
		name   string
		status ExecutionStatus
		end    time.Time
	}{
		{name: "non-terminal status", status: StatusNotCompleted, end: at(time.Minute)},
		{name: "unknown status", status: "DONE", end: at(time.Minute)},
		{name: "end before start", status: StatusPass, end: at(-time.Second)},
		{name: "zero end", status: StatusPass},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := Must(NewSequenceRun(SequenceRunSpec{Name: "seq", StartTime: t0}))
			if err := seq.CompleteAt(tt.status, tt.end); !errors.Is(err, ErrInvalidState) {
				t.Fatalf("CompleteAt() err=%v, want ErrInvalidState", err)
			}
			if seq.State() != RunStateOpen || seq.Status() != StatusNotCompleted {
				t.Fatalf("failed CompleteAt() mutated run: state=%s status=%s", seq.State(), seq.Status())
			}
		})
	}
}

func TestCompleteAt_OnlyOnce(t *testing.T) {
	op := Must(NewOperationRun(OperationRunSpec{Name: "op", StartTime: t0}))
	if err := op.CompleteAt(StatusFail, at(time.Minute)); err != nil {
		t.Fatalf("CompleteAt() err=%v", err)
	}
	for i := 0; i < 3; i++ {
		if err := op.CompleteAt(StatusPass, at(2*time.Minute)); !errors.Is(err, ErrInvalidState) {
			t.Fatalf("repeat %d CompleteAt() err=%v, want ErrInvalidState", i, err)
		}
		if err := op.Complete(StatusPass); !errors.Is(err, ErrInvalidState) {
			t.Fatalf("repeat %d Complete() err=%v, want ErrInvalidState", i, err)
		}
	}
	end, _ := op.EndTime()
	if op.Status() != StatusFail || !end.Equal(at(time.Minute)) {
		t.Fatalf("repeat completion changed run: status=%s end=%v", op.Status(), end)
	}
}

func TestComplete_UsesWallClock(t *testing.T) {
	step := Must(NewStepRun(StepRunSpec{StartTime: t0}))
	before := time.Now()
	if err := step.Complete(StatusAborted); err != nil {
		t.Fatalf("Complete() err=%v", err)
	}
	end, ok := step.EndTime()
	if !ok || end.Before(before) {
		t.Fatalf("EndTime()=%v,%v want wall clock", end, ok)
	}
}

func TestAttach_SingleParent(t *testing.T) {
	step := Must(NewStepRun(StepRunSpec{Name: "shared", StartTime: t0}))
	first := Must(NewSequenceRun(SequenceRunSpec{StartTime: t0}))
	second := Must(NewSequenceRun(SequenceRunSpec{StartTime: t0}))
	if err := first.AttachStepRun(step); err != nil {
		t.Fatalf("AttachStepRun() err=%v", err)
	}
	if err := second.AttachStepRun(step); !errors.Is(err, ErrConstruction) {
		t.Fatalf("second AttachStepRun() err=%v, want ErrConstruction", err)
	}
	if err := first.AttachStepRun(nil); !errors.Is(err, ErrConstruction) {
		t.Fatalf("AttachStepRun(nil) err=%v, want ErrConstruction", err)
	}
	if got := len(second.StepRuns()); got != 0 {
		t.Fatalf("second sequence holds %d steps", got)
	}
}

func TestEagerConstruction_RollsBackClaims(t *testing.T) {
	step := Must(NewStepRun(StepRunSpec{StartTime: t0}))
	if _, err := NewSequenceRun(SequenceRunSpec{StartTime: t0, Steps: []*StepRun{step, step}}); !errors.Is(err, ErrConstruction) {
		t.Fatalf("NewSequenceRun(duplicate) err=%v, want ErrConstruction", err)
	}
	seq, err := NewSequenceRun(SequenceRunSpec{StartTime: t0, Steps: []*StepRun{step}})
	if err != nil {
		t.Fatalf("NewSequenceRun() after rollback err=%v", err)
	}

	op := Must(NewOperationRun(OperationRunSpec{StartTime: t0, Sequences: []*SequenceRun{seq}}))
	if _, err := NewProcessRun(ProcessRunSpec{StartTime: t0, Operations: []*OperationRun{op, nil}}); err == nil {
		t.Fatalf("NewProcessRun(nil op) err=nil")
	}
	if _, err := NewProcessRun(ProcessRunSpec{StartTime: t0, Operations: []*OperationRun{op}}); err != nil {
		t.Fatalf("NewProcessRun() after rollback err=%v", err)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	seq := Must(NewSequenceRun(SequenceRunSpec{StartTime: t0}))
	Must(seq.AddStepRun(StepRunSpec{Name: "a", StartTime: t0}))
	steps := seq.StepRuns()
	steps[0] = nil
	if seq.StepRuns()[0] == nil {
		t.Fatalf("StepRuns() exposes internal slice")
	}
	if err := seq.AddCharacteristic(Characteristic{FullName: "Fixture", Value: "F1"}); err != nil {
		t.Fatalf("AddCharacteristic() err=%v", err)
	}
	chars := seq.Characteristics()
	chars[0].Value = "changed"
	if seq.Characteristics()[0].Value != "F1" {
		t.Fatalf("Characteristics() exposes internal slice")
	}
}
