package main

import (
	"time"

	"github.com/proligent-labs/proligent-go/datawarehouse"
)

const (
	sampleSerial  = "DutSerialNumber"
	sampleProduct = "Product/Sample"
	sampleStation = "Station/Sample"
)

// buildEager describes the sample run as one nested literal, completed runs
// only.
func buildEager(ts time.Time, opts ...datawarehouse.Option) (*datawarehouse.Warehouse, error) {
	limit, err := datawarehouse.RangeLimit(datawarehouse.LimitInclusiveRange, 10, 25)
	if err != nil {
		return nil, err
	}
	measure, err := datawarehouse.NewMeasure(datawarehouse.MeasureSpec{
		Value:  15,
		Time:   ts,
		Status: datawarehouse.StatusPass,
		Limit:  &limit,
	})
	if err != nil {
		return nil, err
	}
	step, err := datawarehouse.NewStepRun(datawarehouse.StepRunSpec{
		Name: "Step1", Status: datawarehouse.StatusPass, StartTime: ts, EndTime: ts, Measure: measure,
	})
	if err != nil {
		return nil, err
	}
	sequence, err := datawarehouse.NewSequenceRun(datawarehouse.SequenceRunSpec{
		Name: "Sequence1", Status: datawarehouse.StatusPass, StartTime: ts, EndTime: ts,
		Steps: []*datawarehouse.StepRun{step},
	})
	if err != nil {
		return nil, err
	}
	operation, err := datawarehouse.NewOperationRun(datawarehouse.OperationRunSpec{
		Name: "Operation1", Station: sampleStation, Status: datawarehouse.StatusPass, StartTime: ts, EndTime: ts,
		Sequences: []*datawarehouse.SequenceRun{sequence},
	})
	if err != nil {
		return nil, err
	}
	process, err := datawarehouse.NewProcessRun(datawarehouse.ProcessRunSpec{
		Name: "Process/Sample", ProcessMode: "PROD",
		ProductUnitIdentifier: sampleSerial, ProductFullName: sampleProduct,
		Status: datawarehouse.StatusPass, StartTime: ts, EndTime: ts,
		Operations: []*datawarehouse.OperationRun{operation},
	})
	if err != nil {
		return nil, err
	}
	unit, err := sampleUnit()
	if err != nil {
		return nil, err
	}
	return datawarehouse.New(datawarehouse.WarehouseSpec{ProductUnit: unit, ProcessRun: process, GenerationTime: ts}, opts...)
}

// buildIncremental records the same run step by step, completing each run
// once its children are done.
func buildIncremental(ts time.Time, opts ...datawarehouse.Option) (*datawarehouse.Warehouse, error) {
	w, err := datawarehouse.New(datawarehouse.WarehouseSpec{GenerationTime: ts}, opts...)
	if err != nil {
		return nil, err
	}
	unit, err := sampleUnit()
	if err != nil {
		return nil, err
	}
	if err := w.SetProductUnit(unit); err != nil {
		return nil, err
	}
	process, err := w.StartProcessRun(datawarehouse.ProcessRunSpec{
		Name: "Process/Sample", ProcessMode: "PROD",
		ProductUnitIdentifier: sampleSerial, ProductFullName: sampleProduct,
		StartTime: ts,
	})
	if err != nil {
		return nil, err
	}
	operation, err := process.AddOperationRun(datawarehouse.OperationRunSpec{Name: "Operation1", Station: sampleStation, StartTime: ts})
	if err != nil {
		return nil, err
	}
	sequence, err := operation.AddSequenceRun(datawarehouse.SequenceRunSpec{Name: "Sequence1", StartTime: ts})
	if err != nil {
		return nil, err
	}
	step, err := sequence.AddStepRun(datawarehouse.StepRunSpec{Name: "Step1", StartTime: ts})
	if err != nil {
		return nil, err
	}
	limit, err := datawarehouse.RangeLimit(datawarehouse.LimitInclusiveRange, 10, 25)
	if err != nil {
		return nil, err
	}
	if _, err := step.RecordMeasure(datawarehouse.MeasureSpec{Value: 15, Time: ts, Status: datawarehouse.StatusPass, Limit: &limit}); err != nil {
		return nil, err
	}
	for _, r := range []interface {
		CompleteAt(datawarehouse.ExecutionStatus, time.Time) error
	}{step, sequence, operation, process} {
		if err := r.CompleteAt(datawarehouse.StatusPass, ts); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func sampleUnit() (*datawarehouse.ProductUnit, error) {
	return datawarehouse.NewProductUnit(datawarehouse.ProductUnitSpec{
		Identifier:   sampleSerial,
		FullName:     sampleProduct,
		Manufacturer: "Averna",
	})
}
