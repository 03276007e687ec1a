// Package datawarehouse builds the record of one manufacturing test execution
// and serializes it to a Proligent Datawarehouse XML document.
//
// Hierarchy:
//   - Warehouse -> ProductUnit + ProcessRun
//   - ProcessRun -> OperationRun -> SequenceRun -> StepRun -> Measure -> Limit
//
// Runs are authored either eagerly (children passed in the *Spec literal) or
// incrementally (Add*/Attach* on the parent while the physical test executes).
// Both styles go through the same attach operations and produce the same
// document.
//
// States:
//   - open (status NOT_COMPLETED, no end time) -> completed (terminal status, end time)
//
// Completion is explicit and one-way. It never cascades: rolling child outcomes
// up into the parent status is the caller's job. Warehouse.Lint reports parents
// completed over open children.
//
// Default timestamps (start times, generation time) are wall-clock readings
// taken at construction. They exist for experimentation and are not suitable
// for production records; pass real start times.
//
// Nothing in this package is safe for concurrent use. A Warehouse and its tree
// belong to one goroutine for their whole lifetime.
package datawarehouse
