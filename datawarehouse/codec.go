package datawarehouse

import (
	"encoding/xml"
	"strconv"
	"time"
)

// Namespace is the default XML namespace of Datawarehouse documents.
const Namespace = "http://www.averna.com/products/proligent/analytics/DIT/6.85"

type datawarehousePayload struct {
	XMLName               xml.Name             `xml:"http://www.averna.com/products/proligent/analytics/DIT/6.85 Proligent.Datawarehouse"`
	GenerationTime        string               `xml:"GenerationTime,attr"`
	DataSourceFingerprint string               `xml:"DataSourceFingerprint,attr"`
	ProductUnits          []productUnitPayload `xml:"ProductUnit"`
	TopProcessRuns        []processRunPayload  `xml:"TopProcessRun"`
}

type productUnitPayload struct {
	ProductUnitIdentifier string                  `xml:"ProductUnitIdentifier,attr"`
	ProductFullName       string                  `xml:"ProductFullName,attr"`
	ByManufacturer        string                  `xml:"ByManufacturer,attr,omitempty"`
	CreationTime          string                  `xml:"CreationTime,attr,omitempty"`
	ManufacturingTime     string                  `xml:"ManufacturingTime,attr,omitempty"`
	Scrapped              string                  `xml:"Scrapped,attr,omitempty"`
	ScrappedTime          string                  `xml:"ScrappedTime,attr,omitempty"`
	Characteristics       []characteristicPayload `xml:"Characteristic"`
	Documents             []documentPayload       `xml:"Document"`
}

type processRunPayload struct {
	ProcessRunID          string                `xml:"ProcessRunId,attr"`
	ProductUnitIdentifier string                `xml:"ProductUnitIdentifier,attr"`
	ProductFullName       string                `xml:"ProductFullName,attr"`
	ProcessFullName       string                `xml:"ProcessFullName,attr,omitempty"`
	ProcessVersion        string                `xml:"ProcessVersion,attr,omitempty"`
	ProcessMode           string                `xml:"ProcessMode,attr,omitempty"`
	ProcessRunStartTime   string                `xml:"ProcessRunStartTime,attr"`
	ProcessRunEndTime     string                `xml:"ProcessRunEndTime,attr,omitempty"`
	ProcessRunStatus      string                `xml:"ProcessRunStatus,attr"`
	OperationRuns         []operationRunPayload `xml:"OperationRun"`
}

type operationRunPayload struct {
	OperationRunID        string                  `xml:"OperationRunId,attr"`
	OperationName         string                  `xml:"OperationName,attr,omitempty"`
	ProcessFullName       string                  `xml:"ProcessFullName,attr,omitempty"`
	StationFullName       string                  `xml:"StationFullName,attr,omitempty"`
	User                  string                  `xml:"User,attr,omitempty"`
	OperationRunStartTime string                  `xml:"OperationRunStartTime,attr"`
	OperationRunEndTime   string                  `xml:"OperationRunEndTime,attr,omitempty"`
	OperationStatus       string                  `xml:"OperationStatus,attr"`
	Characteristics       []characteristicPayload `xml:"Characteristic"`
	Documents             []documentPayload       `xml:"Document"`
	SequenceRuns          []sequenceRunPayload    `xml:"SequenceRun"`
}

type sequenceRunPayload struct {
	SequenceRunID           string                  `xml:"SequenceRunId,attr"`
	SequenceFullName        string                  `xml:"SequenceFullName,attr,omitempty"`
	SequenceVersion         string                  `xml:"SequenceVersion,attr,omitempty"`
	StationFullName         string                  `xml:"StationFullName,attr,omitempty"`
	User                    string                  `xml:"User,attr,omitempty"`
	StartDate               string                  `xml:"StartDate,attr"`
	EndDate                 string                  `xml:"EndDate,attr,omitempty"`
	SequenceExecutionStatus string                  `xml:"SequenceExecutionStatus,attr"`
	Characteristics         []characteristicPayload `xml:"Characteristic"`
	Documents               []documentPayload       `xml:"Document"`
	StepRuns                []stepRunPayload        `xml:"StepRun"`
}

type stepRunPayload struct {
	StepRunID           string                  `xml:"StepRunId,attr"`
	StepName            string                  `xml:"StepName,attr,omitempty"`
	StartDate           string                  `xml:"StartDate,attr"`
	EndDate             string                  `xml:"EndDate,attr,omitempty"`
	StepExecutionStatus string                  `xml:"StepExecutionStatus,attr"`
	Characteristics     []characteristicPayload `xml:"Characteristic"`
	Documents           []documentPayload       `xml:"Document"`
	Measure             *measurePayload         `xml:"Measure"`
}

type measurePayload struct {
	MeasureID              string        `xml:"MeasureId,attr"`
	MeasureTime            string        `xml:"MeasureTime,attr"`
	MeasureExecutionStatus string        `xml:"MeasureExecutionStatus,attr"`
	Comments               string        `xml:"Comments,attr,omitempty"`
	Unit                   string        `xml:"Unit,attr,omitempty"`
	Symbol                 string        `xml:"Symbol,attr,omitempty"`
	Value                  valuePayload  `xml:"Value"`
	Limit                  *limitPayload `xml:"Limit"`
}

type valuePayload struct {
	Type string `xml:"Type,attr"`
	Text string `xml:",chardata"`
}

type limitPayload struct {
	LimitExpression string `xml:"LimitExpression,attr"`
}

type characteristicPayload struct {
	FullName string `xml:"FullName,attr"`
	Value    string `xml:"Value,attr,omitempty"`
}

type documentPayload struct {
	Identifier  string `xml:"Identifier,attr"`
	FileName    string `xml:"FileName,attr"`
	Name        string `xml:"Name,attr,omitempty"`
	Description string `xml:"Description,attr,omitempty"`
}

// encoder turns the entity tree into payloads. It assigns missing ids in
// document order and renders every timestamp in one location.
type encoder struct {
	loc    *time.Location
	nextID IDGenerator
}

func (e *encoder) timestamp(t time.Time) (string, error) {
	return FormatTimestamp(t, e.loc)
}

func (e *encoder) optionalTimestamp(t time.Time) (string, error) {
	if t.IsZero() {
		return "", nil
	}
	return e.timestamp(t)
}

func (e *encoder) productUnit(p *ProductUnit) (productUnitPayload, error) {
	out := productUnitPayload{
		ProductUnitIdentifier: p.identifier,
		ProductFullName:       p.fullName,
		ByManufacturer:        p.manufacturer,
	}
	var err error
	if out.CreationTime, err = e.optionalTimestamp(p.creationTime); err != nil {
		return productUnitPayload{}, err
	}
	if out.ManufacturingTime, err = e.optionalTimestamp(p.manufacturingTime); err != nil {
		return productUnitPayload{}, err
	}
	if p.scrapped {
		out.Scrapped = strconv.FormatBool(true)
	}
	if out.ScrappedTime, err = e.optionalTimestamp(p.scrapTime); err != nil {
		return productUnitPayload{}, err
	}
	out.Characteristics = characteristicPayloads(p.characteristics)
	out.Documents = e.documents(p.documents)
	return out, nil
}

// runTimes renders the start time and, for completed runs, the end time.
func (e *encoder) runTimes(r *run) (start, end string, err error) {
	if start, err = e.timestamp(r.start); err != nil {
		return "", "", err
	}
	if r.State() == RunStateCompleted {
		if end, err = e.timestamp(r.end); err != nil {
			return "", "", err
		}
	}
	return start, end, nil
}

func (e *encoder) processRun(p *ProcessRun) (processRunPayload, error) {
	out := processRunPayload{
		ProcessRunID:          p.ensureID(e.nextID),
		ProductUnitIdentifier: p.productUnitIdentifier,
		ProductFullName:       p.productFullName,
		ProcessFullName:       p.name,
		ProcessVersion:        p.version,
		ProcessMode:           p.processMode,
		ProcessRunStatus:      p.status.String(),
	}
	var err error
	if out.ProcessRunStartTime, out.ProcessRunEndTime, err = e.runTimes(&p.run); err != nil {
		return processRunPayload{}, err
	}
	for _, op := range p.operations {
		child, err := e.operationRun(op, p.name)
		if err != nil {
			return processRunPayload{}, err
		}
		out.OperationRuns = append(out.OperationRuns, child)
	}
	return out, nil
}

func (e *encoder) operationRun(o *OperationRun, processName string) (operationRunPayload, error) {
	out := operationRunPayload{
		OperationRunID:  o.ensureID(e.nextID),
		OperationName:   o.name,
		ProcessFullName: firstNonEmpty(o.processName, processName),
		StationFullName: o.station,
		User:            o.user,
		OperationStatus: o.status.String(),
	}
	var err error
	if out.OperationRunStartTime, out.OperationRunEndTime, err = e.runTimes(&o.run); err != nil {
		return operationRunPayload{}, err
	}
	out.Characteristics = characteristicPayloads(o.characteristics)
	out.Documents = e.documents(o.documents)
	for _, seq := range o.sequences {
		child, err := e.sequenceRun(seq, o.station)
		if err != nil {
			return operationRunPayload{}, err
		}
		out.SequenceRuns = append(out.SequenceRuns, child)
	}
	return out, nil
}

func (e *encoder) sequenceRun(s *SequenceRun, station string) (sequenceRunPayload, error) {
	out := sequenceRunPayload{
		SequenceRunID:           s.ensureID(e.nextID),
		SequenceFullName:        s.name,
		SequenceVersion:         s.version,
		StationFullName:         firstNonEmpty(s.station, station),
		User:                    s.user,
		SequenceExecutionStatus: s.status.String(),
	}
	var err error
	if out.StartDate, out.EndDate, err = e.runTimes(&s.run); err != nil {
		return sequenceRunPayload{}, err
	}
	out.Characteristics = characteristicPayloads(s.characteristics)
	out.Documents = e.documents(s.documents)
	for _, step := range s.steps {
		child, err := e.stepRun(step)
		if err != nil {
			return sequenceRunPayload{}, err
		}
		out.StepRuns = append(out.StepRuns, child)
	}
	return out, nil
}

func (e *encoder) stepRun(s *StepRun) (stepRunPayload, error) {
	out := stepRunPayload{
		StepRunID:           s.ensureID(e.nextID),
		StepName:            s.name,
		StepExecutionStatus: s.status.String(),
	}
	var err error
	if out.StartDate, out.EndDate, err = e.runTimes(&s.run); err != nil {
		return stepRunPayload{}, err
	}
	out.Characteristics = characteristicPayloads(s.characteristics)
	out.Documents = e.documents(s.documents)
	if s.measure != nil {
		m, err := e.measure(s.measure)
		if err != nil {
			return stepRunPayload{}, err
		}
		out.Measure = &m
	}
	return out, nil
}

func (e *encoder) measure(m *Measure) (measurePayload, error) {
	if m.id == "" {
		m.id = e.nextID()
	}
	out := measurePayload{
		MeasureID:              m.id,
		MeasureExecutionStatus: m.status.String(),
		Comments:               m.comments,
		Unit:                   m.unit,
		Symbol:                 m.symbol,
		Value:                  valuePayload{Type: string(m.kind)},
	}
	var err error
	if out.MeasureTime, err = e.timestamp(m.time); err != nil {
		return measurePayload{}, err
	}
	if out.Value.Text, err = m.renderValue(e.loc); err != nil {
		return measurePayload{}, err
	}
	if m.limit != nil {
		out.Limit = &limitPayload{LimitExpression: m.limit.String()}
	}
	return out, nil
}

// documents assigns identifiers in place so repeated builds agree.
func (e *encoder) documents(docs []Document) []documentPayload {
	if len(docs) == 0 {
		return nil
	}
	out := make([]documentPayload, 0, len(docs))
	for i := range docs {
		if docs[i].Identifier == "" {
			docs[i].Identifier = e.nextID()
		}
		out = append(out, documentPayload{
			Identifier:  docs[i].Identifier,
			FileName:    docs[i].FileName,
			Name:        docs[i].Name,
			Description: docs[i].Description,
		})
	}
	return out
}

func characteristicPayloads(chars []Characteristic) []characteristicPayload {
	if len(chars) == 0 {
		return nil
	}
	out := make([]characteristicPayload, 0, len(chars))
	for _, c := range chars {
		out = append(out, characteristicPayload{FullName: c.FullName, Value: c.Value})
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
