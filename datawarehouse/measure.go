package datawarehouse

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// MeasureKind is the schema's type tag for a measured value.
type MeasureKind string

const (
	MeasureString   MeasureKind = "STRING"
	MeasureBool     MeasureKind = "BOOL"
	MeasureInteger  MeasureKind = "INTEGER"
	MeasureReal     MeasureKind = "REAL"
	MeasureDateTime MeasureKind = "DATETIME"
)

// MeasureSpec carries the attributes of a Measure. Value may be a string, a
// bool, any integer or float type, or a time.Time; the Go type selects the
// MeasureKind. A zero Time defaults to the wall clock at construction.
type MeasureSpec struct {
	ID       string
	Value    any
	Time     time.Time
	Status   ExecutionStatus
	Limit    *Limit
	Unit     string
	Symbol   string
	Comments string
}

// Measure is a single recorded observation. It is immutable once built.
type Measure struct {
	id       string
	value    any
	kind     MeasureKind
	time     time.Time
	status   ExecutionStatus
	limit    *Limit
	unit     string
	symbol   string
	comments string
	attached bool
}

func NewMeasure(spec MeasureSpec) (*Measure, error) {
	kind, value, err := classifyValue(spec.Value)
	if err != nil {
		return nil, err
	}
	status, err := normalizeStatus(spec.Status)
	if err != nil {
		return nil, err
	}
	id, err := normalizeID(spec.ID)
	if err != nil {
		return nil, err
	}
	m := &Measure{
		id:       id,
		value:    value,
		kind:     kind,
		time:     spec.Time,
		status:   status,
		unit:     spec.Unit,
		symbol:   spec.Symbol,
		comments: spec.Comments,
	}
	if m.time.IsZero() {
		m.time = time.Now()
	}
	if spec.Limit != nil {
		if spec.Limit.isZero() {
			return nil, fmt.Errorf("%w: limit must be built with NewLimit", ErrConstruction)
		}
		limit := *spec.Limit
		m.limit = &limit
	}
	return m, nil
}

func classifyValue(v any) (MeasureKind, any, error) {
	switch value := v.(type) {
	case string:
		return MeasureString, value, nil
	case bool:
		return MeasureBool, value, nil
	case int:
		return MeasureInteger, int64(value), nil
	case int8:
		return MeasureInteger, int64(value), nil
	case int16:
		return MeasureInteger, int64(value), nil
	case int32:
		return MeasureInteger, int64(value), nil
	case int64:
		return MeasureInteger, value, nil
	case uint:
		return MeasureInteger, uint64(value), nil
	case uint8:
		return MeasureInteger, uint64(value), nil
	case uint16:
		return MeasureInteger, uint64(value), nil
	case uint32:
		return MeasureInteger, uint64(value), nil
	case uint64:
		return MeasureInteger, value, nil
	case float32:
		return classifyReal(float64(value))
	case float64:
		return classifyReal(value)
	case time.Time:
		if value.IsZero() {
			return "", nil, fmt.Errorf("%w: measure date-time value is zero", ErrConstruction)
		}
		return MeasureDateTime, value, nil
	case nil:
		return "", nil, fmt.Errorf("%w: measure value is required", ErrConstruction)
	default:
		return "", nil, fmt.Errorf("%w: incompatible measure value type %T", ErrConstruction, v)
	}
}

func classifyReal(v float64) (MeasureKind, any, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", nil, fmt.Errorf("%w: measure value must be finite", ErrConstruction)
	}
	return MeasureReal, v, nil
}

func (m *Measure) ID() string              { return m.id }
func (m *Measure) Value() any              { return m.value }
func (m *Measure) Kind() MeasureKind       { return m.kind }
func (m *Measure) Time() time.Time         { return m.time }
func (m *Measure) Status() ExecutionStatus { return m.status }
func (m *Measure) Unit() string            { return m.unit }
func (m *Measure) Symbol() string          { return m.symbol }
func (m *Measure) Comments() string        { return m.comments }

// Limit returns the measure's limit, if any.
func (m *Measure) Limit() (Limit, bool) {
	if m.limit == nil {
		return Limit{}, false
	}
	return *m.limit, true
}

func (m *Measure) renderValue(loc *time.Location) (string, error) {
	switch value := m.value.(type) {
	case string:
		return value, nil
	case bool:
		return strconv.FormatBool(value), nil
	case int64:
		return strconv.FormatInt(value, 10), nil
	case uint64:
		return strconv.FormatUint(value, 10), nil
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), nil
	case time.Time:
		return FormatTimestamp(value, loc)
	default:
		return "", fmt.Errorf("%w: unsupported measure value %T", ErrFormat, m.value)
	}
}
