package datawarehouse

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
)

// WarehouseSpec carries the content of a Warehouse built eagerly. Leave it
// empty to build incrementally. A zero GenerationTime defaults to the wall
// clock at construction.
type WarehouseSpec struct {
	ProductUnit    *ProductUnit
	ProcessRun     *ProcessRun
	GenerationTime time.Time
}

// Warehouse is the root of a document: one product unit, one process run, and
// the data source fingerprint generated when the warehouse is created.
type Warehouse struct {
	productUnit    *ProductUnit
	processRun     *ProcessRun
	generationTime time.Time
	fingerprint    string
	cfg            Config
	logger         *slog.Logger
	nextID         IDGenerator
}

type Option func(*Warehouse)

// WithConfig overrides the process-wide configuration for one warehouse.
func WithConfig(cfg Config) Option {
	return func(w *Warehouse) {
		w.cfg = cfg
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Warehouse) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithIDGenerator replaces the UUID source for the fingerprint, generated
// ids, and generated file names. Tests use it for reproducible documents.
func WithIDGenerator(gen IDGenerator) Option {
	return func(w *Warehouse) {
		if gen != nil {
			w.nextID = gen
		}
	}
}

func New(spec WarehouseSpec, opts ...Option) (*Warehouse, error) {
	w := &Warehouse{
		generationTime: spec.GenerationTime,
		cfg:            CurrentConfig(),
		logger:         slog.New(slog.DiscardHandler),
		nextID:         NewFingerprint,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	if w.generationTime.IsZero() {
		w.generationTime = time.Now()
	}
	w.fingerprint = w.nextID()
	if spec.ProductUnit != nil {
		if err := w.SetProductUnit(spec.ProductUnit); err != nil {
			return nil, err
		}
	}
	if spec.ProcessRun != nil {
		if _, err := w.SetProcessRun(spec.ProcessRun); err != nil {
			if w.productUnit != nil {
				w.productUnit.attached = false
			}
			return nil, err
		}
	}
	return w, nil
}

func (w *Warehouse) SetProductUnit(p *ProductUnit) error {
	if p == nil {
		return fmt.Errorf("%w: product unit is nil", ErrConstruction)
	}
	if w.productUnit != nil {
		return fmt.Errorf("%w: warehouse already has a product unit", ErrConstruction)
	}
	if p.attached {
		return fmt.Errorf("%w: product unit %q belongs to another warehouse", ErrConstruction, p.identifier)
	}
	p.attached = true
	w.productUnit = p
	return nil
}

// SetProcessRun attaches p as the top process run and returns it.
func (w *Warehouse) SetProcessRun(p *ProcessRun) (*ProcessRun, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: process run is nil", ErrConstruction)
	}
	if w.processRun != nil {
		return nil, fmt.Errorf("%w: warehouse already has a process run", ErrConstruction)
	}
	if err := p.claim("process run"); err != nil {
		return nil, err
	}
	w.processRun = p
	return p, nil
}

// StartProcessRun builds a ProcessRun from spec and attaches it.
func (w *Warehouse) StartProcessRun(spec ProcessRunSpec) (*ProcessRun, error) {
	p, err := NewProcessRun(spec)
	if err != nil {
		return nil, err
	}
	return w.SetProcessRun(p)
}

func (w *Warehouse) ProductUnit() *ProductUnit { return w.productUnit }
func (w *Warehouse) ProcessRun() *ProcessRun   { return w.processRun }
func (w *Warehouse) Fingerprint() string       { return w.fingerprint }
func (w *Warehouse) GenerationTime() time.Time { return w.generationTime }
func (w *Warehouse) Config() Config            { return w.cfg }

func (w *Warehouse) checkRelationships() error {
	if w.productUnit == nil {
		return fmt.Errorf("%w: product unit is required", ErrSchemaViolation)
	}
	if w.processRun == nil {
		return fmt.Errorf("%w: process run is required", ErrSchemaViolation)
	}
	if strings.TrimSpace(w.processRun.productUnitIdentifier) == "" {
		return fmt.Errorf("%w: process run product unit identifier is required", ErrSchemaViolation)
	}
	if strings.TrimSpace(w.processRun.productFullName) == "" {
		return fmt.Errorf("%w: process run product full name is required", ErrSchemaViolation)
	}
	return nil
}

func (w *Warehouse) build() (datawarehousePayload, error) {
	if err := w.checkRelationships(); err != nil {
		return datawarehousePayload{}, err
	}
	loc, err := w.cfg.Location()
	if err != nil {
		return datawarehousePayload{}, err
	}
	enc := &encoder{loc: loc, nextID: w.nextID}
	generated, err := enc.timestamp(w.generationTime)
	if err != nil {
		return datawarehousePayload{}, err
	}
	unit, err := enc.productUnit(w.productUnit)
	if err != nil {
		return datawarehousePayload{}, err
	}
	process, err := enc.processRun(w.processRun)
	if err != nil {
		return datawarehousePayload{}, err
	}
	return datawarehousePayload{
		GenerationTime:        generated,
		DataSourceFingerprint: w.fingerprint,
		ProductUnits:          []productUnitPayload{unit},
		TopProcessRuns:        []processRunPayload{process},
	}, nil
}

// Marshal builds the document. Missing relationships fail with
// ErrSchemaViolation, unrenderable timestamps with ErrFormat.
func (w *Warehouse) Marshal() ([]byte, error) {
	payload, err := w.build()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return nil, fmt.Errorf("%w: encode document: %w", ErrFormat, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("%w: encode document: %w", ErrFormat, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// WriteTo writes the document to out.
func (w *Warehouse) WriteTo(out io.Writer) (int64, error) {
	data, err := w.Marshal()
	if err != nil {
		return 0, err
	}
	n, err := out.Write(data)
	if err != nil {
		return int64(n), fmt.Errorf("%w: %w", ErrIO, err)
	}
	return int64(n), nil
}

// Save writes the document to path and returns the path written. An empty
// path resolves to Config.DestinationDir with a generated
// Proligent_<uuid>.xml name. The document is fully built before anything
// touches the disk, and a failed write leaves no file behind.
func (w *Warehouse) Save(path string) (string, error) {
	data, err := w.Marshal()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(path) == "" {
		path = filepath.Join(w.cfg.DestinationDir, "Proligent_"+w.nextID()+".xml")
	}
	if err := writeFileAtomic(path, data); err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	w.logger.Info("datawarehouse written",
		"path", path,
		"fingerprint", w.fingerprint,
		"bytes", len(data),
		"sha256", hex.EncodeToString(sum[:]),
	)
	for _, finding := range w.Lint() {
		w.logger.Warn("datawarehouse lint", "path", finding.Path, "finding", finding.Message)
	}
	return path, nil
}
