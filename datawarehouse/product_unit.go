package datawarehouse

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// ProductUnitSpec carries the attributes of a ProductUnit. Zero times are
// omitted from the document.
type ProductUnitSpec struct {
	Identifier        string
	FullName          string
	Manufacturer      string
	CreationTime      time.Time
	ManufacturingTime time.Time
	Scrapped          bool
	ScrapTime         time.Time
	Characteristics   []Characteristic
	Documents         []Document
}

// ProductUnit identifies the device under test. It is immutable once built.
type ProductUnit struct {
	identifier        string
	fullName          string
	manufacturer      string
	creationTime      time.Time
	manufacturingTime time.Time
	scrapped          bool
	scrapTime         time.Time
	characteristics   []Characteristic
	documents         []Document
	attached          bool
}

func NewProductUnit(spec ProductUnitSpec) (*ProductUnit, error) {
	if strings.TrimSpace(spec.Identifier) == "" {
		return nil, fmt.Errorf("%w: product unit identifier is required", ErrConstruction)
	}
	if strings.TrimSpace(spec.FullName) == "" {
		return nil, fmt.Errorf("%w: product unit full name is required", ErrConstruction)
	}
	if !spec.ScrapTime.IsZero() && !spec.Scrapped {
		return nil, fmt.Errorf("%w: product unit %q has a scrap time but is not scrapped", ErrConstruction, spec.Identifier)
	}
	if err := validateAttachments(spec.Characteristics, spec.Documents); err != nil {
		return nil, err
	}
	return &ProductUnit{
		identifier:        spec.Identifier,
		fullName:          spec.FullName,
		manufacturer:      spec.Manufacturer,
		creationTime:      spec.CreationTime,
		manufacturingTime: spec.ManufacturingTime,
		scrapped:          spec.Scrapped,
		scrapTime:         spec.ScrapTime,
		characteristics:   slices.Clone(spec.Characteristics),
		documents:         slices.Clone(spec.Documents),
	}, nil
}

func (p *ProductUnit) Identifier() string                { return p.identifier }
func (p *ProductUnit) FullName() string                  { return p.fullName }
func (p *ProductUnit) Manufacturer() string              { return p.manufacturer }
func (p *ProductUnit) CreationTime() time.Time           { return p.creationTime }
func (p *ProductUnit) ManufacturingTime() time.Time      { return p.manufacturingTime }
func (p *ProductUnit) Scrapped() bool                    { return p.scrapped }
func (p *ProductUnit) ScrapTime() time.Time              { return p.scrapTime }
func (p *ProductUnit) Characteristics() []Characteristic { return slices.Clone(p.characteristics) }
func (p *ProductUnit) Documents() []Document             { return slices.Clone(p.documents) }
