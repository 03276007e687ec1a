package datawarehouse

import (
	"fmt"
	"strings"
)

// Characteristic is a free-form name/value pair attached to a product unit or
// a run.
type Characteristic struct {
	FullName string
	Value    string
}

func (c Characteristic) validate() error {
	if strings.TrimSpace(c.FullName) == "" {
		return fmt.Errorf("%w: characteristic full name is required", ErrConstruction)
	}
	return nil
}

// Document references a file attached to a product unit or a run. An empty
// Identifier is generated when the document is first serialized.
type Document struct {
	Identifier  string
	FileName    string
	Name        string
	Description string
}

func (d Document) validate() error {
	if strings.TrimSpace(d.FileName) == "" {
		return fmt.Errorf("%w: document file name is required", ErrConstruction)
	}
	return nil
}

func validateAttachments(characteristics []Characteristic, documents []Document) error {
	for _, c := range characteristics {
		if err := c.validate(); err != nil {
			return err
		}
	}
	for _, d := range documents {
		if err := d.validate(); err != nil {
			return err
		}
	}
	return nil
}
