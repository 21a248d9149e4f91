package snapshot

import (
	"github.com/agentstation/utc"
)

// FieldType is the value type of a dynamic field definition.
type FieldType string

const (
	// FieldTypeText holds free-form text.
	FieldTypeText FieldType = "text"
	// FieldTypeNumber holds a numeric value.
	FieldTypeNumber FieldType = "number"
	// FieldTypeDate holds an ISO date.
	FieldTypeDate FieldType = "date"
	// FieldTypeSelect holds one value from a fixed option list.
	FieldTypeSelect FieldType = "select"
	// FieldTypeReference holds the ID of a record in another collection.
	FieldTypeReference FieldType = "reference"
)

// FieldDef declares one field of a data config group schema.
type FieldDef struct {
	Key       string    `json:"key" yaml:"key"`     // Attribute key in DynamicRecord.Attributes
	Label     string    `json:"label" yaml:"label"` // Display label
	Type      FieldType `json:"type" yaml:"type"`
	Options   []string  `json:"options,omitempty" yaml:"options,omitempty"`     // Allowed values for select fields
	RefTarget string    `json:"refTarget,omitempty" yaml:"refTarget,omitempty"` // Target collection for reference fields
}

// DataConfigGroup is the schema of one dynamic record collection: an
// ordered list of field definitions.
type DataConfigGroup struct {
	ID           string     `json:"id" yaml:"id"`
	Name         string     `json:"name" yaml:"name"`
	AcademicYear string     `json:"academicYear,omitempty" yaml:"academicYear,omitempty"`
	Fields       []FieldDef `json:"fields" yaml:"fields"`
}

// FieldKeys returns the declared attribute keys in schema order.
func (g *DataConfigGroup) FieldKeys() []string {
	keys := make([]string, len(g.Fields))
	for i, f := range g.Fields {
		keys[i] = f.Key
	}
	return keys
}

// DynamicRecord is one row of a data config group's collection. Its
// attributes are constrained by the owning group's field list; keys not
// declared by the schema may linger from older schema versions and are
// ignored by comparison.
type DynamicRecord struct {
	ID           string         `json:"id" yaml:"id"`
	AcademicYear string         `json:"academicYear,omitempty" yaml:"academicYear,omitempty"`
	UpdatedAt    *utc.Time      `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
	Attributes   map[string]any `json:"attributes" yaml:"attributes"`
}
