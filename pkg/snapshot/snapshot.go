// Package snapshot defines the in-memory dataset shape shared by the
// reconciliation engine and the surrounding backup/export feature. A
// Snapshot holds four entity families: organizational units, personnel
// profiles, personnel-to-unit assignments, and per-schema dynamic records.
package snapshot

// Snapshot is a full copy of all four entity-family collections at one
// point in time. It is JSON-serializable in the shape used by the
// backup/export feature.
type Snapshot struct {
	Units            []Unit                     `json:"units" yaml:"units"`
	Faculties        []Faculty                  `json:"faculties" yaml:"faculties"`
	HumanResources   []Assignment               `json:"humanResources" yaml:"humanResources"`
	DataConfigGroups []DataConfigGroup          `json:"dataConfigGroups" yaml:"dataConfigGroups"`
	DynamicDataStore map[string][]DynamicRecord `json:"dynamicDataStore" yaml:"dynamicDataStore"`
}

// New returns an empty snapshot with all collections initialized.
func New() *Snapshot {
	return &Snapshot{
		Units:            []Unit{},
		Faculties:        []Faculty{},
		HumanResources:   []Assignment{},
		DataConfigGroups: []DataConfigGroup{},
		DynamicDataStore: map[string][]DynamicRecord{},
	}
}

// Stats summarizes collection sizes for display and logging.
type Stats struct {
	Units     int `json:"units"`
	Faculties int `json:"faculties"`
	Resources int `json:"resources"`
	Groups    int `json:"groups"`
	Records   int `json:"records"`
}

// Stats returns the collection sizes of the snapshot.
func (s *Snapshot) Stats() Stats {
	stats := Stats{
		Units:     len(s.Units),
		Faculties: len(s.Faculties),
		Resources: len(s.HumanResources),
		Groups:    len(s.DataConfigGroups),
	}
	for _, records := range s.DynamicDataStore {
		stats.Records += len(records)
	}
	return stats
}

// Group returns the data config group with the given ID, or nil.
func (s *Snapshot) Group(id string) *DataConfigGroup {
	for i := range s.DataConfigGroups {
		if s.DataConfigGroups[i].ID == id {
			return &s.DataConfigGroups[i]
		}
	}
	return nil
}

// UnitIndex returns the units indexed by ID.
func (s *Snapshot) UnitIndex() map[string]Unit {
	index := make(map[string]Unit, len(s.Units))
	for _, u := range s.Units {
		index[u.ID] = u
	}
	return index
}

// FacultyIndex returns the faculties indexed by ID.
func (s *Snapshot) FacultyIndex() map[string]Faculty {
	index := make(map[string]Faculty, len(s.Faculties))
	for _, f := range s.Faculties {
		index[f.ID] = f
	}
	return index
}
