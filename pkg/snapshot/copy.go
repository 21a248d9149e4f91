package snapshot

// Copy creates a deep copy of the snapshot. The merge executor operates
// only on copies so callers may reuse one local snapshot across
// concurrent comparisons.
func (s *Snapshot) Copy() *Snapshot {
	if s == nil {
		return nil
	}

	out := &Snapshot{
		Units:            make([]Unit, len(s.Units)),
		Faculties:        make([]Faculty, len(s.Faculties)),
		HumanResources:   make([]Assignment, len(s.HumanResources)),
		DataConfigGroups: make([]DataConfigGroup, len(s.DataConfigGroups)),
	}

	for i, u := range s.Units {
		out.Units[i] = CopyUnit(u)
	}
	for i, f := range s.Faculties {
		out.Faculties[i] = CopyFaculty(f)
	}
	for i, a := range s.HumanResources {
		out.HumanResources[i] = CopyAssignment(a)
	}
	for i, g := range s.DataConfigGroups {
		out.DataConfigGroups[i] = CopyGroup(g)
	}

	if s.DynamicDataStore != nil {
		out.DynamicDataStore = make(map[string][]DynamicRecord, len(s.DynamicDataStore))
		for groupID, records := range s.DynamicDataStore {
			copied := make([]DynamicRecord, len(records))
			for i, r := range records {
				copied[i] = CopyRecord(r)
			}
			out.DynamicDataStore[groupID] = copied
		}
	}

	return out
}

// CopyUnit creates a deep copy of a Unit including its ParentID pointer.
func CopyUnit(u Unit) Unit {
	out := u
	if u.ParentID != nil {
		parent := *u.ParentID
		out.ParentID = &parent
	}
	return out
}

// CopyFaculty creates a deep copy of a Faculty including its sub-record lists.
func CopyFaculty(f Faculty) Faculty {
	out := f
	out.Education = copySubRecords(f.Education)
	out.Experience = copySubRecords(f.Experience)
	out.Publications = copySubRecords(f.Publications)
	return out
}

// CopyAssignment creates a deep copy of an Assignment including its EndDate pointer.
func CopyAssignment(a Assignment) Assignment {
	out := a
	if a.EndDate != nil {
		end := *a.EndDate
		out.EndDate = &end
	}
	return out
}

// CopyGroup creates a deep copy of a DataConfigGroup including its field list.
func CopyGroup(g DataConfigGroup) DataConfigGroup {
	out := g
	if g.Fields != nil {
		out.Fields = make([]FieldDef, len(g.Fields))
		for i, f := range g.Fields {
			out.Fields[i] = f
			if f.Options != nil {
				out.Fields[i].Options = append([]string(nil), f.Options...)
			}
		}
	}
	return out
}

// CopyRecord creates a deep copy of a DynamicRecord including its attribute map.
func CopyRecord(r DynamicRecord) DynamicRecord {
	out := r
	if r.UpdatedAt != nil {
		at := *r.UpdatedAt
		out.UpdatedAt = &at
	}
	if r.Attributes != nil {
		out.Attributes = make(map[string]any, len(r.Attributes))
		for k, v := range r.Attributes {
			out.Attributes[k] = copyValue(v)
		}
	}
	return out
}

// copySubRecords returns a copied sub-record slice, preserving nil.
func copySubRecords(records []SubRecord) []SubRecord {
	if records == nil {
		return nil
	}
	return append([]SubRecord(nil), records...)
}

// copyValue deep-copies a JSON-shaped attribute value.
func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = copyValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = copyValue(inner)
		}
		return out
	default:
		// Scalars (string, float64, bool, nil) are value types
		return v
	}
}
