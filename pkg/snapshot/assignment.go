package snapshot

// Assignment links one faculty member to one organizational unit.
// The composite natural key is (FacultyID, UnitID).
type Assignment struct {
	ID        string  `json:"id" yaml:"id"` // Unique assignment identifier
	FacultyID string  `json:"facultyId" yaml:"facultyId"`
	UnitID    string  `json:"unitId" yaml:"unitId"`
	Role      string  `json:"role,omitempty" yaml:"role,omitempty"`
	StartDate string  `json:"startDate,omitempty" yaml:"startDate,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"endDate,omitempty" yaml:"endDate,omitempty"`     // YYYY-MM-DD, nil while active
}
