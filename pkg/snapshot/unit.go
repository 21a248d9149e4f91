package snapshot

// UnitType classifies an organizational unit.
type UnitType string

const (
	// UnitTypeSchool is a top-level school.
	UnitTypeSchool UnitType = "school"
	// UnitTypeFaculty is a faculty within a school.
	UnitTypeFaculty UnitType = "faculty"
	// UnitTypeDepartment is a department within a faculty.
	UnitTypeDepartment UnitType = "department"
)

// Unit represents one node of the organizational forest. ParentID, when
// set, must reference an existing unit; units never form cycles.
type Unit struct {
	ID       string   `json:"id" yaml:"id"`                       // Unique unit identifier
	Name     string   `json:"name" yaml:"name"`                   // Display name
	Code     string   `json:"code,omitempty" yaml:"code,omitempty"` // Short administrative code
	Type     UnitType `json:"type" yaml:"type"`                   // school, faculty, or department
	ParentID *string  `json:"parentId,omitempty" yaml:"parentId,omitempty"`
}
