package snapshot

// Faculty represents a personnel profile. Identity is ID; Email is a
// secondary natural key used when IDs diverge between datasets.
type Faculty struct {
	ID    string `json:"id" yaml:"id"`       // Unique profile identifier
	Name  string `json:"name" yaml:"name"`   // Full name (local language)
	NameEn string `json:"nameEn,omitempty" yaml:"nameEn,omitempty"` // Full name (English)
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	Rank     string `json:"rank,omitempty" yaml:"rank,omitempty"`
	RankEn   string `json:"rankEn,omitempty" yaml:"rankEn,omitempty"`
	Degree   string `json:"degree,omitempty" yaml:"degree,omitempty"`
	DegreeEn string `json:"degreeEn,omitempty" yaml:"degreeEn,omitempty"`

	// Sub-record lists attached to the profile
	Education    []SubRecord `json:"education,omitempty" yaml:"education,omitempty"`
	Experience   []SubRecord `json:"experience,omitempty" yaml:"experience,omitempty"`
	Publications []SubRecord `json:"publications,omitempty" yaml:"publications,omitempty"`
}

// SubRecord is one entry of a faculty sub-record list (a degree earned,
// a position held, a published work).
type SubRecord struct {
	Title  string `json:"title" yaml:"title"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
	Year   string `json:"year,omitempty" yaml:"year,omitempty"`
}
