package differ

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/campushq/reconcile/pkg/normalize"
	"github.com/campushq/reconcile/pkg/snapshot"
)

// Matcher defines the identity and equality rules of one entity family.
// IdentityKey is the primary id and is never normalized. NaturalKey is
// the fallback identity used when id lookup fails; FuzzyKey is the weak,
// folded identity tried last. Families without a fallback return "".
type Matcher[T any] interface {
	IdentityKey(item T) string
	NaturalKey(item T) string
	FuzzyKey(item T) string
	Equal(a, b T) bool
	Label(item T) string
}

// unitMatcher matches organizational units. The unit id is both the
// primary and the natural key; there is no fuzzy fallback.
type unitMatcher struct{}

func (unitMatcher) IdentityKey(u snapshot.Unit) string { return u.ID }
func (unitMatcher) NaturalKey(u snapshot.Unit) string  { return u.ID }
func (unitMatcher) FuzzyKey(snapshot.Unit) string      { return "" }

func (unitMatcher) Equal(a, b snapshot.Unit) bool {
	return a.Name == b.Name &&
		a.Code == b.Code &&
		a.Type == b.Type &&
		strPtrEqual(a.ParentID, b.ParentID)
}

func (unitMatcher) Label(u snapshot.Unit) string {
	if u.Code != "" {
		return fmt.Sprintf("%s (%s)", u.Name, u.Code)
	}
	return u.Name
}

// facultyMatcher matches personnel profiles. The folded email is the
// natural key ("same email, different id" re-imports); the folded name
// is the fuzzy fallback.
type facultyMatcher struct{}

func (facultyMatcher) IdentityKey(f snapshot.Faculty) string { return f.ID }

func (facultyMatcher) NaturalKey(f snapshot.Faculty) string {
	return normalize.Fold(f.Email)
}

func (facultyMatcher) FuzzyKey(f snapshot.Faculty) string {
	return normalize.Fold(f.Name)
}

func (facultyMatcher) Equal(a, b snapshot.Faculty) bool {
	return a.Name == b.Name &&
		a.NameEn == b.NameEn &&
		a.Email == b.Email &&
		a.Rank == b.Rank &&
		a.RankEn == b.RankEn &&
		a.Degree == b.Degree &&
		a.DegreeEn == b.DegreeEn &&
		slices.Equal(a.Education, b.Education) &&
		slices.Equal(a.Experience, b.Experience) &&
		slices.Equal(a.Publications, b.Publications)
}

func (facultyMatcher) Label(f snapshot.Faculty) string {
	if f.Email != "" {
		return fmt.Sprintf("%s <%s>", f.Name, f.Email)
	}
	return f.Name
}

// assignmentMatcher matches human-resource records. The natural key is
// the (facultyId, unitId) composite. Equality looks only at role,
// startDate, and endDate: near-miss faculty or unit ids from upstream
// migrations are not fuzzy-matched.
type assignmentMatcher struct{}

func (assignmentMatcher) IdentityKey(a snapshot.Assignment) string { return a.ID }

func (assignmentMatcher) NaturalKey(a snapshot.Assignment) string {
	if a.FacultyID == "" || a.UnitID == "" {
		return ""
	}
	return a.FacultyID + "\x00" + a.UnitID
}

func (assignmentMatcher) FuzzyKey(snapshot.Assignment) string { return "" }

func (assignmentMatcher) Equal(a, b snapshot.Assignment) bool {
	return a.Role == b.Role &&
		a.StartDate == b.StartDate &&
		strPtrEqual(a.EndDate, b.EndDate)
}

func (assignmentMatcher) Label(a snapshot.Assignment) string {
	if a.Role != "" {
		return fmt.Sprintf("%s @ %s (%s)", a.FacultyID, a.UnitID, a.Role)
	}
	return fmt.Sprintf("%s @ %s", a.FacultyID, a.UnitID)
}

// recordMatcher matches dynamic records of one data config group.
// Identity is the record id with no fallback; equality is restricted to
// the attribute keys the owning group declares, so extraneous legacy
// keys on either side never trigger a false modified status.
type recordMatcher struct {
	keys []string
}

func newRecordMatcher(group snapshot.DataConfigGroup) recordMatcher {
	return recordMatcher{keys: group.FieldKeys()}
}

func (recordMatcher) IdentityKey(r snapshot.DynamicRecord) string { return r.ID }
func (recordMatcher) NaturalKey(snapshot.DynamicRecord) string    { return "" }
func (recordMatcher) FuzzyKey(snapshot.DynamicRecord) string      { return "" }

func (m recordMatcher) Equal(a, b snapshot.DynamicRecord) bool {
	if a.AcademicYear != b.AcademicYear {
		return false
	}
	for _, key := range m.keys {
		if !reflect.DeepEqual(a.Attributes[key], b.Attributes[key]) {
			return false
		}
	}
	return true
}

func (m recordMatcher) Label(r snapshot.DynamicRecord) string {
	if r.AcademicYear != "" {
		return fmt.Sprintf("%s (%s)", r.ID, r.AcademicYear)
	}
	return r.ID
}

// strPtrEqual compares two optional strings by value.
func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
