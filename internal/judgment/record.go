package judgment

import (
	"fmt"
	"strings"
	"time"
)

// Criterion identifies one evaluation dimension of a pairwise judgment.
type Criterion string

const (
	CriterionUsefulness     Criterion = "usefulness"
	CriterionReadability    Criterion = "readability"
	CriterionPersuasiveness Criterion = "persuasiveness"
	CriterionActionability  Criterion = "actionability"
	CriterionHallucination  Criterion = "hallucination"
	CriterionOverall        Criterion = "overall"
)

// Criteria is the fixed, ordered set of evaluation dimensions. The
// order determines column order in the judgment log; new criteria are
// appended, never inserted, so older log rows stay readable.
var Criteria = []Criterion{
	CriterionUsefulness,
	CriterionReadability,
	CriterionPersuasiveness,
	CriterionActionability,
	CriterionHallucination,
	CriterionOverall,
}

// Column returns the log column name for the criterion.
func (c Criterion) Column() string {
	return "q_" + string(c)
}

// Profile holds the fixed survey-profile fields collected once per
// participant and stamped onto every judgment row.
type Profile struct {
	Student     string `json:"profile_student"`
	CourseTaken string `json:"profile_course_taken"`
	CourseGrade string `json:"profile_course_grade"`
}

// Empty reports whether no profile field carries a value.
func (p Profile) Empty() bool {
	return strings.TrimSpace(p.Student) == "" &&
		strings.TrimSpace(p.CourseTaken) == "" &&
		strings.TrimSpace(p.CourseGrade) == ""
}

// Record is one completed pairwise judgment, normalized to the
// canonical frame. Records are append-only: corrections are new
// records for the same (participant, item) pair, and consumers treat
// any record as marking the item complete while the latest record's
// field values are authoritative for analysis.
type Record struct {
	Timestamp     time.Time
	ParticipantID string
	ItemIndex     int
	SubjectID     string
	SideFlip      bool

	// Denormalized item payload, carried on every row so analysis
	// needs no join back to the source datasets.
	BaselineGrade    string
	StudentGrade     string
	BaselineResponse string
	AdviceTitle      string
	AdviceBody       string

	Profile  Profile
	Verdicts map[Criterion]Verdict
	Comment  string
}

// Validate checks structural invariants before the record is appended.
func (r Record) Validate() error {
	if strings.TrimSpace(r.ParticipantID) == "" {
		return fmt.Errorf("judgment: empty participant id")
	}
	if r.ItemIndex < 0 {
		return fmt.Errorf("judgment: negative item index %d", r.ItemIndex)
	}
	if r.SubjectID == "" {
		return fmt.Errorf("judgment: empty subject id")
	}
	for _, c := range Criteria {
		v, ok := r.Verdicts[c]
		if !ok {
			return fmt.Errorf("judgment: missing verdict for criterion %q", c)
		}
		if !v.Valid() {
			return fmt.Errorf("judgment: verdict %d for criterion %q is off-scale", int(v), c)
		}
	}
	return nil
}
