// Package progress computes a participant's completed items from the
// append-only judgment log.
//
// The tracker is schema-tolerant by construction: log rows are generic
// column-keyed maps, the participant and item columns may appear under
// several historical aliases, and values are compared in trimmed
// string form regardless of the backend's native typing. Malformed
// rows are skipped, never fatal — the worst outcome of a broken log is
// that a participant restarts their sequence.
package progress

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/studykit/pairwise/internal/judgment"
)

// Column aliases accumulated across log schema generations.
var (
	participantColumns = []string{"participant_id", "user_id", "userid", "participant"}
	itemColumns        = []string{"item_index", "index", "item"}
)

// Aliases for the three profile columns, oldest schema last.
var (
	profileStudentColumns     = []string{"profile_student", "kyushu_student"}
	profileCourseTakenColumns = []string{"profile_course_taken", "info_course_taken"}
	profileCourseGradeColumns = []string{"profile_course_grade", "info_course_grade"}
)

// Progress is one participant's completion state derived from the log.
type Progress struct {
	// Completed holds the canonical item indices the participant has
	// at least one judgment for. Duplicate judgments still count once.
	Completed map[int]struct{}

	// Profile is the survey profile restored from the last matching
	// record with a non-empty profile (last-write-wins).
	Profile judgment.Profile

	// Skipped counts rows for this participant that carried no
	// parseable item index.
	Skipped int
}

// Done reports whether every index in order is completed.
func (p Progress) Done(order []int) bool {
	_, ok := Next(order, p.Completed)
	return !ok
}

// FromRows scans the full log for one participant's records. The rows
// come from the store's generic reader; the participant id is matched
// after trimming and NFC normalization on both sides.
func FromRows(rows []map[string]any, participantID string, logger *zap.Logger) Progress {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := Progress{Completed: make(map[int]struct{})}
	want := canonicalString(participantID)

	for _, row := range rows {
		got, ok := firstColumn(row, participantColumns)
		if !ok || canonicalString(stringify(got)) != want {
			continue
		}

		raw, ok := firstColumn(row, itemColumns)
		if !ok {
			p.Skipped++
			logger.Debug("judgment row without item index column", zap.Any("row_keys", keysOf(row)))
			continue
		}
		idx, err := parseIndex(raw)
		if err != nil {
			p.Skipped++
			logger.Debug("judgment row with malformed item index",
				zap.String("value", stringify(raw)), zap.Error(err))
			continue
		}
		p.Completed[idx] = struct{}{}

		if profile := profileOf(row); !profile.Empty() {
			p.Profile = profile
		}
	}
	return p
}

// Next walks the presentation order and returns the first index not in
// the completed set. ok=false means the participant has completed
// every item.
func Next(order []int, completed map[int]struct{}) (idx int, ok bool) {
	for _, i := range order {
		if _, done := completed[i]; !done {
			return i, true
		}
	}
	return 0, false
}

// firstColumn returns the value under the first alias present in the
// row, even when the value itself is nil.
func firstColumn(row map[string]any, aliases []string) (any, bool) {
	for _, col := range aliases {
		if v, ok := row[col]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func profileOf(row map[string]any) judgment.Profile {
	return judgment.Profile{
		Student:     stringColumn(row, profileStudentColumns),
		CourseTaken: stringColumn(row, profileCourseTakenColumns),
		CourseGrade: stringColumn(row, profileCourseGradeColumns),
	}
}

func stringColumn(row map[string]any, aliases []string) string {
	v, ok := firstColumn(row, aliases)
	if !ok {
		return ""
	}
	return strings.TrimSpace(stringify(v))
}

// stringify renders a backend-typed value as a string. Follows the
// typing of database/sql drivers: integers surface as int64, text as
// string or []byte, booleans sometimes as int64.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func canonicalString(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// parseIndex accepts integer-valued indexes in any backend typing,
// including strings like "3" and floats like 3.0 produced by JSON
// round-trips.
func parseIndex(v any) (int, error) {
	switch val := v.(type) {
	case int64:
		return int(val), nil
	case int:
		return val, nil
	case float64:
		if val != float64(int(val)) {
			return 0, fmt.Errorf("non-integral index %v", val)
		}
		return int(val), nil
	}

	s := strings.TrimSpace(stringify(v))
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable index %q", s)
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("non-integral index %q", s)
	}
	return int(f), nil
}

func keysOf(row map[string]any) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	return keys
}
