package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/studykit/pairwise/internal/judgment"
)

// Append writes one judgment record to the log. The record must
// already be normalized to the canonical frame and validated; the
// verdict stored per criterion is the canonical one, with the side
// flip recorded alongside so the presented values can be recovered.
//
// Appends for the same (participant, item) pair are not deduplicated:
// the log accepts re-submissions and consumers resolve them with a
// latest-record-wins policy.
func (s *Store) Append(ctx context.Context, rec judgment.Record) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("append judgment: %w", err)
	}

	columns := []string{
		"timestamp", "participant_id", "item_index", "subject_id", "side_flip",
		"baseline_grade", "student_grade", "baseline_response",
		"advice_title", "advice_body",
		"profile_student", "profile_course_taken", "profile_course_grade",
		"comment",
	}
	args := []any{
		rec.Timestamp.Format(time.RFC3339),
		rec.ParticipantID,
		rec.ItemIndex,
		rec.SubjectID,
		rec.SideFlip,
		rec.BaselineGrade,
		rec.StudentGrade,
		rec.BaselineResponse,
		rec.AdviceTitle,
		rec.AdviceBody,
		rec.Profile.Student,
		rec.Profile.CourseTaken,
		rec.Profile.CourseGrade,
		rec.Comment,
	}
	for _, c := range judgment.Criteria {
		columns = append(columns, c.Column())
		args = append(args, int(rec.Verdicts[c]))
	}

	stmt := fmt.Sprintf(
		"INSERT INTO judgments (%s) VALUES (%s)",
		strings.Join(columns, ", "),
		placeholders(len(columns)),
	)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("append judgment: %w", err)
	}
	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
