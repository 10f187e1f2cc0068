package reconcile

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioDatasets() (Dataset, Dataset) {
	baseline := Dataset{
		"u1": {"grade": "A", "response": "foo"},
		"u2": {"grade": "B", "response": "bar"},
	}
	advice := Dataset{
		"u1": {"student_advice_title": "T1", "student_advice_body": "B1"},
		"u2": {"student_advice_title": "T2", "student_advice_body": "B2"},
	}
	return baseline, advice
}

func TestReconcile_ExactKeyIntersection(t *testing.T) {
	baseline, advice := scenarioDatasets()
	baseline["only-in-baseline"] = Entry{"response": "x"}
	advice["only-in-advice"] = Entry{"student_advice_body": "y"}

	items := Reconcile(baseline, advice, Options{})
	require.Len(t, items, 2)
	assert.Equal(t, "u1", items[0].SubjectID)
	assert.Equal(t, "u2", items[1].SubjectID)
	for i, item := range items {
		assert.Equal(t, i, item.Index)
	}
}

func TestReconcile_AllowListOrder(t *testing.T) {
	baseline, advice := scenarioDatasets()

	items := Reconcile(baseline, advice, Options{
		MaxItems: 2,
		Subjects: []string{"u2", "u1"},
	})
	require.Len(t, items, 2)
	assert.Equal(t, "u2", items[0].SubjectID)
	assert.Equal(t, 0, items[0].Index)
	assert.Equal(t, "u1", items[1].SubjectID)
	assert.Equal(t, 1, items[1].Index)
	assert.Equal(t, "B", items[0].BaselineGrade)
	assert.Equal(t, "bar", items[0].Baseline)
	assert.Equal(t, "T2", items[0].AdviceTitle)
	assert.Equal(t, "B2", items[0].AdviceBody)
}

func TestReconcile_AllowListSkipsUnmatchedAndDupes(t *testing.T) {
	baseline, advice := scenarioDatasets()

	// "u9u8u7" models the concatenated-entry authoring defect seen in
	// curated lists; it must be skipped, not propagated as an error.
	items := Reconcile(baseline, advice, Options{
		Subjects: []string{"u2", "u9u8u7", "u2", "u1"},
	})
	require.Len(t, items, 2)
	assert.Equal(t, "u2", items[0].SubjectID)
	assert.Equal(t, "u1", items[1].SubjectID)
}

func TestReconcile_AllowListMissEverythingFallsBack(t *testing.T) {
	baseline, advice := scenarioDatasets()

	items := Reconcile(baseline, advice, Options{
		Subjects: []string{"nobody", "nothere"},
	})
	require.Len(t, items, 2)
	assert.Equal(t, "u1", items[0].SubjectID, "fallback order is lexicographic")
	assert.Equal(t, "u2", items[1].SubjectID)
}

func TestReconcile_Truncation(t *testing.T) {
	baseline, advice := scenarioDatasets()

	items := Reconcile(baseline, advice, Options{MaxItems: 1})
	require.Len(t, items, 1)
	assert.Equal(t, "u1", items[0].SubjectID)
}

func TestReconcile_AliasFallback(t *testing.T) {
	// Disjoint top-level keys, shared embedded identity field.
	baseline := Dataset{
		"row-1": {"userid": "s042", "grade": "A", "response": "foo"},
		"row-2": {"userid": "s043", "grade": "C", "response": "baz"},
	}
	advice := Dataset{
		"advice-a": {"userid": "s042", "student_advice_title": "T", "student_advice_body": "B"},
	}

	items := Reconcile(baseline, advice, Options{})
	require.Len(t, items, 1)
	assert.Equal(t, "s042", items[0].SubjectID)
	assert.Equal(t, "foo", items[0].Baseline)
	assert.Equal(t, "T", items[0].AdviceTitle)
}

func TestReconcile_AliasFirstWins(t *testing.T) {
	// Two baseline entries claim the same alias; registration over
	// sorted primary keys keeps row-1 and the result is stable.
	baseline := Dataset{
		"row-2": {"userid": "dup", "response": "second"},
		"row-1": {"userid": "dup", "response": "first"},
	}
	advice := Dataset{
		"adv": {"userid": "dup", "student_advice_body": "B"},
	}

	items := Reconcile(baseline, advice, Options{})
	require.Len(t, items, 1)
	assert.Equal(t, "first", items[0].Baseline)
}

func TestReconcile_ZeroMatches(t *testing.T) {
	baseline := Dataset{"a": {"response": "x"}}
	advice := Dataset{"b": {"student_advice_body": "y"}}

	items := Reconcile(baseline, advice, Options{})
	assert.Empty(t, items)
}

func TestReconcile_PayloadFallbacks(t *testing.T) {
	baseline := Dataset{
		"u1": {"grade": "A", "feedback": "from-feedback"},
		"u2": {"grade": "B", "zz_custom": "free-form", "step": float64(10)},
	}
	advice := Dataset{
		"u1": {"title": "short-title", "body": "short-body"},
		"u2": {"advice_title": "mid-title", "advice_body": "mid-body", "grade": "C"},
	}

	items := Reconcile(baseline, advice, Options{})
	require.Len(t, items, 2)

	assert.Equal(t, "from-feedback", items[0].Baseline, "prioritized field list")
	assert.Equal(t, "short-title", items[0].AdviceTitle)
	assert.Equal(t, "short-body", items[0].AdviceBody)

	assert.Equal(t, "free-form", items[1].Baseline, "free field fallback skips reserved fields")
	assert.Equal(t, "mid-title", items[1].AdviceTitle)
	assert.Equal(t, "C", items[1].StudentGrade)
}

func TestReconcile_Golden(t *testing.T) {
	baseline, advice := scenarioDatasets()
	items := Reconcile(baseline, advice, Options{
		MaxItems: 2,
		Subjects: []string{"u2", "u1"},
	})

	data, err := json.MarshalIndent(items, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "scenario_items", append(data, '\n'))
}
