package judgment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerdict_Valid(t *testing.T) {
	for v := StronglyA; v <= StronglyB; v++ {
		assert.True(t, v.Valid(), "verdict %d should be on scale", int(v))
	}
	assert.False(t, Verdict(-3).Valid())
	assert.False(t, Verdict(3).Valid())
}

func TestVerdict_Labels(t *testing.T) {
	assert.Equal(t, "A strongly better", StronglyA.Label())
	assert.Equal(t, "no preference", Neutral.Label())
	assert.Equal(t, "B strongly better", StronglyB.Label())
	assert.Equal(t, "verdict(7)", Verdict(7).Label())
}

func TestVerdict_InvertSymmetric(t *testing.T) {
	for v := StronglyA; v <= StronglyB; v++ {
		assert.Equal(t, v, v.Invert().Invert())
	}
	assert.Equal(t, Neutral, Neutral.Invert())
}

// A verdict recorded under a flipped presentation, normalized to the
// canonical scale, must re-invert to the originally presented value
// when the known flip is re-applied.
func TestVerdict_SideFlipRoundTrip(t *testing.T) {
	for _, flip := range []bool{false, true} {
		for v := StronglyA; v <= StronglyB; v++ {
			canonical := Normalize(v, flip)
			assert.Equal(t, v, Present(canonical, flip),
				"round trip failed for verdict %d flip %v", int(v), flip)
		}
	}
}

func TestNormalize_FlipMirrorsScale(t *testing.T) {
	assert.Equal(t, StronglyB, Normalize(StronglyA, true))
	assert.Equal(t, SlightlyA, Normalize(SlightlyB, true))
	assert.Equal(t, Neutral, Normalize(Neutral, true))
	assert.Equal(t, StronglyA, Normalize(StronglyA, false))
}

func fullVerdicts(v Verdict) map[Criterion]Verdict {
	out := make(map[Criterion]Verdict, len(Criteria))
	for _, c := range Criteria {
		out[c] = v
	}
	return out
}

func TestRecord_Validate(t *testing.T) {
	valid := Record{
		ParticipantID: "alice",
		ItemIndex:     0,
		SubjectID:     "u1",
		Verdicts:      fullVerdicts(Neutral),
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Record)
	}{
		{"empty participant", func(r *Record) { r.ParticipantID = "  " }},
		{"negative index", func(r *Record) { r.ItemIndex = -1 }},
		{"empty subject", func(r *Record) { r.SubjectID = "" }},
		{"missing criterion", func(r *Record) { delete(r.Verdicts, CriterionOverall) }},
		{"off-scale verdict", func(r *Record) { r.Verdicts[CriterionOverall] = Verdict(5) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := valid
			rec.Verdicts = fullVerdicts(Neutral)
			tt.mutate(&rec)
			assert.Error(t, rec.Validate())
		})
	}
}

func TestProfile_Empty(t *testing.T) {
	assert.True(t, Profile{}.Empty())
	assert.True(t, Profile{Student: "  "}.Empty())
	assert.False(t, Profile{CourseGrade: "A"}.Empty())
}
