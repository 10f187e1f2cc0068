package judgment

import "fmt"

// Verdict is one ordinal pairwise judgment on a fixed 5-point scale
// symmetric about a neutral midpoint.
//
// Two frames share the type:
//   - presented frame: negative favors the content shown in slot A,
//     positive favors slot B
//   - canonical frame: negative favors the baseline, positive favors
//     the student advice
//
// When the side flip is false the frames coincide; when true they are
// mirror images. Normalize and Present convert between them.
type Verdict int

const (
	// StronglyA means the slot-A (or baseline, in canonical frame)
	// content is strongly better.
	StronglyA Verdict = -2

	// SlightlyA means the slot-A content is somewhat better.
	SlightlyA Verdict = -1

	// Neutral means neither side is better.
	Neutral Verdict = 0

	// SlightlyB means the slot-B content is somewhat better.
	SlightlyB Verdict = 1

	// StronglyB means the slot-B content is strongly better.
	StronglyB Verdict = 2
)

// verdictLabels maps scale values to display labels in presented frame.
var verdictLabels = map[Verdict]string{
	StronglyA: "A strongly better",
	SlightlyA: "A slightly better",
	Neutral:   "no preference",
	SlightlyB: "B slightly better",
	StronglyB: "B strongly better",
}

// Valid reports whether v lies on the 5-point scale.
func (v Verdict) Valid() bool {
	return v >= StronglyA && v <= StronglyB
}

// Label returns the human-readable label for v, or a numeric fallback
// for out-of-scale values.
func (v Verdict) Label() string {
	if label, ok := verdictLabels[v]; ok {
		return label
	}
	return fmt.Sprintf("verdict(%d)", int(v))
}

// Invert mirrors v about the neutral midpoint.
func (v Verdict) Invert() Verdict {
	return -v
}

// Normalize converts a verdict given in the presented frame to the
// canonical frame, undoing the side flip. With flip=false the baseline
// occupied slot A and the value passes through unchanged; with
// flip=true the baseline occupied slot B, so the scale is mirrored.
func Normalize(presented Verdict, flip bool) Verdict {
	if flip {
		return presented.Invert()
	}
	return presented
}

// Present converts a canonical-frame verdict back to the presented
// frame under a known side flip. Present is its own inverse composed
// with Normalize: Present(Normalize(v, f), f) == v.
func Present(canonical Verdict, flip bool) Verdict {
	if flip {
		return canonical.Invert()
	}
	return canonical
}
