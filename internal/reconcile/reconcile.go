// Package reconcile merges two independently produced, inconsistently
// keyed datasets into one canonical ordered item list.
//
// The baseline dataset holds generated feedback text per subject; the
// advice dataset holds a (title, body) advice pair per subject. The two
// were produced by different pipeline phases and do not always agree on
// primary keys, so matching falls back from exact key intersection to
// an alias index built from embedded identity fields.
//
// The output list is a pure function of its inputs: built once at
// startup, cached for the process lifetime, never mutated.
package reconcile

import "sort"

// Entry is one raw dataset record: a free-form string-keyed mapping of
// dataset-specific fields.
type Entry map[string]any

// Dataset maps a primary subject key to its entry.
type Dataset map[string]Entry

// Item is one subject's paired content at a stable canonical index.
type Item struct {
	// Index is 0-based and contiguous. It is stable only within the
	// pre-shuffle canonical ordering produced by Reconcile.
	Index int `json:"item_index"`

	// SubjectID uniquely identifies the subject within the list.
	SubjectID string `json:"subject_id"`

	BaselineGrade string `json:"baseline_grade"`
	StudentGrade  string `json:"student_grade"`

	// Baseline is the normalized baseline payload text.
	Baseline string `json:"baseline_response"`

	AdviceTitle string `json:"advice_title"`
	AdviceBody  string `json:"advice_body"`
}

// Options configures subject selection.
type Options struct {
	// MaxItems truncates the output list. Zero or negative means no
	// limit.
	MaxItems int

	// Subjects is an optional curated allow-list of subject ids. When
	// its intersection with the matched set is non-empty it also fixes
	// the output order; entries absent from the matched set are
	// skipped silently (some authored lists contain malformed
	// entries, and propagating that defect would abort the study).
	Subjects []string
}

// Reconcile merges the two datasets into the canonical item list.
// A zero-length result means no subjects matched; the caller must
// treat that as a fatal configuration error.
func Reconcile(baseline, advice Dataset, opts Options) []Item {
	matched := matchSubjects(baseline, advice)
	selected := selectSubjects(matched, opts)

	items := make([]Item, 0, len(selected))
	for _, m := range selected {
		items = append(items, buildItem(len(items), m))
	}
	return items
}

// match pairs one subject id with its entry in each dataset.
type match struct {
	subjectID string
	baseline  Entry
	advice    Entry
}

// matchSubjects finds the subjects present in both datasets. Exact
// top-level key intersection wins; only when it is empty does matching
// fall back to the alias index.
func matchSubjects(baseline, advice Dataset) map[string]match {
	matched := make(map[string]match)
	for key, base := range baseline {
		if adv, ok := advice[key]; ok {
			matched[key] = match{subjectID: key, baseline: base, advice: adv}
		}
	}
	if len(matched) > 0 {
		return matched
	}

	baseAliases := aliasIndex(baseline)
	advAliases := aliasIndex(advice)
	seen := make(map[string]bool) // baseline primary key, to dedupe multi-alias entries
	for _, alias := range sortedKeys(baseAliases) {
		basePrimary := baseAliases[alias]
		advPrimary, ok := advAliases[alias]
		if !ok || seen[basePrimary] {
			continue
		}
		seen[basePrimary] = true
		matched[alias] = match{
			subjectID: alias,
			baseline:  baseline[basePrimary],
			advice:    advice[advPrimary],
		}
	}
	return matched
}

// aliasIndex maps every alias to the primary key of the entry that
// registered it. Registration walks primary keys in sorted order and
// keeps the first entry per alias, so a duplicated alias resolves
// identically on every run.
func aliasIndex(ds Dataset) map[string]string {
	index := make(map[string]string)
	primaries := make([]string, 0, len(ds))
	for k := range ds {
		primaries = append(primaries, k)
	}
	sort.Strings(primaries)
	for _, primary := range primaries {
		for _, alias := range aliases(primary, ds[primary]) {
			if _, taken := index[alias]; !taken {
				index[alias] = primary
			}
		}
	}
	return index
}

// selectSubjects orders and truncates the matched set. Allow-list
// order wins when the intersection is non-empty; otherwise the full
// matched set is ordered lexicographically by subject id.
func selectSubjects(matched map[string]match, opts Options) []match {
	var ids []string
	if len(opts.Subjects) > 0 {
		seen := make(map[string]bool)
		for _, id := range opts.Subjects {
			if seen[id] {
				continue
			}
			seen[id] = true
			if _, ok := matched[id]; ok {
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		ids = sortedMatchKeys(matched)
	}
	if opts.MaxItems > 0 && len(ids) > opts.MaxItems {
		ids = ids[:opts.MaxItems]
	}

	out := make([]match, 0, len(ids))
	for _, id := range ids {
		out = append(out, matched[id])
	}
	return out
}

func buildItem(index int, m match) Item {
	baselineText := stringField(m.baseline, baselineFields...)
	if baselineText == "" {
		baselineText = freeStringField(m.baseline)
	}
	return Item{
		Index:         index,
		SubjectID:     m.subjectID,
		BaselineGrade: stringField(m.baseline, "grade"),
		StudentGrade:  stringField(m.advice, "grade"),
		Baseline:      NormalizeText(baselineText),
		AdviceTitle:   stringField(m.advice, adviceTitleFields...),
		AdviceBody:    stringField(m.advice, adviceBodyFields...),
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedMatchKeys(m map[string]match) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
