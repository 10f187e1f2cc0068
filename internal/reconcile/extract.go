package reconcile

import "sort"

// identityFields is the fixed allow-list of field names whose string
// values act as additional aliases for an entry during fallback
// matching. Order matters only for documentation; alias registration
// is first-wins over sorted primary keys.
var identityFields = []string{"userid", "user_id", "id", "student_id"}

// baselineFields is the prioritized fallback order for the baseline
// text payload.
var baselineFields = []string{"response", "baseline_response", "feedback", "advice", "text"}

// adviceTitleFields and adviceBodyFields are the prioritized fallback
// orders for the two halves of the advice payload.
var (
	adviceTitleFields = []string{"student_advice_title", "advice_title", "title"}
	adviceBodyFields  = []string{"student_advice_body", "advice_body", "body"}
)

// reservedFields never serve as a free-form payload fallback: they
// carry identity or metadata, not display text.
var reservedFields = map[string]bool{
	"userid":     true,
	"user_id":    true,
	"id":         true,
	"student_id": true,
	"grade":      true,
	"step":       true,
}

// stringField returns the first non-empty string value among the named
// fields, in order. Non-string values are skipped.
func stringField(e Entry, names ...string) string {
	for _, name := range names {
		if s, ok := e[name].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// freeStringField returns the value of the lexicographically smallest
// non-reserved field holding a non-empty string. It is the last-resort
// fallback when none of the prioritized field names are present;
// choosing the smallest key keeps the result independent of map
// iteration order.
func freeStringField(e Entry) string {
	keys := make([]string, 0, len(e))
	for k := range e {
		if reservedFields[k] {
			continue
		}
		if s, ok := e[k].(string); ok && s != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return e[keys[0]].(string)
}

// aliases returns the entry's alias set: its primary key plus every
// non-empty string value stored under an identity field.
func aliases(primary string, e Entry) []string {
	out := []string{primary}
	for _, f := range identityFields {
		if s, ok := e[f].(string); ok && s != "" && s != primary {
			out = append(out, s)
		}
	}
	return out
}
