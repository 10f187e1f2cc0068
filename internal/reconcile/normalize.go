package reconcile

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// roleLabels are generation artifacts: some baseline payloads arrive
// prefixed with the chat role that produced them.
var roleLabels = map[string]bool{
	"assistant": true,
	"system":    true,
	"user":      true,
}

// boilerplatePrefixes mark leading lines that merely announce the
// generated text and carry no content. Matched case-insensitively as
// prefixes after trimming.
var boilerplatePrefixes = []string{
	"here is the generated",
	"here follows",
	"the following is",
	"以下は",
}

// labelHeadings is the fixed set of label-style headings that read
// better with a trailing separator. Matched case-insensitively.
var labelHeadings = map[string]bool{
	"summary":          true,
	"good points":      true,
	"areas to improve": true,
	"next steps":       true,
}

// NormalizeText cleans one baseline payload for display:
//
//   - NFC-normalize the whole text
//   - drop leading role-label lines ("assistant", "system", "user",
//     optional trailing colon) and generated-text boilerplate lines
//   - flatten heading markers to two nesting depths: # through ###
//     become ####, anything deeper becomes #####
//   - append a ":" separator to label-style headings
//
// Only the leading block (lines before the first substantive line) is
// eligible for dropping; role labels inside the body are content.
func NormalizeText(s string) string {
	s = norm.NFC.String(s)
	lines := strings.Split(s, "\n")

	start := 0
	for start < len(lines) {
		trimmed := strings.TrimSpace(lines[start])
		if trimmed == "" || isRoleLabel(trimmed) || isBoilerplate(trimmed) {
			start++
			continue
		}
		break
	}
	lines = lines[start:]

	for i, line := range lines {
		lines[i] = normalizeHeading(line)
	}

	return strings.TrimRight(strings.Join(lines, "\n"), "\n \t")
}

func isRoleLabel(line string) bool {
	line = strings.TrimSuffix(strings.TrimSuffix(line, ":"), "：")
	return roleLabels[strings.ToLower(strings.TrimSpace(line))]
}

func isBoilerplate(line string) bool {
	lower := strings.ToLower(line)
	for _, prefix := range boilerplatePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// normalizeHeading rewrites a markdown heading line to one of the two
// fixed depths and attaches the label separator where applicable.
// Non-heading lines pass through unchanged.
func normalizeHeading(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	hashes := 0
	for hashes < len(trimmed) && trimmed[hashes] == '#' {
		hashes++
	}
	if hashes == 0 || hashes > 6 {
		return line
	}
	rest := strings.TrimSpace(trimmed[hashes:])
	if rest == "" {
		return line
	}

	marker := "####"
	if hashes > 3 {
		marker = "#####"
	}
	if labelHeadings[strings.ToLower(strings.TrimSuffix(rest, ":"))] && !strings.HasSuffix(rest, ":") {
		rest += ":"
	}
	return marker + " " + rest
}
