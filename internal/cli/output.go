package cli

import (
	"encoding/json"
	"io"
)

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// emit writes v as JSON when --format json is set; otherwise it calls
// text to render the human-readable form.
func emit(w io.Writer, format string, v any, text func(io.Writer)) error {
	if format == "json" {
		return printJSON(w, v)
	}
	text(w)
	return nil
}

// slotA names which content occupies slot A for display.
func slotA(flip bool) string {
	if flip {
		return "advice"
	}
	return "baseline"
}
