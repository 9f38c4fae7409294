// Package diagnostics serializes a compiler.Result to JSON for the
// --json flag on the compile/check subcommands, wiring the tidwall
// gjson/sjson pair rather than encoding/json, matching the rest of the
// ambient stack's preference for that library family over hand-rolled
// struct-tag marshaling.
package diagnostics

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/jlallas384/plc/internal/compiler"
)

// Encode renders res as a JSON document:
//
//	{
//	  "success": bool,
//	  "errors": [{"stage": "...", "message": "...", "line": N, "column": N}, ...],
//	  "cCode": "...",   // present only when code generation ran
//	  "output": "..."   // present only when Run succeeded
//	}
func Encode(res compiler.Result) (string, error) {
	doc := "{}"
	var err error

	if doc, err = sjson.Set(doc, "success", res.Success); err != nil {
		return "", err
	}
	if doc, err = sjson.Set(doc, "errors", []any{}); err != nil {
		return "", err
	}
	for _, e := range res.Errors {
		doc, err = sjson.Set(doc, "errors.-1", map[string]any{
			"stage":   string(e.Stage),
			"message": e.Message,
			"line":    e.Line,
			"column":  e.Column,
		})
		if err != nil {
			return "", err
		}
	}
	if res.CCode != "" {
		if doc, err = sjson.Set(doc, "cCode", res.CCode); err != nil {
			return "", err
		}
	}
	if res.Output != "" {
		if doc, err = sjson.Set(doc, "output", res.Output); err != nil {
			return "", err
		}
	}
	return doc, nil
}

// Success reports the top-level "success" field of an Encode'd document.
func Success(doc string) bool {
	return gjson.Get(doc, "success").Bool()
}

// ErrorCount reports the length of the "errors" array of an Encode'd
// document.
func ErrorCount(doc string) int {
	return int(gjson.Get(doc, "errors.#").Int())
}

// FirstErrorMessage returns the "message" field of the first entry in
// the "errors" array, or "" if there are none.
func FirstErrorMessage(doc string) string {
	return gjson.Get(doc, "errors.0.message").String()
}
