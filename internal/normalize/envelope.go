package normalize

import (
	"fmt"
)

// wrapperFields is the short, fixed list of field names capabilities have
// wrapped their section result in, tried in order.
var wrapperFields = []string{"result", "response", "data", "output", "content"}

// Unwrap locates the section-specific result object inside the response
// envelope. If no wrapper field holds an object, the top level is assumed
// to already be the result object.
func Unwrap(envelope map[string]interface{}) map[string]interface{} {
	for _, name := range wrapperFields {
		if inner, ok := envelope[name].(map[string]interface{}); ok {
			return inner
		}
	}
	return envelope
}

// ExtractWarnings collects warning strings from both the envelope and the
// unwrapped result object. Duplicates (envelope == result) collapse.
func ExtractWarnings(envelope, result map[string]interface{}) []string {
	warnings := stringList(envelope["warnings"])
	warnings = append(warnings, stringList(result["warnings"])...)
	return dedupe(warnings)
}

func dedupe(in []string) []string {
	if len(in) < 2 {
		return in
	}
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// =============================================================================
// LOOSE-TYPE ACCESSORS
// =============================================================================
//
// Capability responses are decoded JSON with no schema guarantee. These
// accessors coerce instead of asserting so one odd field never sinks a
// whole section.

// str coerces a value to a string; non-strings are stringified, nil is "".
func str(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case bool:
		return fmt.Sprintf("%t", t)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

// field returns m[key] coerced to a string.
func field(m map[string]interface{}, key string) string {
	return str(m[key])
}

// has reports whether the key is present with a non-empty value.
func has(m map[string]interface{}, key string) bool {
	v, ok := m[key]
	if !ok || v == nil {
		return false
	}
	switch t := v.(type) {
	case string:
		return t != ""
	case []interface{}:
		return true
	case map[string]interface{}:
		return true
	}
	return true
}

// objList returns m[key] as a list of objects, tolerating a single bare
// object.
func objList(m map[string]interface{}, key string) []map[string]interface{} {
	switch t := m[key].(type) {
	case []interface{}:
		out := make([]map[string]interface{}, 0, len(t))
		for _, e := range t {
			if em, ok := e.(map[string]interface{}); ok {
				out = append(out, em)
			}
		}
		return out
	case map[string]interface{}:
		return []map[string]interface{}{t}
	}
	return nil
}

// stringList coerces a value to a string slice.
func stringList(v interface{}) []string {
	switch t := v.(type) {
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s := str(e); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	}
	return nil
}

// flagged interprets an "applicable + paragraph" object. A bare string
// counts as applicable with that paragraph.
func flagged(v interface{}) (applicable bool, paragraph string) {
	switch t := v.(type) {
	case map[string]interface{}:
		paragraph = field(t, "paragraph")
		if paragraph == "" {
			paragraph = field(t, "text")
		}
		switch a := t["applicable"].(type) {
		case bool:
			applicable = a
		case string:
			applicable = a == "true" || a == "ja" || a == "yes"
		case nil:
			applicable = paragraph != ""
		}
	case string:
		applicable = t != ""
		paragraph = t
	}
	return applicable, paragraph
}
