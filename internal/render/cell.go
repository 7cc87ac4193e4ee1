package render

import (
	"strings"

	"github.com/mithrel/answerview/pkg/api"
)

// Coerce converts a cell value to its display string. It never fails:
// values that cannot be serialized fall back to a generic rendering.
func Coerce(v api.Value) string {
	switch v.Kind() {
	case api.KindNull:
		return ""
	case api.KindString:
		return v.AsString()
	case api.KindNumber:
		return api.FormatNumber(v.AsNumber())
	case api.KindBool:
		if v.AsBool() {
			return "true"
		}
		return "false"
	case api.KindTime:
		return api.FormatTime(v.AsTime())
	}
	b, err := v.MarshalJSON()
	if err != nil {
		return fallbackString(v)
	}
	return string(b)
}

// Stringify converts a value the way String(value) does in a browser:
// null reads "null", arrays join their elements with commas and objects
// read "[object Object]". Column names and notes use it.
func Stringify(v api.Value) string {
	switch v.Kind() {
	case api.KindNull:
		return "null"
	case api.KindArray, api.KindObject:
		return fallbackString(v)
	}
	return Coerce(v)
}

func fallbackString(v api.Value) string {
	if v.IsArray() {
		parts := make([]string, 0, len(v.Elems()))
		for _, e := range v.Elems() {
			if e.IsArray() || e.IsObject() {
				parts = append(parts, fallbackString(e))
				continue
			}
			parts = append(parts, Coerce(e))
		}
		return strings.Join(parts, ",")
	}
	return "[object Object]"
}
