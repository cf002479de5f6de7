package inspect

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// MaxDepth bounds array/object nesting in an inspection document.
const MaxDepth = 10000

// typeName returns the JSON name of a value's type, used in error messages.
func typeName(v gjson.Result) string {
	switch {
	case !v.Exists():
		return "nothing"
	case v.IsObject():
		return "object"
	case v.IsArray():
		return "array"
	}
	switch v.Type {
	case gjson.Null:
		return "null"
	case gjson.True, gjson.False:
		return "boolean"
	case gjson.Number:
		return "number"
	case gjson.String:
		return "string"
	default:
		return "unknown"
	}
}

// checkDepth scans raw JSON iteratively and fails once nesting exceeds max.
// Brackets inside string literals are ignored.
func checkDepth(data []byte, max int) error {
	depth := 0
	inString := false
	escaped := false
	for i, c := range data {
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[', '{':
			depth++
			if depth > max {
				return fmt.Errorf("nesting exceeds %d levels at offset %d", max, i)
			}
		case ']', '}':
			depth--
		}
	}
	return nil
}

// objectKeys returns an object's keys in document order. A repeated key is
// listed once, at its first position.
func objectKeys(obj gjson.Result) []string {
	keys := make([]string, 0)
	seen := make(map[string]bool)
	obj.ForEach(func(key, _ gjson.Result) bool {
		k := key.String()
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
		return true
	})
	return keys
}

// child returns the member key of obj, or a non-existent result.
func child(obj gjson.Result, key string) gjson.Result {
	var found gjson.Result
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			found = v
			return false
		}
		return true
	})
	return found
}
