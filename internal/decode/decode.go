// Package decode translates coded proposal field values into human-readable
// labels. Decoding is routed by field name because the same code carries a
// different meaning under different fields.
package decode

import (
	"fmt"
	"strconv"
	"strings"
)

// Decode resolves a single raw value against the routing table.
//
// Passthrough fields come back untouched. Fields with an explicit map are
// looked up there; classification fields surface unmapped numeric codes as
// "Unknown (<code>)" so a gap in the table is visible in rendered text.
// Everything else falls back to the raw value.
func Decode(fieldName, value string) string {
	valueStr := strings.TrimSpace(value)
	if valueStr == "" {
		return ""
	}

	if _, ok := passthroughFields[fieldName]; ok {
		return valueStr
	}

	codes, ok := fieldDecodeTable[fieldName]
	if !ok {
		return valueStr
	}
	if decoded, ok := codes[valueStr]; ok {
		return decoded
	}
	if _, classified := classificationFields[fieldName]; classified && isDigits(valueStr) {
		return fmt.Sprintf("Unknown (%s)", valueStr)
	}
	return valueStr
}

// DecodeValue handles the loosely typed values that come out of parsed JSON.
// Numbers are rendered without a trailing ".0" so "1" still hits the maps.
func DecodeValue(fieldName string, value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return Decode(fieldName, v)
	case bool:
		return Decode(fieldName, strconv.FormatBool(v))
	case float64:
		if v == float64(int64(v)) {
			return Decode(fieldName, strconv.FormatInt(int64(v), 10))
		}
		return Decode(fieldName, strconv.FormatFloat(v, 'f', -1, 64))
	case int:
		return Decode(fieldName, strconv.Itoa(v))
	default:
		return Decode(fieldName, fmt.Sprintf("%v", v))
	}
}

// DecodeRecord walks a parsed JSON structure and decodes every leaf value
// under its field name. Nested objects and lists of objects are handled
// recursively; the safe section, for example, is a list of dicts.
func DecodeRecord(data any) any {
	switch v := data.(type) {
	case []any:
		decoded := make([]any, len(v))
		for i, item := range v {
			if _, ok := item.(map[string]any); ok {
				decoded[i] = DecodeRecord(item)
			} else {
				decoded[i] = item
			}
		}
		return decoded
	case map[string]any:
		decoded := make(map[string]any, len(v))
		for fieldName, value := range v {
			switch inner := value.(type) {
			case map[string]any:
				decoded[fieldName] = DecodeRecord(inner)
			case []any:
				items := make([]any, len(inner))
				for i, item := range inner {
					if _, ok := item.(map[string]any); ok {
						items[i] = DecodeRecord(item)
					} else {
						items[i] = DecodeValue(fieldName, item)
					}
				}
				decoded[fieldName] = items
			default:
				decoded[fieldName] = DecodeValue(fieldName, value)
			}
		}
		return decoded
	default:
		return data
	}
}

// DecodeFields decodes a flat field map, keeping the original keys.
func DecodeFields(fields map[string]any) map[string]string {
	decoded := make(map[string]string, len(fields))
	for fieldName, value := range fields {
		decoded[fieldName] = DecodeValue(fieldName, value)
	}
	return decoded
}

// HasDecoder reports whether a field is routed to an explicit code map.
func HasDecoder(fieldName string) bool {
	_, ok := fieldDecodeTable[fieldName]
	return ok
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
