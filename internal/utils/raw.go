package utils

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Accessors for untrusted upstream JSON decoded into interface{} values.
// The property data source is known to move fields around, change their
// types and nest them differently between responses, so every accessor
// here tolerates missing keys, wrong types and nil values.

// AsMap returns v as a JSON object, or nil.
func AsMap(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	return m
}

// AsSlice returns v as a JSON array, or nil.
func AsSlice(v interface{}) []interface{} {
	s, _ := v.([]interface{})
	return s
}

// Dig walks a path of object keys starting at m and returns the value at
// the end, or nil if any intermediate step is missing or not an object.
func Dig(m map[string]interface{}, path ...string) interface{} {
	var cur interface{} = m
	for _, key := range path {
		obj := AsMap(cur)
		if obj == nil {
			return nil
		}
		cur = obj[key]
	}
	return cur
}

// AsString converts v to a string. Numbers are formatted, everything else
// yields "".
func AsString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	}
	return ""
}

// AsNumber converts v to a float64 if possible. Numeric strings are parsed
// because some upstream variants serialize prices and counts as strings.
func AsNumber(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(t), ",", "")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	case int:
		return float64(t), true
	}
	return 0, false
}

// AsBool converts v to a bool. String "true"/"false" is accepted.
func AsBool(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(t, "true")
	}
	return false
}

// FirstString tries each path in order and returns the first non-empty
// string found.
func FirstString(m map[string]interface{}, paths ...[]string) string {
	for _, p := range paths {
		if s := AsString(Dig(m, p...)); s != "" {
			return s
		}
	}
	return ""
}

// FirstNumber tries each path in order and returns the first value that
// converts to a number.
func FirstNumber(m map[string]interface{}, paths ...[]string) (float64, bool) {
	for _, p := range paths {
		if n, ok := AsNumber(Dig(m, p...)); ok {
			return n, true
		}
	}
	return 0, false
}

// FirstInt is FirstNumber truncated to int.
func FirstInt(m map[string]interface{}, paths ...[]string) (int, bool) {
	n, ok := FirstNumber(m, paths...)
	if !ok {
		return 0, false
	}
	return int(n), true
}

// StringList extracts a list of strings from v. Elements may be plain
// strings or objects carrying the string under any of the given keys
// (e.g. photos as [{"url": ...}] or as bare URL strings).
func StringList(v interface{}, keys ...string) []string {
	items := AsSlice(v)
	if items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := AsString(item); s != "" {
			out = append(out, s)
			continue
		}
		obj := AsMap(item)
		if obj == nil {
			continue
		}
		for _, key := range keys {
			if s := AsString(obj[key]); s != "" {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// ToISO8601 converts an upstream timestamp to an ISO-8601 UTC string.
// Accepts epoch seconds (with optional fraction), epoch milliseconds and
// already-formatted date strings; anything else yields "".
func ToISO8601(v interface{}) string {
	switch t := v.(type) {
	case float64:
		return epochToISO(t)
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return epochToISO(f)
		}
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return ""
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts.UTC().Format(time.RFC3339)
			}
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return epochToISO(f)
		}
	}
	return ""
}

func epochToISO(f float64) string {
	if f <= 0 {
		return ""
	}
	// Values past the year 33658 in seconds are epoch milliseconds.
	sec := int64(f)
	if sec > 1e12 {
		return time.UnixMilli(sec).UTC().Format(time.RFC3339)
	}
	frac := f - float64(sec)
	return time.Unix(sec, int64(frac*1e9)).UTC().Format(time.RFC3339)
}
