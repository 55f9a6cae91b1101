// Package decode holds tolerant decoders for record fields whose wire
// encoding varies between producers.
//
// List fields (team members, workout exercises) may arrive as a native JSON
// array, as a string holding a JSON-encoded array, or as null. Array elements
// are normally strings, but some storage layers serialize them as one-entry
// objects; those are unwrapped to their first value.
package decode

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// List decodes raw into a list of display strings. It never fails: a string
// that is not a JSON array becomes a one-element list holding that string,
// and null, absent or otherwise unusable values become an empty list.
func List(raw json.RawMessage) []string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return []string{}
	}

	switch raw[0] {
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return []string{}
		}
		return elements(elems)
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || s == "" {
			return []string{}
		}
		return ListString(s)
	default:
		return []string{}
	}
}

// ListString decodes a string that is expected to hold a JSON array.
func ListString(s string) []string {
	if s == "" {
		return []string{}
	}
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(s), &elems); err != nil || elems == nil {
		return []string{s}
	}
	return elements(elems)
}

func elements(elems []json.RawMessage) []string {
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		out = append(out, Display(e))
	}
	return out
}

// Display renders a single JSON value as a display string. Strings are
// returned unquoted, objects are unwrapped to their first value in document
// order, and any other value is returned as its JSON text.
func Display(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	case '{':
		if v, ok := firstValue(raw); ok {
			return Display(v)
		}
		return compact(raw)
	case '[':
		return compact(raw)
	}
	return string(raw)
}

// firstValue returns the value of the first key of a JSON object.
func firstValue(raw json.RawMessage) (json.RawMessage, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, false
	}
	if !dec.More() {
		return nil, false
	}
	if _, err := dec.Token(); err != nil {
		return nil, false
	}
	var v json.RawMessage
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	return v, true
}

func compact(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// Number coerces a JSON number or numeric string to float64. Anything else,
// including malformed numeric strings, counts as zero.
func Number(raw json.RawMessage) float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		return parseNumber(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return parseNumber(string(raw))
	default:
		return 0
	}
}

// decimalPattern is a plain decimal number with an optional exponent. It
// keeps out the NaN, Inf and hex forms strconv.ParseFloat also accepts.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if !decimalPattern.MatchString(s) {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
