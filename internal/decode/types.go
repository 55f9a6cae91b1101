package decode

import (
	"encoding/json"
	"strconv"
	"time"
)

// Strings is a list field decoded with List. It always marshals as a native
// JSON array.
type Strings []string

func (s *Strings) UnmarshalJSON(data []byte) error {
	*s = List(data)
	return nil
}

func (s Strings) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

// Float is a numeric field coerced with Number.
type Float float64

func (f *Float) UnmarshalJSON(data []byte) error {
	*f = Float(Number(data))
	return nil
}

// String formats the value without a trailing fraction when it is integral.
func (f Float) String() string {
	return strconv.FormatFloat(float64(f), 'f', -1, 64)
}

// Text is an opaque display value: strings are kept as-is, every other
// JSON value keeps its literal text. Null decodes to the empty string.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = ""
		return nil
	}
	*t = Text(Display(data))
	return nil
}

// Date parses a YYYY-MM-DD calendar date as a civil date in UTC, so that the
// day never shifts with the local timezone.
func Date(s string) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders a YYYY-MM-DD date as "January 2, 2006". Values that do
// not parse are returned unchanged.
func FormatDate(s string) string {
	t, ok := Date(s)
	if !ok {
		return s
	}
	return t.Format("January 2, 2006")
}
