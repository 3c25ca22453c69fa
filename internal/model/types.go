package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ID is a record identifier. Documents written by older clients used bare
// numbers for some ids, so both JSON strings and numbers decode into it.
type ID string

// UnmarshalJSON accepts a JSON string or number
func (id *ID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		unq, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("model: invalid id %s: %w", s, err)
		}
		*id = ID(unq)
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("model: invalid id %s", s)
	}
	*id = ID(s)
	return nil
}

// Number is a float64 that also decodes from numeric strings such as "80".
type Number float64

// UnmarshalJSON accepts a JSON number or a string holding a number
func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		unq, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("model: invalid number %s: %w", s, err)
		}
		s = strings.TrimSpace(unq)
		if s == "" {
			*n = 0
			return nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("model: invalid number %q: %w", s, err)
	}
	*n = Number(f)
	return nil
}

// Float64 returns the number as a float64
func (n Number) Float64() float64 {
	return float64(n)
}

// Layouts a Timestamp is read from. Older clients stored times formatted
// for display with Date.toLocaleString.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"1/2/2006, 3:04:05 PM",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Timestamp is a record time. It decodes from RFC 3339, the en-US display
// format "6/1/2024, 8:00:00 AM" or epoch milliseconds. Text in no known
// layout is kept verbatim with a zero Time and written back unchanged.
type Timestamp struct {
	time.Time
	raw string
}

// NewTimestamp wraps t
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// Raw returns the stored text when it could not be parsed
func (t Timestamp) Raw() string {
	return t.raw
}

// MarshalJSON writes RFC 3339, or the original text if it was never parsed
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.raw != "" {
		return json.Marshal(t.raw)
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// UnmarshalJSON never fails: values it cannot interpret are kept as text
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	*t = Timestamp{}
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null" || s == "":
		return nil
	case strings.HasPrefix(s, `"`):
		unq, err := strconv.Unquote(s)
		if err != nil {
			t.raw = s
			return nil
		}
		*t = ParseTimestamp(unq)
	default:
		if ms, err := strconv.ParseFloat(s, 64); err == nil {
			t.Time = time.UnixMilli(int64(ms)).UTC()
			return nil
		}
		t.raw = s
	}
	return nil
}

// ParseTimestamp reads s in any of the accepted layouts, keeping it as raw
// text when none matches. Narrow and non-breaking spaces, which newer
// browsers put before AM/PM, count as plain spaces.
func ParseTimestamp(s string) Timestamp {
	norm := strings.NewReplacer("\u202f", " ", "\u00a0", " ").Replace(strings.TrimSpace(s))
	if norm == "" {
		return Timestamp{}
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, norm); err == nil {
			return Timestamp{Time: ts.UTC()}
		}
	}
	return Timestamp{raw: s}
}

// Meta holds the generated fields shared by every per-id record.
type Meta struct {
	ID        ID         `json:"id"`
	CreatedAt Timestamp  `json:"createdAt"`
	UpdatedAt *Timestamp `json:"updatedAt,omitempty"`
}

// RecordID returns the record id as a plain string
func (m *Meta) RecordID() string {
	return string(m.ID)
}

// Init assigns the generated id and creation time. UpdatedAt is cleared
// because a freshly created record has never been updated.
func (m *Meta) Init(id string, at time.Time) {
	m.ID = ID(id)
	m.CreatedAt = NewTimestamp(at)
	m.UpdatedAt = nil
}

// Touch stamps the record as updated at the given time
func (m *Meta) Touch(at time.Time) {
	ts := NewTimestamp(at)
	m.UpdatedAt = &ts
}

// Patch is a partial update of a record of type T.
type Patch[T any] interface {
	Apply(rec *T)
}
