package afterbuy

import (
	"encoding/xml"
	"fmt"
	"math"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
)

// DateLayout is the only date format the Afterbuy interface reads and writes.
const DateLayout = "02.01.2006 15:04:05"

// FloatPrecision is the number of fraction digits written for Float values.
const FloatPrecision = 2

// wireLocation is the timezone Afterbuy assumes for every date on the wire.
var wireLocation = mustLoadLocation("Europe/Berlin")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("afterbuy: failed to load location %s: %v", name, err))
	}
	return loc
}

// WireLocation returns the timezone used when formatting and parsing dates.
func WireLocation() *time.Location {
	return wireLocation
}

// Date is a timestamp encoded as "dd.mm.yyyy hh:mm:ss" in Berlin local time.
// The zero Date encodes as an empty element and decodes from one.
//
// The wire carries no offset. In the hour repeated when summer time ends
// both instants encode to the same string, which always decodes to the
// earlier one.
type Date struct {
	time.Time
}

// NewDate wraps t, dropping sub-second precision the wire cannot carry.
func NewDate(t time.Time) Date {
	return Date{Time: t.Truncate(time.Second)}
}

// ParseDate parses s with DateLayout in the wire timezone.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, wireLocation)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected layout %q: %w", s, DateLayout, err)
	}
	return Date{Time: resolveFold(t)}, nil
}

// resolveFold returns the earlier of the two instants sharing the wall clock
// of t in the repeated autumn hour, and t itself everywhere else.
func resolveFold(t time.Time) time.Time {
	if earlier := t.Add(-time.Hour); earlier.Format(DateLayout) == t.Format(DateLayout) {
		return earlier
	}
	return t
}

// String formats the date the way it is written to the wire.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.In(wireLocation).Format(DateLayout)
}

// Equal reports whether d and other are the same instant.
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

func (d Date) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return e.EncodeElement(d.String(), start)
}

func (d *Date) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	var s string
	if err := dec.DecodeElement(&s, &start); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return fmt.Errorf("element %s: %w", start.Name.Local, err)
	}
	*d = parsed
	return nil
}

// Float is a decimal number written with a comma separator and exactly
// FloatPrecision fraction digits. Extra digits are truncated, never rounded.
type Float float64

// ParseFloat accepts "12,5", "12.50", "1.234,56" and plain integers.
// An empty string is zero.
func ParseFloat(s string) (Float, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	normalized := s
	if strings.Contains(normalized, ",") {
		normalized = strings.ReplaceAll(normalized, ".", "")
		normalized = strings.Replace(normalized, ",", ".", 1)
	}
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	v, _ := d.Float64()
	return Float(v), nil
}

// Format returns the wire representation or an error for NaN and infinities.
func (f Float) Format() (string, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", fmt.Errorf("unsupported float value %v", v)
	}
	d := decimal.NewFromFloat(v).Truncate(FloatPrecision)
	return strings.Replace(d.StringFixed(FloatPrecision), ".", ",", 1), nil
}

func (f Float) String() string {
	s, err := f.Format()
	if err != nil {
		return fmt.Sprint(float64(f))
	}
	return s
}

func (f Float) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	s, err := f.Format()
	if err != nil {
		return fmt.Errorf("element %s: %w", start.Name.Local, err)
	}
	return e.EncodeElement(s, start)
}

func (f *Float) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	var s string
	if err := dec.DecodeElement(&s, &start); err != nil {
		return err
	}
	parsed, err := ParseFloat(s)
	if err != nil {
		return fmt.Errorf("element %s: %w", start.Name.Local, err)
	}
	*f = parsed
	return nil
}

// Bool is written as 1 or 0.
type Bool bool

func (b Bool) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	v := "0"
	if b {
		v = "1"
	}
	return e.EncodeElement(v, start)
}

func (b *Bool) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	var s string
	if err := dec.DecodeElement(&s, &start); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true":
		*b = true
	case "0", "false", "":
		*b = false
	default:
		return fmt.Errorf("element %s: invalid boolean %q", start.Name.Local, s)
	}
	return nil
}

// CData is a string written inside a CDATA section. Afterbuy expects
// passwords this way so that markup characters pass through untouched.
type CData string

func (c CData) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return e.EncodeElement(struct {
		Value string `xml:",cdata"`
	}{string(c)}, start)
}

func (c *CData) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	var s string
	if err := dec.DecodeElement(&s, &start); err != nil {
		return err
	}
	*c = CData(s)
	return nil
}
