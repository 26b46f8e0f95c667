package metadata

import (
	"strconv"
)

// Date is the year/month pair extracted from a CSL date object.
// Empty strings mean the part is absent.
type Date struct {
	Year  string
	Month string
}

// DateParts extracts year and month from field.date-parts[0], e.g.
// {"issued": {"date-parts": [[2023, 4]]}}. Month is empty when the inner
// sequence has fewer than two elements.
func (v Value) DateParts(field string) Date {
	parts := v.Get(field).Get("date-parts").Index(0)
	if parts.Kind() != List {
		return Date{}
	}
	d := Date{Year: datePart(parts.Index(0))}
	if parts.Len() > 1 {
		d.Month = datePart(parts.Index(1))
	}
	return d
}

// datePart renders integral numbers without a fractional part; upstream
// occasionally serializes date parts as floats or strings.
func datePart(v Value) string {
	s, ok := v.Scalar()
	if !ok {
		return ""
	}
	if v.Kind() == Number {
		if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int64(f)) {
			return strconv.FormatInt(int64(f), 10)
		}
	}
	return s
}
