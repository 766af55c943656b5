package afterbuy

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Filter names as they appear in <FilterName>.
const (
	FilterNameDefault         = "DefaultFilter"
	FilterNameOrderID         = "OrderID"
	FilterNameProductID       = "ProductID"
	FilterNameAnr             = "Anr"
	FilterNameEAN             = "Ean"
	FilterNameCatalogID       = "CatalogID"
	FilterNameTag             = "Tag"
	FilterNamePlatform        = "Plattform"
	FilterNameUserDefinedFlag = "UserDefinedFlag"
	FilterNameLevel           = "Level"
	FilterNameRangeID         = "RangeID"
	FilterNameDate            = "DateFilter"
)

// Filter narrows the result set of a Get call. Each filter is written as
// one <Filter> element inside <DataFilter>, in the order given.
type Filter interface {
	FilterName() string
	FilterValues() FilterValues
}

// FilterValues is the <FilterValues> block of a filter. Only the fields a
// filter sets are written.
type FilterValues struct {
	DateFrom  *Date    `xml:"DateFrom,omitempty"`
	DateTo    *Date    `xml:"DateTo,omitempty"`
	LevelFrom *int     `xml:"LevelFrom,omitempty"`
	LevelTo   *int     `xml:"LevelTo,omitempty"`
	ValueFrom *int     `xml:"ValueFrom,omitempty"`
	ValueTo   *int     `xml:"ValueTo,omitempty"`
	Values    []string `xml:"FilterValue"`
}

func (v FilterValues) empty() bool {
	return v.DateFrom == nil && v.DateTo == nil &&
		v.LevelFrom == nil && v.LevelTo == nil &&
		v.ValueFrom == nil && v.ValueTo == nil &&
		len(v.Values) == 0
}

type wireFilter struct {
	Name   string       `xml:"FilterName"`
	Values FilterValues `xml:"FilterValues"`
}

// DefaultFilter selects one of Afterbuy's predefined result sets,
// e.g. "NotCompletedAuctions" for sold items or "AllSets" for products.
type DefaultFilter struct {
	Values []string
}

func (f DefaultFilter) FilterName() string { return FilterNameDefault }

func (f DefaultFilter) FilterValues() FilterValues {
	return FilterValues{Values: f.Values}
}

type OrderIDFilter struct {
	IDs []int
}

func (f OrderIDFilter) FilterName() string { return FilterNameOrderID }

func (f OrderIDFilter) FilterValues() FilterValues {
	return FilterValues{Values: itoaAll(f.IDs)}
}

type ProductIDFilter struct {
	IDs []int
}

func (f ProductIDFilter) FilterName() string { return FilterNameProductID }

func (f ProductIDFilter) FilterValues() FilterValues {
	return FilterValues{Values: itoaAll(f.IDs)}
}

// AnrFilter matches products by article number.
type AnrFilter struct {
	Anrs []string
}

func (f AnrFilter) FilterName() string { return FilterNameAnr }

func (f AnrFilter) FilterValues() FilterValues {
	return FilterValues{Values: f.Anrs}
}

type EANFilter struct {
	EANs []string
}

func (f EANFilter) FilterName() string { return FilterNameEAN }

func (f EANFilter) FilterValues() FilterValues {
	return FilterValues{Values: f.EANs}
}

type CatalogIDFilter struct {
	IDs []int
}

func (f CatalogIDFilter) FilterName() string { return FilterNameCatalogID }

func (f CatalogIDFilter) FilterValues() FilterValues {
	return FilterValues{Values: itoaAll(f.IDs)}
}

type TagFilter struct {
	Tags []string
}

func (f TagFilter) FilterName() string { return FilterNameTag }

func (f TagFilter) FilterValues() FilterValues {
	return FilterValues{Values: f.Tags}
}

// PlatformFilter restricts results to one sales channel, e.g. "eBay" or "Shop".
type PlatformFilter struct {
	Value string
}

func (f PlatformFilter) FilterName() string { return FilterNamePlatform }

func (f PlatformFilter) FilterValues() FilterValues {
	if f.Value == "" {
		return FilterValues{}
	}
	return FilterValues{Values: []string{f.Value}}
}

type UserDefinedFlagFilter struct {
	IDs []int
}

func (f UserDefinedFlagFilter) FilterName() string { return FilterNameUserDefinedFlag }

func (f UserDefinedFlagFilter) FilterValues() FilterValues {
	return FilterValues{Values: itoaAll(f.IDs)}
}

// LevelFilter selects products or catalogs within an inclusive level range.
type LevelFilter struct {
	From int
	To   int
}

func (f LevelFilter) FilterName() string { return FilterNameLevel }

func (f LevelFilter) FilterValues() FilterValues {
	from, to := f.From, f.To
	return FilterValues{LevelFrom: &from, LevelTo: &to}
}

func (f LevelFilter) Validate() error {
	if f.From > f.To {
		return fmt.Errorf("level range %d..%d is inverted", f.From, f.To)
	}
	return nil
}

// RangeIDFilter selects ids within an inclusive range.
type RangeIDFilter struct {
	From int
	To   int
}

func (f RangeIDFilter) FilterName() string { return FilterNameRangeID }

func (f RangeIDFilter) FilterValues() FilterValues {
	from, to := f.From, f.To
	return FilterValues{ValueFrom: &from, ValueTo: &to}
}

func (f RangeIDFilter) Validate() error {
	if f.From > f.To {
		return fmt.Errorf("id range %d..%d is inverted", f.From, f.To)
	}
	return nil
}

// DateField names the date a DateFilter applies to.
type DateField string

const (
	DateFieldModDate        DateField = "ModDate"
	DateFieldAuctionEndDate DateField = "AuctionEndDate"
	DateFieldPayDate        DateField = "PayDate"
	DateFieldShippingDate   DateField = "ShippingDate"
	DateFieldMailDate       DateField = "MailDate"
	DateFieldLastSale       DateField = "LastSale"
)

// DateFilter selects records whose Field lies between From and To.
// A zero bound is left open.
type DateFilter struct {
	Field DateField
	From  time.Time
	To    time.Time
}

func (f DateFilter) FilterName() string { return FilterNameDate }

func (f DateFilter) FilterValues() FilterValues {
	v := FilterValues{Values: []string{string(f.Field)}}
	if !f.From.IsZero() {
		from := NewDate(f.From)
		v.DateFrom = &from
	}
	if !f.To.IsZero() {
		to := NewDate(f.To)
		v.DateTo = &to
	}
	return v
}

func (f DateFilter) Validate() error {
	if f.Field == "" {
		return errors.New("date filter needs a field")
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return fmt.Errorf("date range %s..%s is inverted", NewDate(f.From), NewDate(f.To))
	}
	return nil
}

type filterValidator interface {
	Validate() error
}

// filterSet lists the filter names an operation accepts. A nil set accepts any.
type filterSet map[string]struct{}

func newFilterSet(names ...string) filterSet {
	s := make(filterSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

var (
	shopProductFilters = newFilterSet(FilterNameProductID, FilterNameAnr, FilterNameEAN, FilterNameTag,
		FilterNameDefault, FilterNameLevel, FilterNameRangeID, FilterNameDate)
	shopCatalogFilters = newFilterSet(FilterNameCatalogID, FilterNameLevel, FilterNameRangeID)
	soldItemFilters    = newFilterSet(FilterNameOrderID, FilterNameDefault, FilterNameDate, FilterNamePlatform,
		FilterNameUserDefinedFlag, FilterNameRangeID, FilterNameTag)
	paymentServiceFilters = newFilterSet(FilterNameDefault, FilterNamePlatform)
)

// encodeFilters checks every filter against the accepted set and converts
// them to their wire form, keeping the caller's order.
func encodeFilters(callName string, allowed filterSet, filters []Filter) ([]wireFilter, error) {
	if len(filters) == 0 {
		return nil, nil
	}
	out := make([]wireFilter, 0, len(filters))
	for i, f := range filters {
		key := "Filters[" + strconv.Itoa(i) + "]"
		if f == nil {
			return nil, newInvalidArgument(callName, key, "filter must not be nil")
		}
		name := f.FilterName()
		if allowed != nil {
			if _, ok := allowed[name]; !ok {
				return nil, newInvalidArgument(callName, key, fmt.Sprintf("filter %s is not supported by %s", name, callName))
			}
		}
		if v, ok := f.(filterValidator); ok {
			if err := v.Validate(); err != nil {
				return nil, newInvalidArgument(callName, key, err.Error())
			}
		}
		values := f.FilterValues()
		if values.empty() {
			return nil, newInvalidArgument(callName, key, fmt.Sprintf("filter %s has no values", name))
		}
		out = append(out, wireFilter{Name: name, Values: values})
	}
	return out, nil
}

func itoaAll(ids []int) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = strconv.Itoa(id)
	}
	return out
}
