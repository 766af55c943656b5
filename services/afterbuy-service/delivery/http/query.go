package http

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// queryParser collects the first parse error of a query string
type queryParser struct {
	values url.Values
	err    error
}

func newQueryParser(values url.Values) *queryParser {
	return &queryParser{values: values}
}

func (p *queryParser) fail(name, expected, raw string) {
	if p.err == nil {
		p.err = fmt.Errorf("query parameter %s must be %s, got %q", name, expected, raw)
	}
}

// list returns every value of name. Comma separated values are split and
// trimmed; empty items are kept so validation can reject them.
func (p *queryParser) list(name string) []string {
	var out []string
	for _, raw := range p.values[name] {
		for _, v := range strings.Split(raw, ",") {
			out = append(out, strings.TrimSpace(v))
		}
	}
	return out
}

func (p *queryParser) Int(name string, def int) int {
	raw := p.values.Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(name, "an integer", raw)
		return def
	}
	return v
}

func (p *queryParser) Ints(name string) []int {
	var out []int
	for _, raw := range p.list(name) {
		v, err := strconv.Atoi(raw)
		if err != nil {
			p.fail(name, "a list of integers", raw)
			return nil
		}
		out = append(out, v)
	}
	return out
}

func (p *queryParser) Strings(name string) []string {
	return p.list(name)
}

// Bool returns nil when the parameter is absent
func (p *queryParser) Bool(name string) *bool {
	raw := p.values.Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(name, "a boolean", raw)
		return nil
	}
	return &v
}

// Time parses RFC 3339 timestamps and returns nil when the parameter is absent
func (p *queryParser) Time(name string) *time.Time {
	raw := p.values.Get(name)
	if raw == "" {
		return nil
	}
	v, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		p.fail(name, "an RFC 3339 timestamp", raw)
		return nil
	}
	return &v
}

func (p *queryParser) Err() error {
	return p.err
}
