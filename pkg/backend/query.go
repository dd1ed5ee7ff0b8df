package backend

import (
	"encoding/json"
	"errors"
	"net/url"
)

// Filter is one predicate in a service search query.
type Filter struct {
	Name string `json:"name"`
	Op   string `json:"op"`
	Val  any    `json:"val"`
}

// Query is a service search: a conjunction of filters, optionally asking
// for a single object instead of a list envelope.
type Query struct {
	Filters []Filter `json:"filters,omitempty"`
	Single  bool     `json:"single,omitempty"`
}

// Values encodes the query into the q= parameter the services expect.
func (q Query) Values() (url.Values, error) {
	b, err := json.Marshal(q)
	if err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}
	v := url.Values{}
	v.Set("q", string(b))
	return v, nil
}

// Eq builds an equality filter.
func Eq(name string, val any) Filter {
	return Filter{Name: name, Op: "==", Val: val}
}

// In builds a membership filter.
func In(name string, vals any) Filter {
	return Filter{Name: name, Op: "in", Val: vals}
}
