// Package datatable binds a server-paginated, sortable table to the page URL.
//
// A Controller keeps the page envelope, the sort spec and the loading flag for
// one table and reconciles them with the query parameters page_<id> and
// sort_<id> through an injected Location.
package datatable

import (
	"encoding/json"
	"strings"

	"github.com/go-faster/errors"
)

// Sort is the single-column sort spec. A nil *Sort means no explicit sort.
type Sort struct {
	ID   string `json:"id"`
	Desc bool   `json:"desc"`
}

func (s *Sort) clone() *Sort {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}

// Direction returns "asc" or "desc".
func (s *Sort) Direction() string {
	if s != nil && s.Desc {
		return "desc"
	}
	return "asc"
}

// EncodeSort renders the URL form of a sort spec. Nil encodes as "null".
func EncodeSort(s *Sort) string {
	if s == nil {
		return "null"
	}
	b, err := json.Marshal(s)
	if err != nil {
		return "null"
	}
	return string(b)
}

// DecodeSort parses the URL form produced by EncodeSort.
// Empty input and "null" both decode to nil.
func DecodeSort(raw string) (*Sort, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil, nil
	}
	var s Sort
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, errors.Wrap(err, "decode sort")
	}
	if strings.TrimSpace(s.ID) == "" {
		return nil, errors.New("decode sort: empty column id")
	}
	return &s, nil
}

// NextSort returns the sort spec produced by activating the header of columnID.
// The same column alternates asc and desc; any other column starts at asc.
func NextSort(current *Sort, columnID string) *Sort {
	if current != nil && current.ID == columnID {
		return &Sort{ID: columnID, Desc: !current.Desc}
	}
	return &Sort{ID: columnID, Desc: false}
}
