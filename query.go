package main

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
)

// Filters maps a field path to operator/value pairs, e.g.
// {"title": {"$containsi": "bali"}} encodes to filters[title][$containsi]=bali.
type Filters map[string]map[string]any

// Populate describes which relations the server should expand.
// A zero Populate encodes nothing; All encodes populate=*; Relations encode
// the nested bracket form (populate[comments][populate][user]=*).
type Populate struct {
	All       bool
	Relations map[string]Populate
}

func (p Populate) isZero() bool {
	return !p.All && len(p.Relations) == 0
}

// ListParams is the full query driving a list fetch. Zero fields mean
// "unset" so params can be merged incrementally.
type ListParams struct {
	Page     int
	PageSize int
	Filters  Filters
	Sort     []string
	Populate Populate
}

const defaultPageSize = 9

func defaultArticleParams() ListParams {
	return ListParams{
		Page:     1,
		PageSize: defaultPageSize,
		Sort:     []string{"createdAt:desc"},
		Filters:  Filters{},
		Populate: Populate{Relations: map[string]Populate{
			"user":     {},
			"category": {},
			"comments": {Relations: map[string]Populate{"user": {}}},
		}},
	}
}

func defaultCategoryParams() ListParams {
	return ListParams{Page: 1, PageSize: 25}
}

// Merge overlays set fields of other onto p. Pagination merges field-wise;
// filters, sort and populate are replaced only when other provides them, so
// a page change never discards an active filter and vice versa.
func (p ListParams) Merge(other ListParams) ListParams {
	if other.Page != 0 {
		p.Page = other.Page
	}
	if other.PageSize != 0 {
		p.PageSize = other.PageSize
	}
	if other.Filters != nil {
		p.Filters = other.Filters
	}
	if other.Sort != nil {
		p.Sort = other.Sort
	}
	if !other.Populate.isZero() {
		p.Populate = other.Populate
	}
	return p
}

// Encode renders the params in the server's bracket syntax.
func (p ListParams) Encode() url.Values {
	values := url.Values{}
	if p.Page != 0 {
		values.Set("pagination[page]", strconv.Itoa(p.Page))
	}
	if p.PageSize != 0 {
		values.Set("pagination[pageSize]", strconv.Itoa(p.PageSize))
	}
	for _, s := range p.Sort {
		values.Add("sort", s)
	}
	encodeFilters(values, p.Filters)
	encodePopulate(values, "populate", p.Populate)
	return values
}

func encodeFilters(values url.Values, filters Filters) {
	fields := make([]string, 0, len(filters))
	for field := range filters {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		ops := filters[field]
		opNames := make([]string, 0, len(ops))
		for op := range ops {
			opNames = append(opNames, op)
		}
		sort.Strings(opNames)
		for _, op := range opNames {
			values.Set("filters["+field+"]["+op+"]", fmt.Sprint(ops[op]))
		}
	}
}

func encodePopulate(values url.Values, prefix string, p Populate) {
	if p.isZero() {
		return
	}
	if p.All {
		values.Set(prefix, "*")
		return
	}
	names := make([]string, 0, len(p.Relations))
	for name := range p.Relations {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		child := p.Relations[name]
		if child.isZero() || child.All {
			values.Set(prefix+"["+name+"]", "*")
			continue
		}
		encodePopulate(values, prefix+"["+name+"][populate]", child)
	}
}
