package main

import "testing"

func TestListParamsEncode(t *testing.T) {
	params := ListParams{
		Page:     2,
		PageSize: 9,
		Sort:     []string{"createdAt:desc"},
		Filters:  Filters{"title": {"$containsi": "bali"}},
	}
	values := params.Encode()
	if got := values.Get("pagination[page]"); got != "2" {
		t.Fatalf("expected page 2, got %q", got)
	}
	if got := values.Get("pagination[pageSize]"); got != "9" {
		t.Fatalf("expected pageSize 9, got %q", got)
	}
	if got := values.Get("sort"); got != "createdAt:desc" {
		t.Fatalf("expected sort, got %q", got)
	}
	if got := values.Get("filters[title][$containsi]"); got != "bali" {
		t.Fatalf("expected title filter, got %q", got)
	}
}

func TestEncodePopulateNested(t *testing.T) {
	params := defaultArticleParams()
	values := params.Encode()
	if got := values.Get("populate[user]"); got != "*" {
		t.Fatalf("expected populate[user]=*, got %q", got)
	}
	if got := values.Get("populate[category]"); got != "*" {
		t.Fatalf("expected populate[category]=*, got %q", got)
	}
	if got := values.Get("populate[comments][populate][user]"); got != "*" {
		t.Fatalf("expected nested comment populate, got %q", got)
	}
}

func TestEncodePopulateAll(t *testing.T) {
	values := ListParams{Populate: Populate{All: true}}.Encode()
	if got := values.Get("populate"); got != "*" {
		t.Fatalf("expected populate=*, got %q", got)
	}
}

func TestMergeKeepsUnrelatedFields(t *testing.T) {
	base := defaultArticleParams()
	filtered := base.Merge(ListParams{Filters: Filters{"title": {"$containsi": "x"}}, Page: 1})
	paged := filtered.Merge(ListParams{Page: 2})

	if paged.Page != 2 {
		t.Fatalf("expected page 2, got %d", paged.Page)
	}
	if paged.PageSize != defaultPageSize {
		t.Fatalf("expected page size kept, got %d", paged.PageSize)
	}
	if got := paged.Filters["title"]["$containsi"]; got != "x" {
		t.Fatalf("expected filter retained through page change, got %v", got)
	}
	if len(paged.Sort) != 1 || paged.Sort[0] != "createdAt:desc" {
		t.Fatalf("expected sort retained, got %v", paged.Sort)
	}
}

func TestMergePaginationFieldwise(t *testing.T) {
	base := ListParams{Page: 3, PageSize: 25}
	merged := base.Merge(ListParams{PageSize: 50})
	if merged.Page != 3 || merged.PageSize != 50 {
		t.Fatalf("expected field-wise merge, got %+v", merged)
	}
}

func TestDefaultParams(t *testing.T) {
	params := defaultArticleParams()
	if params.Page != 1 || params.PageSize != 9 {
		t.Fatalf("unexpected defaults: %+v", params)
	}
	if params.Sort[0] != "createdAt:desc" {
		t.Fatalf("unexpected default sort: %v", params.Sort)
	}
	if defaultCategoryParams().PageSize != 25 {
		t.Fatalf("unexpected category page size")
	}
}
