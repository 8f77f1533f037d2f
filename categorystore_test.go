package main

import (
	"net/http"
	"net/url"
	"testing"
)

func testCategories() []Category {
	return []Category{
		{ID: 1, DocID: "cat-a", Name: "Alpine"},
		{ID: 2, DocID: "cat-b", Name: "Beach"},
	}
}

func TestCategoryFetchUsesOwnDefaults(t *testing.T) {
	var query url.Values
	app := newServerApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/categories" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		query = r.URL.Query()
		w.Write([]byte(`{"data":[{"id":1,"documentId":"cat-a","name":"Alpine"}],"meta":{"pagination":{"page":1,"pageSize":25,"pageCount":1,"total":1}}}`))
	}))

	app.categories.Fetch(ListParams{})
	if query.Get("pagination[page]") != "1" || query.Get("pagination[pageSize]") != "25" {
		t.Fatalf("unexpected query: %v", query)
	}
	if got := len(app.categories.Categories()); got != 1 {
		t.Fatalf("expected 1 category, got %d", got)
	}
}

func TestCategoryCreateRefetchesCurrentPage(t *testing.T) {
	listRequests := 0
	app := newServerApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			w.Write([]byte(`{"data":{"id":3,"documentId":"cat-c","name":"City"}}`))
		case r.Method == http.MethodGet:
			listRequests++
			w.Write([]byte(`{"data":[{"id":1,"documentId":"cat-a","name":"Alpine"},{"id":3,"documentId":"cat-c","name":"City"}],"meta":{"pagination":{"page":1,"pageSize":25,"pageCount":1,"total":2}}}`))
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))

	category := app.categories.Create(CategoryPayload{Name: "City"})
	if category == nil || category.DocID != "cat-c" {
		t.Fatalf("unexpected category: %+v", category)
	}
	if listRequests != 1 {
		t.Fatalf("expected one refetch, got %d", listRequests)
	}
	if got := len(app.categories.Categories()); got != 2 {
		t.Fatalf("expected server list, got %d categories", got)
	}
}

func TestCategoryUpdatePatchesListAndDetail(t *testing.T) {
	app := newServerApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/categories/cat-a" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"data":{"id":1,"documentId":"cat-a","name":"Arctic"}}`))
	}))

	app.categories.categories = testCategories()
	app.categories.current = &Category{ID: 1, DocID: "cat-a", Name: "Alpine"}

	if category := app.categories.Update("cat-a", CategoryPayload{Name: "Arctic"}); category == nil {
		t.Fatalf("update failed: %s", app.categories.Err())
	}
	list := app.categories.Categories()
	if list[0].Name != "Arctic" || list[1].Name != "Beach" {
		t.Fatalf("unexpected list: %+v", list)
	}
	current := app.categories.Current()
	if current == nil || current.Name != "Arctic" {
		t.Fatalf("unexpected detail: %+v", current)
	}
}

func TestCategoryDeleteShrinksList(t *testing.T) {
	app := newServerApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	app.categories.categories = testCategories()
	app.categories.current = &Category{ID: 2, DocID: "cat-b", Name: "Beach"}

	if !app.categories.Delete("cat-b") {
		t.Fatalf("delete failed: %s", app.categories.Err())
	}
	list := app.categories.Categories()
	if len(list) != 1 || list[0].DocID != "cat-a" {
		t.Fatalf("unexpected list: %+v", list)
	}
	if app.categories.Current() != nil {
		t.Fatalf("expected matching detail cleared")
	}
}

func TestCategoryDeleteFailure(t *testing.T) {
	app := newServerApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"message":"Forbidden"}}`))
	}))

	app.categories.categories = testCategories()
	if app.categories.Delete("cat-a") {
		t.Fatalf("expected delete failure")
	}
	if got := len(app.categories.Categories()); got != 2 {
		t.Fatalf("expected list intact, got %d", got)
	}
	if app.categories.Err() != "Forbidden" {
		t.Fatalf("unexpected error: %q", app.categories.Err())
	}
}
