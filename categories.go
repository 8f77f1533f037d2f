package main

import (
	"net/http"
	"sort"
)

type CategoryPayload struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

type CategoryService struct {
	api *APIClient
}

func NewCategoryService(api *APIClient) *CategoryService {
	return &CategoryService{api: api}
}

func (s *CategoryService) List(params ListParams) ([]Category, Pagination, error) {
	blob, err := s.api.do(http.MethodGet, "/categories", params.Encode(), nil, "")
	if err != nil {
		return nil, Pagination{}, err
	}
	var categories []Category
	meta, err := decodeList(blob, &categories)
	if err != nil {
		return nil, Pagination{}, err
	}
	return categories, meta, nil
}

// ListAll fetches one oversized page for selection widgets, sorted by name.
func (s *CategoryService) ListAll() ([]Category, error) {
	categories, _, err := s.List(ListParams{Page: 1, PageSize: 200})
	if err != nil {
		return nil, err
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

func (s *CategoryService) Get(docID string) (Category, error) {
	blob, err := s.api.do(http.MethodGet, "/categories/"+docID, nil, nil, "")
	if err != nil {
		return Category{}, err
	}
	var category Category
	if err := decodeSingle(blob, &category); err != nil {
		return Category{}, err
	}
	return category, nil
}

func (s *CategoryService) Create(payload CategoryPayload) (Category, error) {
	blob, err := s.api.sendData(http.MethodPost, "/categories", payload)
	if err != nil {
		return Category{}, err
	}
	var category Category
	if err := decodeSingle(blob, &category); err != nil {
		return Category{}, err
	}
	return category, nil
}

func (s *CategoryService) Update(docID string, payload CategoryPayload) (Category, error) {
	blob, err := s.api.sendData(http.MethodPut, "/categories/"+docID, payload)
	if err != nil {
		return Category{}, err
	}
	var category Category
	if err := decodeSingle(blob, &category); err != nil {
		return Category{}, err
	}
	return category, nil
}

func (s *CategoryService) Delete(docID string) error {
	_, err := s.api.do(http.MethodDelete, "/categories/"+docID, nil, nil, "")
	return err
}
