package main

import "sync"

type CategoryStore struct {
	mu         sync.Mutex
	categories []Category
	pagination Pagination
	current    *Category
	params     ListParams
	loading    bool
	submitting bool
	err        string
	pendingDoc string

	svc *CategoryService
}

func NewCategoryStore(svc *CategoryService) *CategoryStore {
	return &CategoryStore{svc: svc, params: defaultCategoryParams()}
}

func (s *CategoryStore) Categories() []Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Category(nil), s.categories...)
}

func (s *CategoryStore) Pagination() Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

func (s *CategoryStore) Current() *Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	category := *s.current
	return &category
}

func (s *CategoryStore) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *CategoryStore) IsSubmitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

func (s *CategoryStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *CategoryStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

func (s *CategoryStore) ClearCurrent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

func (s *CategoryStore) Fetch(params ListParams) {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.params = s.params.Merge(params)
	query := s.params
	s.mu.Unlock()

	categories, pagination, err := s.svc.List(query)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return
	}
	s.categories = categories
	s.pagination = pagination
}

func (s *CategoryStore) FetchByID(docID string) *Category {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.current = nil
	s.pendingDoc = docID
	s.mu.Unlock()

	category, err := s.svc.Get(docID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendingDoc != docID {
		return nil
	}
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return nil
	}
	s.current = &category
	result := category
	return &result
}

// Create refetches the current page rather than splicing the new category
// in, same as the article list.
func (s *CategoryStore) Create(payload CategoryPayload) *Category {
	s.mu.Lock()
	s.submitting = true
	s.err = ""
	s.mu.Unlock()

	category, err := s.svc.Create(payload)
	s.mu.Lock()
	if err != nil {
		s.err = err.Error()
		s.submitting = false
		s.mu.Unlock()
		return nil
	}
	s.submitting = false
	s.mu.Unlock()

	s.Fetch(ListParams{})
	return &category
}

func (s *CategoryStore) Update(docID string, payload CategoryPayload) *Category {
	s.mu.Lock()
	s.submitting = true
	s.err = ""
	s.mu.Unlock()

	category, err := s.svc.Update(docID, payload)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	if err != nil {
		s.err = err.Error()
		return nil
	}
	for i := range s.categories {
		if s.categories[i].DocID == docID {
			s.categories[i] = category
			break
		}
	}
	if s.current != nil && s.current.DocID == docID {
		updated := category
		s.current = &updated
	}
	result := category
	return &result
}

func (s *CategoryStore) Delete(docID string) bool {
	s.mu.Lock()
	s.submitting = true
	s.err = ""
	s.mu.Unlock()

	err := s.svc.Delete(docID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	if err != nil {
		s.err = err.Error()
		return false
	}
	kept := s.categories[:0]
	for _, category := range s.categories {
		if category.DocID != docID {
			kept = append(kept, category)
		}
	}
	s.categories = kept
	if s.current != nil && s.current.DocID == docID {
		s.current = nil
	}
	return true
}

func (s *CategoryStore) SetPage(page int) {
	s.Fetch(ListParams{Page: page})
}
