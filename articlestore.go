package main

import "sync"

// ArticleStore holds the article list, the loaded detail article, and the
// query params driving the list. Loading and submitting are tracked per
// concern so a detail fetch and a comment submission can be in flight at
// the same time.
type ArticleStore struct {
	mu                sync.Mutex
	articles          []Article
	pagination        Pagination
	current           *Article
	params            ListParams
	categories        []Category
	loading           bool
	submitting        bool
	submittingComment bool
	loadingCategories bool
	err               string
	commentErr        string
	pendingDoc        string

	svc         *ArticleService
	categorySvc *CategoryService
	commentSvc  *CommentService
}

func NewArticleStore(svc *ArticleService, categorySvc *CategoryService, commentSvc *CommentService) *ArticleStore {
	return &ArticleStore{
		svc:         svc,
		categorySvc: categorySvc,
		commentSvc:  commentSvc,
		params:      defaultArticleParams(),
	}
}

func (s *ArticleStore) Articles() []Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Article(nil), s.articles...)
}

func (s *ArticleStore) Pagination() Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

func (s *ArticleStore) Current() *Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	article := *s.current
	article.Comments = append([]Comment(nil), s.current.Comments...)
	return &article
}

func (s *ArticleStore) Params() ListParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

func (s *ArticleStore) AvailableCategories() []Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Category(nil), s.categories...)
}

func (s *ArticleStore) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *ArticleStore) IsSubmitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

func (s *ArticleStore) IsSubmittingComment() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submittingComment
}

func (s *ArticleStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *ArticleStore) CommentErr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commentErr
}

func (s *ArticleStore) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = msg
}

func (s *ArticleStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

func (s *ArticleStore) ClearCommentError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commentErr = ""
}

func (s *ArticleStore) ClearCurrent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.err = ""
	s.commentErr = ""
}

// Fetch merges params into the current query and reloads the list. Merging
// means a page change keeps an active filter and a filter change keeps the
// page size.
func (s *ArticleStore) Fetch(params ListParams) {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.params = s.params.Merge(params)
	query := s.params
	s.mu.Unlock()

	articles, pagination, err := s.svc.List(query)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return
	}
	s.articles = articles
	s.pagination = pagination
}

// FetchByID unconditionally drops the previous detail article before the
// fetch so a stale one is never shown for a different id. A response whose
// id no longer matches the most recent request is discarded.
func (s *ArticleStore) FetchByID(docID string) *Article {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.commentErr = ""
	s.current = nil
	s.pendingDoc = docID
	populate := s.params.Populate
	if populate.isZero() {
		populate = defaultArticleParams().Populate
	}
	s.mu.Unlock()

	article, err := s.svc.Get(docID, populate)
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
	s.current = &article
	result := article
	return &result
}

// Create does not splice the new article into the cached list; it refetches
// page 1 so the list keeps the server's ordering and pagination truth.
func (s *ArticleStore) Create(payload ArticlePayload) *Article {
	s.mu.Lock()
	s.submitting = true
	s.err = ""
	s.mu.Unlock()

	article, err := s.svc.Create(payload)
	s.mu.Lock()
	if err != nil {
		s.err = err.Error()
		s.submitting = false
		s.mu.Unlock()
		return nil
	}
	s.submitting = false
	s.mu.Unlock()

	s.Fetch(ListParams{Page: 1})
	return &article
}

// Update patches in place: the list entry and the loaded detail article,
// both keyed by documentId.
func (s *ArticleStore) Update(docID string, payload ArticlePayload) *Article {
	s.mu.Lock()
	s.submitting = true
	s.err = ""
	s.mu.Unlock()

	article, err := s.svc.Update(docID, payload)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	if err != nil {
		s.err = err.Error()
		return nil
	}
	for i := range s.articles {
		if s.articles[i].DocID == docID {
			s.articles[i] = article
			break
		}
	}
	if s.current != nil && s.current.DocID == docID {
		updated := article
		s.current = &updated
	}
	result := article
	return &result
}

func (s *ArticleStore) Delete(docID string) bool {
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
	kept := s.articles[:0]
	for _, article := range s.articles {
		if article.DocID != docID {
			kept = append(kept, article)
		}
	}
	s.articles = kept
	if s.current != nil && s.current.DocID == docID {
		s.current = nil
	}
	return true
}

func (s *ArticleStore) FetchAvailableCategories() {
	s.mu.Lock()
	if s.loadingCategories {
		s.mu.Unlock()
		return
	}
	s.loadingCategories = true
	s.mu.Unlock()

	categories, err := s.categorySvc.ListAll()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadingCategories = false
	if err != nil {
		s.err = err.Error()
		return
	}
	s.categories = categories
}

// AddComment reconciles only into the loaded detail article; the global
// list is untouched. With no detail loaded the network call still happens
// and there is simply nothing to reconcile into.
func (s *ArticleStore) AddComment(articleID int, content string) *Comment {
	s.mu.Lock()
	s.submittingComment = true
	s.commentErr = ""
	s.mu.Unlock()

	comment, err := s.commentSvc.Create(CommentPayload{Content: content, Article: articleID})
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submittingComment = false
	if err != nil {
		s.commentErr = err.Error()
		return nil
	}
	if s.current != nil {
		s.current.Comments = append(s.current.Comments, comment)
	}
	result := comment
	return &result
}

func (s *ArticleStore) EditComment(docID string, content string) *Comment {
	s.mu.Lock()
	s.submittingComment = true
	s.commentErr = ""
	s.mu.Unlock()

	comment, err := s.commentSvc.Update(docID, content)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submittingComment = false
	if err != nil {
		s.commentErr = err.Error()
		return nil
	}
	if s.current != nil {
		for i := range s.current.Comments {
			if s.current.Comments[i].DocID == docID {
				s.current.Comments[i] = comment
				break
			}
		}
	}
	result := comment
	return &result
}

func (s *ArticleStore) RemoveComment(docID string) bool {
	s.mu.Lock()
	s.submittingComment = true
	s.commentErr = ""
	s.mu.Unlock()

	err := s.commentSvc.Delete(docID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submittingComment = false
	if err != nil {
		s.commentErr = err.Error()
		return false
	}
	if s.current != nil {
		kept := s.current.Comments[:0]
		for _, comment := range s.current.Comments {
			if comment.DocID != docID {
				kept = append(kept, comment)
			}
		}
		s.current.Comments = kept
	}
	return true
}

func (s *ArticleStore) SetPage(page int) {
	s.Fetch(ListParams{Page: page})
}

func (s *ArticleStore) SetPageSize(pageSize int) {
	s.Fetch(ListParams{Page: 1, PageSize: pageSize})
}

// ApplyFilters resets to page 1; clearing every filter also restores the
// default sort.
func (s *ArticleStore) ApplyFilters(filters Filters) {
	params := ListParams{Filters: filters, Page: 1}
	if len(filters) == 0 {
		params.Sort = defaultArticleParams().Sort
	}
	s.Fetch(params)
}

func (s *ArticleStore) SetSort(sort ...string) {
	s.Fetch(ListParams{Sort: sort, Page: 1})
}
