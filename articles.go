package main

import "net/http"

// ArticlePayload is the mutation shape for articles. Category is the
// numeric relation id, not the documentId.
type ArticlePayload struct {
	Title         string `json:"title,omitempty"`
	Description   string `json:"description,omitempty"`
	Category      int    `json:"category,omitempty"`
	CoverImageURL string `json:"cover_image_url,omitempty"`
}

type ArticleService struct {
	api *APIClient
}

func NewArticleService(api *APIClient) *ArticleService {
	return &ArticleService{api: api}
}

func (s *ArticleService) List(params ListParams) ([]Article, Pagination, error) {
	blob, err := s.api.do(http.MethodGet, "/articles", params.Encode(), nil, "")
	if err != nil {
		return nil, Pagination{}, err
	}
	var articles []Article
	meta, err := decodeList(blob, &articles)
	if err != nil {
		return nil, Pagination{}, err
	}
	return articles, meta, nil
}

func (s *ArticleService) Get(docID string, populate Populate) (Article, error) {
	params := ListParams{Populate: populate}
	blob, err := s.api.do(http.MethodGet, "/articles/"+docID, params.Encode(), nil, "")
	if err != nil {
		return Article{}, err
	}
	var article Article
	if err := decodeSingle(blob, &article); err != nil {
		return Article{}, err
	}
	return article, nil
}

func (s *ArticleService) Create(payload ArticlePayload) (Article, error) {
	blob, err := s.api.sendData(http.MethodPost, "/articles", payload)
	if err != nil {
		return Article{}, err
	}
	var article Article
	if err := decodeSingle(blob, &article); err != nil {
		return Article{}, err
	}
	return article, nil
}

func (s *ArticleService) Update(docID string, payload ArticlePayload) (Article, error) {
	blob, err := s.api.sendData(http.MethodPut, "/articles/"+docID, payload)
	if err != nil {
		return Article{}, err
	}
	var article Article
	if err := decodeSingle(blob, &article); err != nil {
		return Article{}, err
	}
	return article, nil
}

func (s *ArticleService) Delete(docID string) error {
	_, err := s.api.do(http.MethodDelete, "/articles/"+docID, nil, nil, "")
	return err
}
