package main

import "net/http"

// CommentPayload links the comment to its article by numeric id; the stable
// documentId is never used in relation payloads.
type CommentPayload struct {
	Content string `json:"content"`
	Article int    `json:"article,omitempty"`
}

type CommentService struct {
	api *APIClient
}

func NewCommentService(api *APIClient) *CommentService {
	return &CommentService{api: api}
}

func (s *CommentService) Create(payload CommentPayload) (Comment, error) {
	blob, err := s.api.sendData(http.MethodPost, "/comments", payload)
	if err != nil {
		return Comment{}, err
	}
	var comment Comment
	if err := decodeSingle(blob, &comment); err != nil {
		return Comment{}, err
	}
	return comment, nil
}

func (s *CommentService) Update(docID string, content string) (Comment, error) {
	blob, err := s.api.sendData(http.MethodPut, "/comments/"+docID, CommentPayload{Content: content})
	if err != nil {
		return Comment{}, err
	}
	var comment Comment
	if err := decodeSingle(blob, &comment); err != nil {
		return Comment{}, err
	}
	return comment, nil
}

func (s *CommentService) Delete(docID string) error {
	_, err := s.api.do(http.MethodDelete, "/comments/"+docID, nil, nil, "")
	return err
}
