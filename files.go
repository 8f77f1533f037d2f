package main

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
)

// FileInput is one binary file handle to upload.
type FileInput struct {
	Name   string
	Reader io.Reader
}

type FileService struct {
	api *APIClient
}

func NewFileService(api *APIClient) *FileService {
	return &FileService{api: api}
}

// Upload sends the files as repeated multipart "files" fields. The response
// is a bare JSON array of per-file metadata, no data envelope.
func (s *FileService) Upload(files []FileInput) ([]UploadedFile, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, file := range files {
		part, err := writer.CreateFormFile("files", file.Name)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, file.Reader); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	blob, err := s.api.do(http.MethodPost, "/upload", nil, &body, writer.FormDataContentType())
	if err != nil {
		return nil, err
	}
	var uploaded []UploadedFile
	if err := json.Unmarshal(blob, &uploaded); err != nil {
		return nil, err
	}
	if len(uploaded) == 0 {
		return nil, errMalformedResponse
	}
	return uploaded, nil
}
