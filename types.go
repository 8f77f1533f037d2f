package main

import "time"

type User struct {
	ID        int       `json:"id"`
	DocID     string    `json:"documentId,omitempty"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Provider  string    `json:"provider,omitempty"`
	Confirmed bool      `json:"confirmed,omitempty"`
	Blocked   bool      `json:"blocked,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

type Category struct {
	ID          int       `json:"id"`
	DocID       string    `json:"documentId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

type Comment struct {
	ID        int       `json:"id"`
	DocID     string    `json:"documentId"`
	Content   string    `json:"content"`
	User      *User     `json:"user,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// Article carries both identifiers: DocID is the stable identifier used in
// routes and reconciliation, ID is the numeric one the server wants in
// relation payloads.
type Article struct {
	ID            int       `json:"id"`
	DocID         string    `json:"documentId"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	CoverImageURL string    `json:"cover_image_url,omitempty"`
	User          *User     `json:"user,omitempty"`
	Category      *Category `json:"category,omitempty"`
	Comments      []Comment `json:"comments,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty"`
	PublishedAt   time.Time `json:"publishedAt,omitempty"`
}

// Pagination mirrors the server's meta.pagination block. Never computed
// client-side.
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

type ImageFormat struct {
	Ext    string  `json:"ext"`
	URL    string  `json:"url"`
	Hash   string  `json:"hash"`
	Mime   string  `json:"mime"`
	Name   string  `json:"name"`
	Size   float64 `json:"size"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
}

type UploadedFile struct {
	ID      int    `json:"id"`
	DocID   string `json:"documentId,omitempty"`
	Name    string `json:"name"`
	URL     string `json:"url"`
	Mime    string `json:"mime"`
	Formats struct {
		Thumbnail *ImageFormat `json:"thumbnail,omitempty"`
		Small     *ImageFormat `json:"small,omitempty"`
		Medium    *ImageFormat `json:"medium,omitempty"`
		Large     *ImageFormat `json:"large,omitempty"`
	} `json:"formats"`
}

// BestImageURL prefers the large rendition when the server produced one.
func (f UploadedFile) BestImageURL() string {
	if f.Formats.Large != nil && f.Formats.Large.URL != "" {
		return f.Formats.Large.URL
	}
	return f.URL
}

// Session is the only state that survives a restart.
type Session struct {
	Token         string `json:"token"`
	User          *User  `json:"user"`
	Authenticated bool   `json:"authenticated"`
}
