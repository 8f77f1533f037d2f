package main

import "sync"

type ModalType string

const (
	ModalNone           ModalType = ""
	ModalLogin          ModalType = "login"
	ModalRegister       ModalType = "register"
	ModalCreateArticle  ModalType = "create-article"
	ModalEditArticle    ModalType = "edit-article"
	ModalCreateCategory ModalType = "create-category"
	ModalEditCategory   ModalType = "edit-category"
)

// ModalCoordinator tracks the single open modal and its target id. Opening
// a modal replaces whatever was open before. Edit modals need a detail
// fetch when the cached detail doesn't already match the target id, and
// closing an edit modal drops the cached detail so the next one never sees
// stale data.
type ModalCoordinator struct {
	mu      sync.Mutex
	current ModalType
	itemID  string

	articles   *ArticleStore
	categories *CategoryStore
}

func NewModalCoordinator(articles *ArticleStore, categories *CategoryStore) *ModalCoordinator {
	return &ModalCoordinator{articles: articles, categories: categories}
}

func (m *ModalCoordinator) Current() (ModalType, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current, m.itemID
}

func (m *ModalCoordinator) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current != ModalNone
}

// Open replaces the active modal and reports whether the caller must run a
// detail fetch for the target id before the form has data to edit.
func (m *ModalCoordinator) Open(modal ModalType, itemID string) bool {
	m.mu.Lock()
	m.current = modal
	m.itemID = itemID
	m.mu.Unlock()

	switch modal {
	case ModalEditArticle:
		current := m.articles.Current()
		return current == nil || current.DocID != itemID
	case ModalEditCategory:
		current := m.categories.Current()
		return current == nil || current.DocID != itemID
	}
	return false
}

func (m *ModalCoordinator) Close() {
	m.mu.Lock()
	closing := m.current
	m.current = ModalNone
	m.itemID = ""
	m.mu.Unlock()

	switch closing {
	case ModalEditArticle:
		m.articles.ClearCurrent()
	case ModalEditCategory:
		m.categories.ClearCurrent()
	}
}
