package main

import (
	"os"
	"path/filepath"
)

var openFile = os.Open

// App wires the client, services and stores together. UI layers render
// store state and call store actions; they never touch the services
// directly.
type App struct {
	config     Config
	api        *APIClient
	files      *FileService
	auth       *AuthStore
	articles   *ArticleStore
	categories *CategoryStore
	modal      *ModalCoordinator
}

func NewApp(cfg Config) (*App, error) {
	session, err := OpenSessionStore(cfg.SessionDBPath)
	if err != nil {
		return nil, err
	}
	return newAppWithSession(cfg, session), nil
}

func newAppWithSession(cfg Config, session *SessionStore) *App {
	api := NewAPIClient(cfg.APIBaseURL)

	articleSvc := NewArticleService(api)
	categorySvc := NewCategoryService(api)
	commentSvc := NewCommentService(api)

	app := &App{
		config:     cfg,
		api:        api,
		files:      NewFileService(api),
		articles:   NewArticleStore(articleSvc, categorySvc, commentSvc),
		categories: NewCategoryStore(categorySvc),
	}
	app.auth = NewAuthStore(NewAuthService(api), session)
	app.modal = NewModalCoordinator(app.articles, app.categories)

	api.token = app.auth.Token
	api.onUnauthorized = app.auth.ExpireSession

	if cfg.PageSize > 0 && cfg.PageSize != defaultPageSize {
		app.articles.params.PageSize = cfg.PageSize
	}
	return app
}

// UploadCover pushes one local image and returns the URL to store on the
// article, preferring the large rendition.
func (a *App) UploadCover(path string) (string, error) {
	file, err := openFile(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	uploaded, err := a.files.Upload([]FileInput{{Name: filepath.Base(path), Reader: file}})
	if err != nil {
		return "", err
	}
	return uploaded[0].BestImageURL(), nil
}
