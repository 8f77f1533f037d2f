package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type viewMode int

const (
	viewArticles viewMode = iota
	viewDetail
	viewCategories
)

type spinnerTickMsg struct{}

type initDoneMsg struct{}

type listLoadedMsg struct{}

type detailLoadedMsg struct {
	docID string
}

type categoriesLoadedMsg struct{}

type authDoneMsg struct {
	ok     bool
	action string
}

type submitDoneMsg struct {
	modal ModalType
}

type commentDoneMsg struct{}

type formField struct {
	label    string
	input    textinput.Model
	password bool
}

type tuiModel struct {
	app           *App
	width         int
	height        int
	view          viewMode
	selected      int
	selectedCmt   int
	searching     bool
	search        textinput.Model
	inlineSubmit  inlineSubmitFunc
	fields        []formField
	focus         int
	editDoc       string
	status        string
	showHelp      bool
	sortNewest    bool
	spinnerIndex  int
	spinnerFrames []string
}

var (
	teaNewProgram = tea.NewProgram
	runTeaProgram = defaultRunTeaProgram
)

func defaultRunTeaProgram(program *tea.Program) (tea.Model, error) {
	return program.Run()
}

func RunTUI(app *App) error {
	model := newTUIModel(app)
	program := teaNewProgram(model, tea.WithAltScreen())
	_, err := runTeaProgram(program)
	return err
}

func newTUIModel(app *App) tuiModel {
	search := textinput.New()
	search.Placeholder = "search titles"
	search.CharLimit = 128
	search.Width = 40
	search.Prompt = "/ "
	return tuiModel{
		app:           app,
		search:        search,
		sortNewest:    true,
		spinnerFrames: []string{"|", "/", "-", "\\"},
	}
}

func (m tuiModel) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			m.app.auth.Initialize()
			return initDoneMsg{}
		},
		fetchListCmd(m.app, ListParams{}),
		tea.Tick(120*time.Millisecond, func(time.Time) tea.Msg { return spinnerTickMsg{} }),
	)
}

func fetchListCmd(app *App, params ListParams) tea.Cmd {
	return func() tea.Msg {
		app.articles.Fetch(params)
		return listLoadedMsg{}
	}
}

func fetchDetailCmd(app *App, docID string) tea.Cmd {
	return func() tea.Msg {
		app.articles.FetchByID(docID)
		return detailLoadedMsg{docID: docID}
	}
}

func fetchCategoryDetailCmd(app *App, docID string) tea.Cmd {
	return func() tea.Msg {
		app.categories.FetchByID(docID)
		return detailLoadedMsg{docID: docID}
	}
}

func fetchCategoriesCmd(app *App) tea.Cmd {
	return func() tea.Msg {
		app.categories.Fetch(ListParams{})
		return categoriesLoadedMsg{}
	}
}

func fetchAvailableCategoriesCmd(app *App) tea.Cmd {
	return func() tea.Msg {
		app.articles.FetchAvailableCategories()
		return categoriesLoadedMsg{}
	}
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case spinnerTickMsg:
		if len(m.spinnerFrames) > 0 {
			m.spinnerIndex = (m.spinnerIndex + 1) % len(m.spinnerFrames)
		}
		cmd := tea.Tick(120*time.Millisecond, func(time.Time) tea.Msg { return spinnerTickMsg{} })
		return m.checkExpiry(), cmd
	case initDoneMsg:
		if m.app.auth.IsAuthenticated() {
			m.status = "signed in as " + m.app.auth.User().Username
		}
		return m, nil
	case listLoadedMsg:
		if m.selected >= len(m.app.articles.Articles()) {
			m.selected = 0
		}
		return m.checkExpiry(), nil
	case categoriesLoadedMsg:
		if m.selected >= len(m.app.categories.Categories()) {
			m.selected = 0
		}
		return m.checkExpiry(), nil
	case detailLoadedMsg:
		m = m.prefillEditForm()
		return m.checkExpiry(), nil
	case authDoneMsg:
		if msg.ok {
			m.app.modal.Close()
			m.fields = nil
			if msg.action == "register" && !m.app.auth.IsAuthenticated() {
				m.status = "registered; check your email to confirm, then log in"
			} else {
				m.status = "signed in as " + m.app.auth.User().Username
			}
		} else {
			m.status = m.app.auth.Err()
		}
		return m, nil
	case submitDoneMsg:
		var storeErr string
		switch msg.modal {
		case ModalCreateCategory, ModalEditCategory:
			storeErr = m.app.categories.Err()
		default:
			storeErr = m.app.articles.Err()
		}
		if storeErr == "" {
			m.app.modal.Close()
			m.fields = nil
			m.editDoc = ""
			m.status = "saved"
		} else {
			m.status = storeErr
		}
		return m.checkExpiry(), nil
	case commentDoneMsg:
		if err := m.app.articles.CommentErr(); err != "" {
			m.status = err
		}
		return m.checkExpiry(), nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// checkExpiry routes a forced logout (401 interception) to the login modal.
func (m tuiModel) checkExpiry() tuiModel {
	if m.app.auth.ConsumeExpired() {
		m.status = sessionExpiredMessage
		m.app.modal.Open(ModalLogin, "")
		m.fields = loginFields()
		m.focus = 0
	}
	return m
}

func (m tuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.showHelp {
		if key == "?" || key == "esc" || key == "q" {
			m.showHelp = false
		}
		return m, nil
	}
	if m.app.modal.IsOpen() {
		return m.handleModalKey(msg)
	}
	if m.searching {
		switch key {
		case "esc":
			m = m.resetInlineInput()
			return m, nil
		case "enter":
			text := strings.TrimSpace(m.search.Value())
			submit := m.inlineSubmit
			m = m.resetInlineInput()
			if submit != nil {
				if text == "" {
					return m, nil
				}
				return m, submit(text)
			}
			filters := Filters{}
			if text != "" {
				filters["title"] = map[string]any{"$containsi": text}
			}
			return m, func() tea.Msg {
				m.app.articles.ApplyFilters(filters)
				return listLoadedMsg{}
			}
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "?":
		m.showHelp = true
		return m, nil
	}

	switch m.view {
	case viewDetail:
		return m.handleDetailKey(key)
	case viewCategories:
		return m.handleCategoriesKey(key)
	default:
		return m.handleListKey(key)
	}
}

func (m tuiModel) handleListKey(key string) (tea.Model, tea.Cmd) {
	articles := m.app.articles.Articles()
	switch key {
	case "j", "down":
		if m.selected < len(articles)-1 {
			m.selected++
		}
	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
	case "n", "right":
		meta := m.app.articles.Pagination()
		if meta.Page < meta.PageCount {
			return m, fetchListCmd(m.app, ListParams{Page: meta.Page + 1})
		}
	case "p", "left":
		meta := m.app.articles.Pagination()
		if meta.Page > 1 {
			return m, fetchListCmd(m.app, ListParams{Page: meta.Page - 1})
		}
	case "r":
		return m, fetchListCmd(m.app, ListParams{})
	case "/":
		m.searching = true
		m.search.Focus()
	case "s":
		m.sortNewest = !m.sortNewest
		sortExpr := "createdAt:desc"
		if !m.sortNewest {
			sortExpr = "createdAt:asc"
		}
		return m, func() tea.Msg {
			m.app.articles.SetSort(sortExpr)
			return listLoadedMsg{}
		}
	case "enter":
		if m.selected < len(articles) {
			m.view = viewDetail
			m.selectedCmt = 0
			return m, fetchDetailCmd(m.app, articles[m.selected].DocID)
		}
	case "c":
		var ok bool
		if m, ok = m.requireAuth(); !ok {
			return m, nil
		}
		m.app.modal.Open(ModalCreateArticle, "")
		m.fields = articleFields()
		m.focus = 0
		m.editDoc = ""
		return m, fetchAvailableCategoriesCmd(m.app)
	case "e":
		var ok bool
		if m, ok = m.requireAuth(); !ok || m.selected >= len(articles) {
			return m, nil
		}
		docID := articles[m.selected].DocID
		needFetch := m.app.modal.Open(ModalEditArticle, docID)
		m.fields = articleFields()
		m.focus = 0
		m.editDoc = docID
		cmds := []tea.Cmd{fetchAvailableCategoriesCmd(m.app)}
		if needFetch {
			cmds = append(cmds, fetchDetailCmd(m.app, docID))
		} else {
			m = m.prefillEditForm()
		}
		return m, tea.Batch(cmds...)
	case "d":
		var ok bool
		if m, ok = m.requireAuth(); !ok || m.selected >= len(articles) {
			return m, nil
		}
		docID := articles[m.selected].DocID
		return m, func() tea.Msg {
			m.app.articles.Delete(docID)
			return listLoadedMsg{}
		}
	case "C":
		m.view = viewCategories
		m.selected = 0
		return m, fetchCategoriesCmd(m.app)
	case "L":
		m.app.modal.Open(ModalLogin, "")
		m.fields = loginFields()
		m.focus = 0
	case "R":
		m.app.modal.Open(ModalRegister, "")
		m.fields = registerFields()
		m.focus = 0
	case "O":
		m.app.auth.Logout()
		m.status = "logged out"
	}
	return m, nil
}

func (m tuiModel) handleDetailKey(key string) (tea.Model, tea.Cmd) {
	current := m.app.articles.Current()
	switch key {
	case "esc", "backspace":
		m.view = viewArticles
		m.app.articles.ClearCurrent()
	case "J":
		if current != nil && m.selectedCmt < len(current.Comments)-1 {
			m.selectedCmt++
		}
	case "K":
		if m.selectedCmt > 0 {
			m.selectedCmt--
		}
	case "a":
		var ok bool
		if m, ok = m.requireAuth(); !ok || current == nil {
			return m, nil
		}
		m.searching = true
		m.search.Placeholder = "comment"
		m.search.Prompt = "> "
		m.search.Focus()
		articleID := current.ID
		// reuse the inline input; enter routed here via a dedicated closure
		return m.withInlineSubmit(func(text string) tea.Cmd {
			return func() tea.Msg {
				m.app.articles.AddComment(articleID, text)
				return commentDoneMsg{}
			}
		}), nil
	case "E":
		var ok bool
		if m, ok = m.requireAuth(); !ok || current == nil || m.selectedCmt >= len(current.Comments) {
			return m, nil
		}
		comment := current.Comments[m.selectedCmt]
		m.searching = true
		m.search.Placeholder = "edit comment"
		m.search.Prompt = "> "
		m.search.SetValue(comment.Content)
		m.search.Focus()
		return m.withInlineSubmit(func(text string) tea.Cmd {
			return func() tea.Msg {
				m.app.articles.EditComment(comment.DocID, text)
				return commentDoneMsg{}
			}
		}), nil
	case "X":
		var ok bool
		if m, ok = m.requireAuth(); !ok || current == nil || m.selectedCmt >= len(current.Comments) {
			return m, nil
		}
		docID := current.Comments[m.selectedCmt].DocID
		return m, func() tea.Msg {
			m.app.articles.RemoveComment(docID)
			return commentDoneMsg{}
		}
	}
	return m, nil
}

func (m tuiModel) handleCategoriesKey(key string) (tea.Model, tea.Cmd) {
	categories := m.app.categories.Categories()
	switch key {
	case "esc", "backspace":
		m.view = viewArticles
		m.selected = 0
	case "j", "down":
		if m.selected < len(categories)-1 {
			m.selected++
		}
	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
	case "n":
		meta := m.app.categories.Pagination()
		if meta.Page < meta.PageCount {
			page := meta.Page + 1
			return m, func() tea.Msg {
				m.app.categories.SetPage(page)
				return categoriesLoadedMsg{}
			}
		}
	case "c":
		var ok bool
		if m, ok = m.requireAuth(); !ok {
			return m, nil
		}
		m.app.modal.Open(ModalCreateCategory, "")
		m.fields = categoryFields()
		m.focus = 0
		m.editDoc = ""
	case "e":
		var ok bool
		if m, ok = m.requireAuth(); !ok || m.selected >= len(categories) {
			return m, nil
		}
		docID := categories[m.selected].DocID
		needFetch := m.app.modal.Open(ModalEditCategory, docID)
		m.fields = categoryFields()
		m.focus = 0
		m.editDoc = docID
		if needFetch {
			return m, fetchCategoryDetailCmd(m.app, docID)
		}
		m = m.prefillEditForm()
	case "d":
		var ok bool
		if m, ok = m.requireAuth(); !ok || m.selected >= len(categories) {
			return m, nil
		}
		docID := categories[m.selected].DocID
		return m, func() tea.Msg {
			m.app.categories.Delete(docID)
			return categoriesLoadedMsg{}
		}
	}
	return m, nil
}

// inlineSubmit carries the pending action for the single-line input; nil
// means the input is the title search.
type inlineSubmitFunc func(text string) tea.Cmd

func (m tuiModel) withInlineSubmit(fn inlineSubmitFunc) tuiModel {
	m.inlineSubmit = fn
	return m
}

func (m tuiModel) resetInlineInput() tuiModel {
	m.searching = false
	m.inlineSubmit = nil
	m.search.Blur()
	m.search.SetValue("")
	m.search.Placeholder = "search titles"
	m.search.Prompt = "/ "
	return m
}

func (m tuiModel) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "esc":
		m.app.modal.Close()
		m.fields = nil
		m.editDoc = ""
		return m, nil
	case "tab", "down":
		m = m.moveFocus(1)
		return m, nil
	case "shift+tab", "up":
		m = m.moveFocus(-1)
		return m, nil
	case "enter":
		if m.focus < len(m.fields)-1 {
			m = m.moveFocus(1)
			return m, nil
		}
		return m.submitModal()
	}
	if len(m.fields) > 0 {
		var cmd tea.Cmd
		m.fields[m.focus].input, cmd = m.fields[m.focus].input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m tuiModel) moveFocus(delta int) tuiModel {
	if len(m.fields) == 0 {
		return m
	}
	m.fields[m.focus].input.Blur()
	m.focus = (m.focus + delta + len(m.fields)) % len(m.fields)
	m.fields[m.focus].input.Focus()
	return m
}

func (m tuiModel) submitModal() (tea.Model, tea.Cmd) {
	modal, itemID := m.app.modal.Current()
	values := make([]string, len(m.fields))
	for i := range m.fields {
		values[i] = strings.TrimSpace(m.fields[i].input.Value())
	}
	app := m.app
	switch modal {
	case ModalLogin:
		return m, func() tea.Msg {
			ok := app.auth.Login(values[0], values[1])
			return authDoneMsg{ok: ok, action: "login"}
		}
	case ModalRegister:
		return m, func() tea.Msg {
			ok := app.auth.Register(values[0], values[1], values[2])
			return authDoneMsg{ok: ok, action: "register"}
		}
	case ModalCreateArticle, ModalEditArticle:
		payload := ArticlePayload{Title: values[0], Description: values[1]}
		if values[2] != "" {
			categoryID, err := strconv.Atoi(values[2])
			if err != nil {
				m.status = "category must be a numeric id"
				return m, nil
			}
			payload.Category = categoryID
		}
		coverPath := values[3]
		editing := modal == ModalEditArticle
		docID := itemID
		return m, func() tea.Msg {
			if coverPath != "" {
				url, err := app.UploadCover(coverPath)
				if err != nil {
					app.articles.setError("cover upload failed: " + err.Error())
					return submitDoneMsg{modal: modal}
				}
				payload.CoverImageURL = url
			}
			if editing {
				app.articles.Update(docID, payload)
			} else {
				app.articles.Create(payload)
			}
			return submitDoneMsg{modal: modal}
		}
	case ModalCreateCategory, ModalEditCategory:
		payload := CategoryPayload{Name: values[0], Description: values[1]}
		editing := modal == ModalEditCategory
		docID := itemID
		return m, func() tea.Msg {
			if editing {
				app.categories.Update(docID, payload)
			} else {
				app.categories.Create(payload)
			}
			return submitDoneMsg{modal: modal}
		}
	}
	return m, nil
}

func (m tuiModel) prefillEditForm() tuiModel {
	modal, itemID := m.app.modal.Current()
	switch modal {
	case ModalEditArticle:
		current := m.app.articles.Current()
		if current == nil || current.DocID != itemID || len(m.fields) < 4 {
			return m
		}
		m.fields[0].input.SetValue(current.Title)
		m.fields[1].input.SetValue(current.Description)
		if current.Category != nil {
			m.fields[2].input.SetValue(strconv.Itoa(current.Category.ID))
		}
	case ModalEditCategory:
		current := m.app.categories.Current()
		if current == nil || current.DocID != itemID || len(m.fields) < 2 {
			return m
		}
		m.fields[0].input.SetValue(current.Name)
		m.fields[1].input.SetValue(current.Description)
	}
	return m
}

// requireAuth gates a mutation behind a session. When the user is logged
// out it opens the login modal with its form ready so the returned model
// must replace the caller's.
func (m tuiModel) requireAuth() (tuiModel, bool) {
	if m.app.auth.IsAuthenticated() {
		return m, true
	}
	m.app.modal.Open(ModalLogin, "")
	m.fields = loginFields()
	m.focus = 0
	return m, false
}

func newField(label string, placeholder string, password bool) formField {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = 256
	input.Width = 40
	input.Prompt = "> "
	if password {
		input.EchoMode = textinput.EchoPassword
	}
	return formField{label: label, input: input, password: password}
}

func loginFields() []formField {
	fields := []formField{
		newField("Email", "you@example.com", false),
		newField("Password", "", true),
	}
	fields[0].input.Focus()
	return fields
}

func registerFields() []formField {
	fields := []formField{
		newField("Username", "", false),
		newField("Email", "you@example.com", false),
		newField("Password", "", true),
	}
	fields[0].input.Focus()
	return fields
}

func articleFields() []formField {
	fields := []formField{
		newField("Title", "", false),
		newField("Description", "", false),
		newField("Category id", "numeric id", false),
		newField("Cover image path", "optional local file", false),
	}
	fields[0].input.Focus()
	return fields
}

func categoryFields() []formField {
	fields := []formField{
		newField("Name", "", false),
		newField("Description", "", false),
	}
	fields[0].input.Focus()
	return fields
}

func (m tuiModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	base := m.renderLayout()
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	if m.app.modal.IsOpen() {
		return m.renderModalOverlay()
	}
	return base
}

func (m tuiModel) renderLayout() string {
	var body string
	switch m.view {
	case viewDetail:
		body = m.renderDetailPane()
	case viewCategories:
		body = m.renderCategoriesPane()
	default:
		body = m.renderListPane()
	}
	if m.searching {
		body = lipgloss.JoinVertical(lipgloss.Top, body, m.search.View())
	}
	status := m.renderStatusBar(m.width)
	return lipgloss.JoinVertical(lipgloss.Top, body, status)
}

func (m tuiModel) renderListPane() string {
	style := lipgloss.NewStyle().Width(m.width).Padding(1, 1, 0, 1)
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Render("Roam")
	lines := []string{header}
	if err := m.app.articles.Err(); err != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(err))
	}
	articles := m.app.articles.Articles()
	for i, article := range articles {
		prefix := " "
		if i == m.selected {
			prefix = "▸"
		}
		category := ""
		if article.Category != nil {
			category = " [" + article.Category.Name + "]"
		}
		line := fmt.Sprintf("%s %s%s", prefix, truncate(article.Title, m.width-10), category)
		if i == m.selected {
			line = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(line)
		}
		lines = append(lines, line)
	}
	if len(articles) == 0 && !m.app.articles.IsLoading() {
		lines = append(lines, "No articles.")
	}
	meta := m.app.articles.Pagination()
	if meta.PageCount > 0 {
		lines = append(lines, "", fmt.Sprintf("page %d/%d · %d articles", meta.Page, meta.PageCount, meta.Total))
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m tuiModel) renderDetailPane() string {
	style := lipgloss.NewStyle().Width(m.width).Padding(1, 1, 0, 1)
	article := m.app.articles.Current()
	if article == nil {
		if m.app.articles.IsLoading() {
			return style.Render("Loading article...")
		}
		if err := m.app.articles.Err(); err != "" {
			return style.Render("Error: " + err)
		}
		return style.Render("No article loaded.")
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	metaStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	lines := []string{titleStyle.Render(article.Title)}
	if article.Category != nil {
		lines = append(lines, metaStyle.Render("Category: "+article.Category.Name))
	}
	if article.User != nil {
		lines = append(lines, metaStyle.Render("Author: "+article.User.Username))
	}
	lines = append(lines, "")
	lines = append(lines, wrapText(article.Description, m.width-4)...)
	lines = append(lines, "", lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Comments (%d)", len(article.Comments))))
	for i, comment := range article.Comments {
		prefix := " "
		if i == m.selectedCmt {
			prefix = "▸"
		}
		author := "anonymous"
		if comment.User != nil {
			author = comment.User.Username
		}
		lines = append(lines, fmt.Sprintf("%s %s: %s", prefix, author, truncate(comment.Content, m.width-14)))
	}
	if err := m.app.articles.CommentErr(); err != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(err))
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m tuiModel) renderCategoriesPane() string {
	style := lipgloss.NewStyle().Width(m.width).Padding(1, 1, 0, 1)
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Render("Categories")
	lines := []string{header}
	if err := m.app.categories.Err(); err != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(err))
	}
	for i, category := range m.app.categories.Categories() {
		prefix := " "
		if i == m.selected {
			prefix = "▸"
		}
		line := fmt.Sprintf("%s %s · %s", prefix, category.Name, truncate(category.Description, m.width-20))
		if i == m.selected {
			line = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(line)
		}
		lines = append(lines, line)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m tuiModel) renderStatusBar(width int) string {
	style := lipgloss.NewStyle().Width(width).Padding(0, 1).Foreground(lipgloss.Color("241"))
	status := m.status
	if m.app.articles.IsLoading() || m.app.articles.IsSubmitting() || m.app.auth.IsLoading() {
		spinner := ""
		if len(m.spinnerFrames) > 0 {
			spinner = m.spinnerFrames[m.spinnerIndex] + " "
		}
		status = spinner + "working..."
	} else if status == "" {
		status = "Ready"
	}
	who := "guest"
	if user := m.app.auth.User(); user != nil {
		who = user.Username
	}
	tip := who + " · ? for help"
	padding := width - len(status) - len(tip) - 2
	if padding < 1 {
		padding = 1
	}
	return style.Render(status + strings.Repeat(" ", padding) + tip)
}

func (m tuiModel) renderModalOverlay() string {
	modal, _ := m.app.modal.Current()
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2).BorderForeground(lipgloss.Color("62"))
	lines := []string{modalTitle(modal), ""}
	for i, field := range m.fields {
		marker := "  "
		if i == m.focus {
			marker = "* "
		}
		lines = append(lines, marker+field.label)
		lines = append(lines, "  "+field.input.View())
	}
	if modal == ModalCreateArticle || modal == ModalEditArticle {
		categories := m.app.articles.AvailableCategories()
		if len(categories) > 0 {
			lines = append(lines, "", "Categories:")
			for _, category := range categories {
				lines = append(lines, fmt.Sprintf("  %d: %s", category.ID, category.Name))
			}
		}
	}
	lines = append(lines, "", "Enter to submit, Esc to cancel")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box.Render(strings.Join(lines, "\n")))
}

func modalTitle(modal ModalType) string {
	switch modal {
	case ModalLogin:
		return "Log In"
	case ModalRegister:
		return "Register"
	case ModalCreateArticle:
		return "New Article"
	case ModalEditArticle:
		return "Edit Article"
	case ModalCreateCategory:
		return "New Category"
	case ModalEditCategory:
		return "Edit Category"
	default:
		return "Input"
	}
}

func (m tuiModel) renderHelpOverlay() string {
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2).BorderForeground(lipgloss.Color("63"))
	content := []string{
		"Quick Commands",
		"",
		"j/k or arrows  - navigate",
		"n/p            - next/previous page",
		"/              - search titles",
		"s              - toggle sort order",
		"enter          - open article",
		"c              - new article",
		"e              - edit selected",
		"d              - delete selected",
		"C              - categories",
		"a              - add comment (detail)",
		"J/K, E, X      - select/edit/delete comment",
		"L / R / O      - login / register / logout",
		"esc            - back / close",
		"q              - quit",
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box.Render(strings.Join(content, "\n")))
}

func truncate(text string, width int) string {
	if width < 1 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

func wrapText(text string, width int) []string {
	if width < 1 {
		return []string{""}
	}
	lines := []string{}
	for _, para := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(para)
		if trimmed == "" {
			lines = append(lines, "")
			continue
		}
		words := strings.Fields(trimmed)
		line := ""
		for _, word := range words {
			if line == "" {
				line = word
				continue
			}
			if len(line)+1+len(word) > width {
				lines = append(lines, line)
				line = word
				continue
			}
			line = line + " " + word
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
