package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Run drives the app over plain line-based streams, used when stdin or
// stdout is not a terminal.
func Run(app *App, in io.Reader, out io.Writer) error {
	app.auth.Initialize()
	app.articles.Fetch(ListParams{})
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, render(app))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := handleCommand(app, line, out); err != nil {
			return err
		}
		if line == "q" || line == "quit" {
			break
		}
		fmt.Fprintln(out, render(app))
	}
	return scanner.Err()
}

func handleCommand(app *App, line string, out io.Writer) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	rest := strings.TrimSpace(strings.TrimPrefix(line, parts[0]))
	switch parts[0] {
	case "q", "quit":
		return nil
	case "list", "r":
		app.articles.Fetch(ListParams{})
	case "page":
		if len(parts) < 2 {
			return fmt.Errorf("missing page number")
		}
		page, err := strconv.Atoi(parts[1])
		if err != nil {
			return fmt.Errorf("invalid page number: %q", parts[1])
		}
		app.articles.SetPage(page)
	case "size":
		if len(parts) < 2 {
			return fmt.Errorf("missing page size")
		}
		size, err := strconv.Atoi(parts[1])
		if err != nil {
			return fmt.Errorf("invalid page size: %q", parts[1])
		}
		app.articles.SetPageSize(size)
	case "search":
		if rest == "" {
			app.articles.ApplyFilters(Filters{})
		} else {
			app.articles.ApplyFilters(Filters{"title": {"$containsi": rest}})
		}
	case "sort":
		if len(parts) < 2 {
			return fmt.Errorf("missing sort expression")
		}
		app.articles.SetSort(parts[1])
	case "open":
		if len(parts) < 2 {
			return fmt.Errorf("missing article number")
		}
		article := articleByIndex(app, parts[1])
		if article == nil {
			return fmt.Errorf("no article %q on this page", parts[1])
		}
		app.articles.FetchByID(article.DocID)
	case "back":
		app.articles.ClearCurrent()
	case "categories":
		app.categories.Fetch(ListParams{})
		fmt.Fprintln(out, renderCategories(app))
	case "login":
		if len(parts) < 3 {
			return fmt.Errorf("usage: login <email> <password>")
		}
		if app.auth.Login(parts[1], parts[2]) {
			fmt.Fprintln(out, "logged in as "+app.auth.User().Username)
		}
	case "register":
		if len(parts) < 4 {
			return fmt.Errorf("usage: register <username> <email> <password>")
		}
		if app.auth.Register(parts[1], parts[2], parts[3]) {
			fmt.Fprintln(out, "registered")
		}
	case "logout":
		app.auth.Logout()
		fmt.Fprintln(out, "logged out")
	case "whoami":
		if user := app.auth.User(); user != nil {
			fmt.Fprintf(out, "%s <%s>\n", user.Username, user.Email)
		} else {
			fmt.Fprintln(out, "not logged in")
		}
	case "comment":
		if rest == "" {
			return fmt.Errorf("missing comment text")
		}
		current := app.articles.Current()
		if current == nil {
			return fmt.Errorf("no article open")
		}
		app.articles.AddComment(current.ID, rest)
	case "delc":
		if len(parts) < 2 {
			return fmt.Errorf("missing comment number")
		}
		comment := commentByIndex(app, parts[1])
		if comment == nil {
			return fmt.Errorf("no comment %q", parts[1])
		}
		app.articles.RemoveComment(comment.DocID)
	case "editc":
		if len(parts) < 3 {
			return fmt.Errorf("usage: editc <n> <text>")
		}
		comment := commentByIndex(app, parts[1])
		if comment == nil {
			return fmt.Errorf("no comment %q", parts[1])
		}
		text := strings.TrimSpace(strings.TrimPrefix(rest, parts[1]))
		app.articles.EditComment(comment.DocID, text)
	case "new":
		fields := splitFields(rest, 3)
		if len(fields) < 3 {
			return fmt.Errorf("usage: new <title>|<description>|<category id>")
		}
		categoryID, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("invalid category id: %q", fields[2])
		}
		app.articles.Create(ArticlePayload{Title: fields[0], Description: fields[1], Category: categoryID})
	case "edit":
		fields := splitFields(rest, 3)
		if len(fields) < 3 {
			return fmt.Errorf("usage: edit <n>|<title>|<description>")
		}
		article := articleByIndex(app, fields[0])
		if article == nil {
			return fmt.Errorf("no article %q on this page", fields[0])
		}
		app.articles.Update(article.DocID, ArticlePayload{Title: fields[1], Description: fields[2]})
	case "delete":
		if len(parts) < 2 {
			return fmt.Errorf("missing article number")
		}
		article := articleByIndex(app, parts[1])
		if article == nil {
			return fmt.Errorf("no article %q on this page", parts[1])
		}
		app.articles.Delete(article.DocID)
	case "newcat":
		fields := splitFields(rest, 2)
		if len(fields) < 1 || fields[0] == "" {
			return fmt.Errorf("usage: newcat <name>|<description>")
		}
		description := ""
		if len(fields) > 1 {
			description = fields[1]
		}
		app.categories.Create(CategoryPayload{Name: fields[0], Description: description})
	case "delcat":
		if len(parts) < 2 {
			return fmt.Errorf("missing category number")
		}
		category := categoryByIndex(app, parts[1])
		if category == nil {
			return fmt.Errorf("no category %q", parts[1])
		}
		app.categories.Delete(category.DocID)
	case "?", "help":
		fmt.Fprintln(out, lineHelpText())
	}
	return nil
}

func articleByIndex(app *App, raw string) *Article {
	index, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	articles := app.articles.Articles()
	if index < 1 || index > len(articles) {
		return nil
	}
	article := articles[index-1]
	return &article
}

func commentByIndex(app *App, raw string) *Comment {
	index, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	current := app.articles.Current()
	if current == nil || index < 1 || index > len(current.Comments) {
		return nil
	}
	comment := current.Comments[index-1]
	return &comment
}

func categoryByIndex(app *App, raw string) *Category {
	index, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	categories := app.categories.Categories()
	if index < 1 || index > len(categories) {
		return nil
	}
	category := categories[index-1]
	return &category
}

func splitFields(raw string, max int) []string {
	parts := strings.SplitN(raw, "|", max)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) == 1 && parts[0] == "" {
		return nil
	}
	return parts
}

func render(app *App) string {
	if current := app.articles.Current(); current != nil {
		return renderDetail(app, current)
	}
	return renderList(app)
}

func renderList(app *App) string {
	lines := []string{"Articles"}
	if err := app.articles.Err(); err != "" {
		lines = append(lines, "error: "+err)
	}
	articles := app.articles.Articles()
	for i, article := range articles {
		category := ""
		if article.Category != nil {
			category = " [" + article.Category.Name + "]"
		}
		lines = append(lines, fmt.Sprintf("%2d. %s%s", i+1, article.Title, category))
	}
	if len(articles) == 0 {
		lines = append(lines, "no articles")
	}
	meta := app.articles.Pagination()
	if meta.PageCount > 0 {
		lines = append(lines, fmt.Sprintf("page %d/%d (%d total)", meta.Page, meta.PageCount, meta.Total))
	}
	return strings.Join(lines, "\n")
}

func renderDetail(app *App, article *Article) string {
	lines := []string{article.Title, ""}
	if article.Category != nil {
		lines = append(lines, "Category: "+article.Category.Name)
	}
	if article.User != nil {
		lines = append(lines, "Author: "+article.User.Username)
	}
	lines = append(lines, "", article.Description, "", fmt.Sprintf("Comments (%d):", len(article.Comments)))
	for i, comment := range article.Comments {
		author := "anonymous"
		if comment.User != nil {
			author = comment.User.Username
		}
		lines = append(lines, fmt.Sprintf("%2d. %s: %s", i+1, author, comment.Content))
	}
	if err := app.articles.CommentErr(); err != "" {
		lines = append(lines, "comment error: "+err)
	}
	return strings.Join(lines, "\n")
}

func renderCategories(app *App) string {
	lines := []string{"Categories"}
	if err := app.categories.Err(); err != "" {
		lines = append(lines, "error: "+err)
	}
	for i, category := range app.categories.Categories() {
		lines = append(lines, fmt.Sprintf("%2d. %s - %s", i+1, category.Name, category.Description))
	}
	return strings.Join(lines, "\n")
}

func lineHelpText() string {
	return strings.Join([]string{
		"list            refresh the article list",
		"page N          go to page N",
		"size N          set page size",
		"search TEXT     filter by title (empty resets)",
		"sort EXPR       e.g. sort createdAt:asc",
		"open N          open article N",
		"back            close the open article",
		"comment TEXT    comment on the open article",
		"editc N TEXT    edit comment N",
		"delc N          delete comment N",
		"new T|D|C       create article (C = category id)",
		"edit N|T|D      edit article N",
		"delete N        delete article N",
		"categories      list categories",
		"newcat N|D      create category",
		"delcat N        delete category N",
		"login E P       log in",
		"register U E P  register",
		"logout / whoami session",
		"q               quit",
	}, "\n")
}
