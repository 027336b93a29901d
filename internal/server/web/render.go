package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/dmitrijs2005/userbook/internal/server/auth"
	"github.com/dmitrijs2005/userbook/internal/server/models"
	"github.com/dmitrijs2005/userbook/internal/server/validation"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageIndex = "index.html"
	pageAdd   = "add_user.html"
	pageEdit  = "edit_user.html"
	pageError = "error.html"
)

// pageData is the single view model shared by all pages.
type pageData struct {
	Title     string
	Message   string
	Flash     *auth.Flash
	CSRFToken string

	Users []models.User

	Action string
	Form   validation.Form
	Errors map[string]string
}

func parseTemplates() (map[string]*template.Template, error) {
	pages := map[string]*template.Template{}
	for _, page := range []string{pageIndex, pageAdd, pageEdit, pageError} {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/form.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		pages[page] = t
	}
	return pages, nil
}

// render executes page into a buffer first so a template error never leaves
// a half-written response.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, data *pageData) {
	var buf bytes.Buffer
	if err := s.templates[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger.Error(r.Context(), "template error", "page", page, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.render(w, r, status, pageError, &pageData{Title: http.StatusText(status), Message: message})
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.renderError(w, r, http.StatusNotFound, "User not found.")
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	s.renderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again later.")
}
