// Package web serves the HTML pages: the article list with its topic form and
// search box, and the article detail page.
package web

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"blogsmith/internal/apperr"
	"blogsmith/internal/article/model"
	"blogsmith/internal/article/service"
	"blogsmith/internal/content"
	"blogsmith/internal/render"
	"blogsmith/pkg/logger"
)

var suggestedTopics = []string{"Machine Learning", "Web Development", "Digital Marketing", "Health & Fitness"}

type Pages struct {
	Service  *service.ArticleService
	Views    *render.Views
	Markdown *render.MarkdownRenderer
}

func NewPages(svc *service.ArticleService) (*Pages, error) {
	views, err := render.NewViews()
	if err != nil {
		return nil, err
	}
	return &Pages{Service: svc, Views: views, Markdown: render.NewMarkdownRenderer()}, nil
}

// Home lists articles, newest first, optionally narrowed by the q parameter.
func (p *Pages) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		p.notFound(w)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	search := strings.TrimSpace(r.URL.Query().Get("q"))
	res, err := p.Service.List(r.Context(), model.Query{Search: search})
	if err != nil {
		logger.Sugar.Errorf("Error loading articles for home page: %v", err)
		http.Error(w, "Failed to fetch blogs", http.StatusInternalServerError)
		return
	}

	view := render.HomeView{
		Search:      search,
		Total:       res.Total,
		TotalBlogs:  res.TotalBlogs,
		Error:       r.URL.Query().Get("error"),
		StickyError: r.URL.Query().Get("sticky") != "",
		Suggestions: suggestedTopics,
	}
	for _, a := range res.Blogs {
		view.Cards = append(view.Cards, render.Card{
			Article:        a,
			Preview:        content.Preview(a.Content),
			ReadingMinutes: content.ReadingMinutes(a.Content),
		})
	}

	var buf bytes.Buffer
	if err := p.Views.Home(&buf, view); err != nil {
		p.renderFailed(w, err)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}

// Detail shows one article, structured by default or as rendered markdown
// with ?view=markdown.
func (p *Pages) Detail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	a, err := p.Service.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, apperr.ErrNotFound) {
		p.notFound(w)
		return
	}
	if err != nil {
		logger.Sugar.Errorf("Error loading article: %v", err)
		http.Error(w, "Failed to fetch blog post", http.StatusInternalServerError)
		return
	}

	view := render.DetailView{Article: a, View: render.ViewStructured}
	if r.URL.Query().Get("view") == render.ViewMarkdown {
		md, err := p.Markdown.Render(a)
		if err != nil {
			p.renderFailed(w, err)
			return
		}
		view.View = render.ViewMarkdown
		view.Body = md.HTML
		view.Headings = md.Headings
	} else {
		view.Body = render.Blocks(content.Structure(a.Content))
	}

	var buf bytes.Buffer
	if err := p.Views.Detail(&buf, view); err != nil {
		p.renderFailed(w, err)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}

// Generate handles the topic form and returns to the list.
func (p *Pages) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		redirectHome(w, r, "Invalid form submission", false)
		return
	}

	if _, err := p.Service.Generate(r.Context(), r.PostForm.Get("topic")); err != nil {
		logger.Sugar.Errorf("Web: failed to generate article: %v", err)
		redirectHome(w, r, apperr.Message(err, "Failed to generate blog post. Please try again."), false)
		return
	}
	redirectHome(w, r, "", false)
}

// Delete handles the card delete button. Its errors stay on screen until
// dismissed.
func (p *Pages) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		redirectHome(w, r, "Invalid form submission", true)
		return
	}

	id := strings.TrimSpace(r.PostForm.Get("id"))
	if id == "" {
		redirectHome(w, r, "Blog ID is required", true)
		return
	}
	if _, err := p.Service.Delete(r.Context(), id); err != nil {
		logger.Sugar.Errorf("Web: failed to delete article %s: %v", id, err)
		redirectHome(w, r, apperr.Message(err, "Failed to delete blog post"), true)
		return
	}
	redirectHome(w, r, "", false)
}

func (p *Pages) notFound(w http.ResponseWriter) {
	var buf bytes.Buffer
	if err := p.Views.NotFound(&buf); err != nil {
		p.renderFailed(w, err)
		return
	}
	writeHTML(w, http.StatusNotFound, buf.Bytes())
}

func (p *Pages) renderFailed(w http.ResponseWriter, err error) {
	logger.Sugar.Errorf("Error rendering template: %v", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func redirectHome(w http.ResponseWriter, r *http.Request, msg string, sticky bool) {
	target := "/"
	if msg != "" {
		q := url.Values{"error": {msg}}
		if sticky {
			q.Set("sticky", "1")
		}
		target += "?" + q.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}
