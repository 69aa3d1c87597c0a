package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"blogsmith/internal/apperr"
	"blogsmith/internal/article/model"
	"blogsmith/internal/article/service"
	"blogsmith/pkg/logger"
)

const (
	msgTopicRequired   = "Topic is required and must be a non-empty string"
	msgContentRequired = "Content is required and must be a non-empty string"
	msgIDRequired      = "Blog ID is required"
	msgInvalidBody     = "Invalid request body"
)

type ArticleHandler struct {
	Service *service.ArticleService
}

func NewArticleHandler(service *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{Service: service}
}

// Articles dispatches the collection endpoint by method.
func (h *ArticleHandler) Articles(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.ListArticles(w, r)
	case http.MethodPost:
		h.GenerateArticle(w, r)
	case http.MethodPatch:
		h.FilterArticles(w, r)
	case http.MethodDelete:
		h.DeleteArticle(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// GenerateArticle creates an article from a topic. A request that also
// carries content stores it as-is without calling the model.
func (h *ArticleHandler) GenerateArticle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req model.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation(msgInvalidBody), "")
		return
	}

	topic, ok := req.Topic.(string)
	if !ok {
		writeError(w, apperr.Validation(msgTopicRequired), "")
		return
	}

	var (
		article model.Article
		err     error
	)
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			writeError(w, apperr.Validation(msgContentRequired), "")
			return
		}
		article, err = h.Service.Create(r.Context(), *req.Content, topic)
	} else {
		article, err = h.Service.Generate(r.Context(), topic)
	}
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to create article: %v", err)
		writeError(w, err, "Failed to generate blog post. Please try again.")
		return
	}

	writeJSON(w, http.StatusCreated, article)
}

func (h *ArticleHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	res, err := h.Service.List(r.Context(), queryFromURL(r))
	if err != nil {
		logger.Sugar.Errorf("Error fetching articles: %v", err)
		writeError(w, err, "Failed to fetch blogs")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ArticleHandler) FilterArticles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var q model.Query
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, apperr.Validation(msgInvalidBody), "")
		return
	}

	res, err := h.Service.Filter(r.Context(), q)
	if err != nil {
		logger.Sugar.Errorf("Error filtering articles: %v", err)
		writeError(w, err, "Failed to filter blogs")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ArticleHandler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		writeError(w, apperr.Validation(msgIDRequired), "")
		return
	}

	res, err := h.Service.Delete(r.Context(), id)
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to delete article %s: %v", id, err)
		writeError(w, err, "Failed to delete blog post")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ArticleHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.PathValue("id")
	article, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to fetch blog post")
		return
	}
	writeJSON(w, http.StatusOK, article)
}

func (h *ArticleHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		logger.Sugar.Errorf("Error computing stats: %v", err)
		writeError(w, err, "Failed to fetch blog statistics")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// queryFromURL reads the GET list parameters. Unparseable numbers are
// ignored, leaving the list unpaginated.
func queryFromURL(r *http.Request) model.Query {
	v := r.URL.Query()
	q := model.Query{
		Search:   v.Get("search"),
		DateFrom: v.Get("dateFrom"),
		DateTo:   v.Get("dateTo"),
		SortBy:   v.Get("sortBy"),
		Order:    v.Get("order"),
	}
	if topic := strings.TrimSpace(v.Get("topic")); topic != "" {
		q.Topics = []string{topic}
	}
	if n, err := strconv.Atoi(v.Get("limit")); err == nil {
		q.Limit = &n
	}
	if n, err := strconv.Atoi(v.Get("offset")); err == nil {
		q.Offset = n
	}
	return q
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Sugar.Errorf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error, fallback string) {
	writeJSON(w, apperr.HTTPStatus(err), map[string]string{"error": apperr.Message(err, fallback)})
}
