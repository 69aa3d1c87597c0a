package router

import (
	"encoding/json"
	"net/http"

	articleHandler "blogsmith/internal/article"
	"blogsmith/internal/article/service"
	"blogsmith/internal/web"
	"blogsmith/middleware"
	"blogsmith/socket"
)

func Setup(svc *service.ArticleService, hub *socket.Hub, pages *web.Pages) http.Handler {
	mux := http.NewServeMux()

	// WebSocket
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		socket.ServeWs(hub, w, r)
	})

	// REST API
	articles := articleHandler.NewArticleHandler(svc)

	mux.HandleFunc("/generate", articles.GenerateArticle)
	mux.HandleFunc("/articles", articles.Articles)
	mux.HandleFunc("/articles/stats", articles.GetStats)
	mux.HandleFunc("/articles/{id}", articles.GetArticle)
	mux.HandleFunc("/healthz", health)

	// Pages
	mux.HandleFunc("/", pages.Home)
	mux.HandleFunc("/blog/{id}", pages.Detail)
	mux.HandleFunc("/ui/generate", pages.Generate)
	mux.HandleFunc("/ui/delete", pages.Delete)

	return middleware.LoggingMiddleware(middleware.CORSMiddleware(mux))
}

func health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
