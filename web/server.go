// ABOUTME: HTTP server exposing MCP over streamable HTTP plus widget test endpoints
// ABOUTME: Adds permissive CORS and request logging for ChatGPT connector use
package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"github.com/oakfield/hearth/handlers"
	"github.com/oakfield/hearth/store"
	"github.com/oakfield/hearth/widget"
)

type Server struct {
	store *store.Store
	mcp   *mcp.Server
}

func NewServer(st *store.Store) *Server {
	return &Server{
		store: st,
		mcp:   handlers.NewMCPServer(st),
	}
}

// Handler builds the full route tree. The MCP endpoint lives at /mcp;
// everything else is for browser testing of the widget.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(corsAll)

	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)
	r.Handle("/mcp", streamable)
	r.Handle("/mcp/*", streamable)

	r.Get("/", s.handleIndex)
	r.Get("/widget", s.handleWidget)
	r.Get("/test-data", s.handleTestData)
	r.Get("/healthz", s.handleHealth)

	return r
}

func (s *Server) Start(addr string) error {
	log.Info().Str("addr", addr).Msg("starting HTTP server")
	return http.ListenAndServe(addr, s.Handler())
}

// requestLogger tags each request with an ID and logs method, path and
// status on completion.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		w.Header().Set("X-Request-Id", reqID)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("request_id", reqID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Msg("request")
	})
}

// corsAll allows any origin. The connector runs from chatgpt.com, but
// browser testing needs localhost too; restrict in production.
func corsAll(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>hearth - property MCP server</title></head>
<body style="font-family: system-ui; max-width: 700px; margin: 50px auto;">
<h1>hearth</h1>
<p>Property MCP server. %d listings, %d leads loaded.</p>
<ul>
<li><a href="/widget">Widget preview</a></li>
<li><a href="/test-data">Test data (JSON)</a></li>
<li><code>/mcp</code> &mdash; MCP endpoint (streamable HTTP)</li>
</ul>
</body>
</html>`, len(s.store.Listings()), len(s.store.Clients()))
}

// handleWidget serves the widget HTML for browser testing. In ChatGPT
// the same document is fetched through the MCP resource instead.
func (s *Server) handleWidget(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, widget.HTML())
}

// handleTestData runs a canned listing query so the widget's expected
// payload shape, filters_applied and structuredContent included, can be
// inspected without a ChatGPT round-trip.
func (s *Server) handleTestData(w http.ResponseWriter, _ *http.Request) {
	postcode := "DY4"
	maxPrice := 100000
	result := s.store.QueryListings(store.ListingFilters{
		Postcode: postcode,
		MaxPrice: &maxPrice,
	}, 5)

	payload := handlers.ListingsPayload{
		Properties: result.Matches,
		FiltersApplied: handlers.FiltersApplied{
			Postcode: &postcode,
			MaxPrice: &maxPrice,
		},
		TotalResults: result.TotalCount,
		Showing:      len(result.Matches),
	}
	nested := payload
	writeJSON(w, http.StatusOK, handlers.QueryListingsOutput{
		ListingsPayload:   payload,
		StructuredContent: &nested,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
