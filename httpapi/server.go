// Package httpapi republishes the WebFetch operations over HTTP/REST.
// Every tool is callable via POST /tools/{name} plus a convenience
// endpoint per operation; responses use a {"success", "result"/
// "error"} envelope around the same request/response contracts the
// MCP transport carries.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/gaurav-prasanna/webfetch/mcp"
	"github.com/gaurav-prasanna/webfetch/service"
)

// Server is the REST façade over the WebFetch service.
type Server struct {
	svc *service.Service
	log *zap.Logger
}

// New creates the façade.
func New(svc *service.Service, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{svc: svc, log: log}
}

// envelope is the uniform response wrapper.
type envelope struct {
	Success bool   `json:"success"`
	Result  any    `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /tools", s.handleListTools)
	mux.HandleFunc("POST /tools/{name}", s.handleToolCall)

	// Convenience endpoints, one per operation.
	mux.HandleFunc("POST /fetch", s.tool("fetch_webpage"))
	mux.HandleFunc("POST /fetch-multiple", s.tool("fetch_multiple_pages"))
	mux.HandleFunc("POST /search", s.tool("search_webpage_content"))
	mux.HandleFunc("POST /links", s.tool("extract_links"))
	mux.HandleFunc("POST /metadata", s.tool("get_page_metadata"))

	return mux
}

// ListenAndServe runs the façade until the context is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.log.Info("http server listening", zap.String("addr", addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "WebFetch HTTP API",
		"version": "1.0.0",
		"status":  "running",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleListTools(w http.ResponseWriter, _ *http.Request) {
	tools := mcp.Tools()
	writeJSON(w, http.StatusOK, map[string]any{
		"tools": tools,
		"count": len(tools),
	})
}

// tool adapts a named operation into a convenience handler.
func (s *Server) tool(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.callTool(w, r, name)
	}
}

func (s *Server) handleToolCall(w http.ResponseWriter, r *http.Request) {
	s.callTool(w, r, r.PathValue("name"))
}

func (s *Server) callTool(w http.ResponseWriter, r *http.Request, name string) {
	var call func(ctx context.Context, body []byte) (any, error)

	switch name {
	case "fetch_webpage":
		call = decodeAndRun(s.svc.FetchWebpage)
	case "fetch_multiple_pages":
		call = decodeAndRun(s.svc.FetchMultiplePages)
	case "search_webpage_content":
		call = decodeAndRun(s.svc.SearchWebpageContent)
	case "extract_links":
		call = decodeAndRun(s.svc.ExtractLinks)
	case "get_page_metadata":
		call = decodeAndRun(s.svc.GetPageMetadata)
	default:
		writeJSON(w, http.StatusNotFound, envelope{Success: false, Error: "tool '" + name + "' not found"})
		return
	}

	body, err := readBody(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: err.Error()})
		return
	}

	result, err := call(r.Context(), body)
	if err != nil {
		s.log.Warn("tool call rejected", zap.String("tool", name), zap.Error(err))
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Result: result})
}

// decodeAndRun binds a typed service method to a raw request body.
func decodeAndRun[Req any, Res any](fn func(context.Context, Req) (Res, error)) func(ctx context.Context, body []byte) (any, error) {
	return func(ctx context.Context, body []byte) (any, error) {
		var req Req
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, errors.New("invalid JSON body: " + err.Error())
		}
		res, err := fn(ctx, req)
		if err != nil {
			return nil, err
		}
		return res, nil
	}
}

const maxRequestBody = 4 * 1024 * 1024

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		return nil, errors.New("reading request body: " + err.Error())
	}
	if len(body) == 0 {
		body = []byte("{}")
	}
	return body, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
