// Package web serves a processed compile database over HTTP.
package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"ccjpost/internal/ccdb"
	"ccjpost/internal/model"
)

// Server answers queries against one processed database. Entries are never
// modified after NewServer, so handlers need no locking.
type Server struct {
	entries []model.CompileEntry
	logger  *zap.Logger
}

// NewServer wraps entries; a nil logger discards logs.
func NewServer(entries []model.CompileEntry, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{entries: entries, logger: logger}
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/entries", s.handleEntries)
	mux.HandleFunc("/api/files", s.handleFiles)
	mux.HandleFunc("/api/find", s.handleFind)
	return mux
}

// ListenAndServe blocks serving on addr.
func (s *Server) ListenAndServe(addr string) error {
	fmt.Printf("Serving %d entries at http://localhost%s/api/entries\n", len(s.entries), displayAddr(addr))
	return http.ListenAndServe(addr, s.Handler())
}

func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return addr
	}
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		return addr[i:]
	}
	return ":" + addr
}

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := ccdb.Dump(w, s.entries); err != nil {
		s.logger.Warn("write entries", zap.Error(err))
	}
}

func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	files := make([]string, len(s.entries))
	for i, e := range s.entries {
		files[i] = e.FullPath()
	}
	s.writeJSON(w, files)
}

type findResult struct {
	Directory string `json:"directory"`
	File      string `json:"file"`
	Command   string `json:"command"`
}

func (s *Server) handleFind(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	files := r.URL.Query()["file"]
	if len(files) == 0 {
		http.Error(w, "file parameter required", http.StatusBadRequest)
		return
	}

	results := []findResult{}
	for _, e := range ccdb.FindCommands(s.entries, files) {
		results = append(results, findResult{Directory: e.Directory, File: e.File, Command: e.Command})
	}
	s.logger.Debug("find", zap.Strings("file", files), zap.Int("matches", len(results)))
	s.writeJSON(w, results)
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		s.logger.Warn("write response", zap.Error(err))
	}
}
