// Package api exposes the ledger engine over HTTP. Instructions are
// POSTed by name; records are fetched by namespace plus the logical key
// tuple, which the server resolves to a derived address.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
	"github.com/pritamp20/socialchain-ledger/internal/engine"
	"github.com/pritamp20/socialchain-ledger/internal/metrics"
)

const maxRequestBodyBytes = 1 << 20 // 1 MB

type Server struct {
	engine *engine.Engine
	logger *slog.Logger
}

func NewServer(eng *engine.Engine, logger *slog.Logger) *Server {
	return &Server{
		engine: eng,
		logger: logger.With("component", "api"),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/instructions/{name}", s.handleInstruction)
	mux.HandleFunc("GET /v1/records/{namespace}", s.handleGetRecord)
	mux.HandleFunc("GET /v1/addresses/{namespace}", s.handleDeriveAddress)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return mux
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusFor maps rejection kinds to HTTP status codes. Untyped errors
// are internal.
func statusFor(kind model.ErrorKind) int {
	switch kind {
	case model.KindUnauthorized:
		return http.StatusForbidden
	case model.KindNotFound:
		return http.StatusNotFound
	case model.KindDuplicate, model.KindInvalidState:
		return http.StatusConflict
	case model.KindExpired:
		return http.StatusGone
	case model.KindInsufficientBalance:
		return http.StatusUnprocessableEntity
	case model.KindInvalidConfig, model.KindInvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	kind := model.KindOf(err)
	if kind == "" {
		s.logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}
	writeJSON(w, statusFor(kind), errorResponse{Error: err.Error(), Kind: string(kind)})
}

// writeJSON writes v as JSON with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSONBody reads and decodes a JSON request body into v.
// Returns false (and writes an error response) if decoding fails.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return false
	}
	return true
}

func (s *Server) observeRead(namespace string, found bool) {
	result := "hit"
	if !found {
		result = "miss"
	}
	metrics.RecordReadsTotal.WithLabelValues(namespace, result).Inc()
}
