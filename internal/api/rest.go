package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	proto "github.com/devghori1264/aerophoenix/osplugin/internal/proto"
)

// TokenHeader carries the access token on HTTP requests.
const TokenHeader = "access_token"

// Reader is the part of the gRPC service the HTTP shim exposes.
type Reader interface {
	Query(ctx context.Context, req *proto.QueryRequest) (*proto.QueryResponse, error)
	WorkloadEvents(ctx context.Context, req *proto.WorkloadEventsRequest) (*proto.WorkloadEventsResponse, error)
}

type Handler struct {
	srv Reader
	log *zap.Logger
}

// NewHTTPHandler serves read-only views of instances next to the gRPC API.
func NewHTTPHandler(srv Reader, log *zap.Logger) http.Handler {
	h := &Handler{srv: srv, log: log.Named("http")}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", h.handlePing)
	mux.HandleFunc("GET /healthz", h.handleHealth)
	mux.HandleFunc("GET /v1/instances/{id}", h.handleQuery)
	mux.HandleFunc("GET /v1/instances/{id}/events", h.handleEvents)
	return mux
}

func (h *Handler) handlePing(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"msg": "pong from osplugin http"})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleQuery(w http.ResponseWriter, r *http.Request) {
	res, err := h.srv.Query(r.Context(), &proto.QueryRequest{
		AccessToken:   r.Header.Get(TokenHeader),
		HostIp:        r.URL.Query().Get("hostIp"),
		AppInstanceId: r.PathValue("id"),
	})
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "query failed", err)
		return
	}
	writeBody(w, res.Response)
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	res, err := h.srv.WorkloadEvents(r.Context(), &proto.WorkloadEventsRequest{
		AccessToken:   r.Header.Get(TokenHeader),
		HostIp:        r.URL.Query().Get("hostIp"),
		AppInstanceId: r.PathValue("id"),
	})
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "events failed", err)
		return
	}
	writeBody(w, res.Response)
}

// writeBody relays a service JSON document, taking the HTTP status from its
// code field when it has one.
func writeBody(w http.ResponseWriter, body string) {
	status := http.StatusOK
	if strings.HasPrefix(strings.TrimSpace(body), "{") {
		var doc struct {
			Code int `json:"code"`
		}
		if json.Unmarshal([]byte(body), &doc) == nil && doc.Code >= 100 && doc.Code <= 599 {
			status = doc.Code
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string, err error) {
	writeJSON(w, status, map[string]string{"error": msg})
	h.log.Warn("http request failed", zap.Int("status", status), zap.String("msg", msg), zap.Error(err))
}
