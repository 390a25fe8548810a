package mcp

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
)

// SessionHeader carries the opaque session id on every call after
// initialize, and is set on the initialize response.
const SessionHeader = "Mcp-Session-Id"

// maxBodyBytes bounds protocol request bodies.
const maxBodyBytes = 1 << 20

// Handler adapts the Router to HTTP. Protocol-level failures ride HTTP
// 200 bodies; transport-level failures (verb, empty body, bad JSON) use
// HTTP statuses directly.
type Handler struct {
	router *Router
}

// NewHandler returns the HTTP endpoint for the protocol path.
func NewHandler(router *Router) *Handler {
	return &Handler{router: router}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeResponse(w, http.StatusBadRequest, errParse(err))
		return
	}
	if len(body) == 0 {
		writeResponse(w, http.StatusBadRequest, errInvalidRequest(nil, "empty request body"))
		return
	}

	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		writeResponse(w, http.StatusBadRequest, errParse(err))
		return
	}

	out := h.router.Dispatch(r.Context(), req, r.Header.Get(SessionHeader), detectBase(r))
	if out.newSessionID != "" {
		w.Header().Set(SessionHeader, out.newSessionID)
	}
	if out.resp == nil {
		w.WriteHeader(out.status)
		return
	}
	writeResponse(w, out.status, out.resp)
}

func writeResponse(w http.ResponseWriter, status int, resp *Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("[mcp] failed to write response: %v", err)
	}
}

// detectBase derives the public download base from forwarded proxy
// headers. Only X-Forwarded-Host counts as detection; a plain Host
// header does not, so direct traffic falls through to the configured
// base or the localhost fallback.
func detectBase(r *http.Request) string {
	host := r.Header.Get("X-Forwarded-Host")
	if host == "" {
		return ""
	}
	if i := strings.IndexByte(host, ','); i >= 0 {
		host = strings.TrimSpace(host[:i])
	}
	proto := r.Header.Get("X-Forwarded-Proto")
	if proto == "" {
		proto = "http"
	}
	return proto + "://" + host
}
