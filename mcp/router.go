package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"url2qr-mcp/metrics"
	"url2qr-mcp/session"
)

// notificationPrefix namespaces fire-and-forget methods (for example
// notifications/initialized).
const notificationPrefix = "notifications/"

// outcome is the router's verdict on one request: the JSON-RPC body (nil
// for notifications), the HTTP status to carry it, and a session id to
// advertise when initialize just created one.
type outcome struct {
	resp         *Response
	status       int
	newSessionID string
}

// methodFunc handles one bound JSON-RPC method after session resolution.
type methodFunc func(ctx context.Context, call boundCall) *Response

// boundCall is the dispatch context handed to method handlers.
type boundCall struct {
	req          Request
	sess         session.Session
	detectedBase string
}

// Router resolves sessions and dispatches JSON-RPC methods. Methods are
// registered in a table at construction; adding one is a new entry, not
// a new branch.
type Router struct {
	registry *session.Registry
	info     ServerInfo
	tools    map[string]tool
	toolList []ToolInfo
	methods  map[string]methodFunc
}

// NewRouter wires the dispatch table for the QR conversion tool surface.
func NewRouter(registry *session.Registry, info ServerInfo, converter Converter, recorder Recorder) *Router {
	r := &Router{
		registry: registry,
		info:     info,
		tools:    make(map[string]tool),
		methods:  make(map[string]methodFunc),
	}
	r.register(convertTool(converter, recorder))

	r.methods["ping"] = r.handlePing
	r.methods["tools/list"] = r.handleToolsList
	r.methods["tools/call"] = r.handleToolsCall
	return r
}

func (r *Router) register(t tool) {
	r.tools[t.info.Name] = t
	r.toolList = append(r.toolList, t.info)
}

// Dispatch routes one parsed request. sessionID is the raw header value
// (possibly empty); detectedBase the forwarded-header download base.
func (r *Router) Dispatch(ctx context.Context, req Request, sessionID, detectedBase string) outcome {
	started := time.Now()
	defer func() {
		metrics.RequestDuration.WithLabelValues(req.Method).Observe(time.Since(started).Seconds())
	}()

	if req.JSONRPC != "2.0" {
		return outcome{resp: errInvalidRequest(req.ID, "jsonrpc must be \"2.0\""), status: 400}
	}
	if req.Method == "" {
		return outcome{resp: errInvalidRequest(req.ID, "method is required"), status: 400}
	}

	// Notifications never error, even on an unknown session.
	if req.IsNotification() && strings.HasPrefix(req.Method, notificationPrefix) {
		if sessionID != "" {
			_, _ = r.registry.Touch(sessionID)
		}
		return outcome{status: 202}
	}

	if req.Method == "initialize" {
		return r.handleInitialize(req, sessionID)
	}

	sess, err := r.registry.Touch(sessionID)
	if err != nil {
		return outcome{resp: errSessionRequired(req.ID), status: 400}
	}

	handler, ok := r.methods[req.Method]
	if !ok {
		return outcome{resp: errMethodNotFound(req.ID, req.Method), status: 200}
	}
	return outcome{
		resp:   handler(ctx, boundCall{req: req, sess: sess, detectedBase: detectedBase}),
		status: 200,
	}
}

func (r *Router) handleInitialize(req Request, sessionID string) outcome {
	if sessionID != "" {
		if _, err := r.registry.Get(sessionID); err == nil {
			return outcome{resp: errInvalidRequest(req.ID, "server already initialized"), status: 400}
		}
	}

	var params InitializeParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return outcome{resp: errInvalidParams(req.ID, err.Error()), status: 200}
		}
	}

	sess := r.registry.Create(session.Meta{
		ProtocolVersion: params.ProtocolVersion,
		ClientName:      params.ClientInfo.Name,
		ClientVersion:   params.ClientInfo.Version,
	})
	metrics.SessionsCreated.Inc()
	metrics.SessionsActive.Set(float64(r.registry.Count()))

	result := InitializeResult{
		ProtocolVersion: ProtocolVersion,
		ServerInfo:      r.info,
	}
	return outcome{resp: ok(req.ID, result), status: 200, newSessionID: sess.ID}
}

func (r *Router) handlePing(_ context.Context, call boundCall) *Response {
	return ok(call.req.ID, struct{}{})
}

func (r *Router) handleToolsList(_ context.Context, call boundCall) *Response {
	return ok(call.req.ID, ListToolsResult{Tools: r.toolList})
}

func (r *Router) handleToolsCall(ctx context.Context, call boundCall) *Response {
	var params CallToolParams
	if err := json.Unmarshal(call.req.Params, &params); err != nil {
		return errInvalidParams(call.req.ID, err.Error())
	}
	t, found := r.tools[params.Name]
	if !found {
		return errUnknownTool(call.req.ID, params.Name)
	}
	return ok(call.req.ID, t.handler(ctx, params.Arguments, call.detectedBase))
}
