package mcp

import (
	"encoding/json"
	"fmt"
)

// Standard JSON-RPC/MCP error codes used in this project.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602

	CodeServerError     = -32000
	CodeSessionRequired = -32001
	CodeUnknownTool     = -32002
)

func ok(id json.RawMessage, result any) *Response {
	if len(id) == 0 {
		id = json.RawMessage("null")
	}
	return &Response{JSONRPC: "2.0", ID: id, Result: result}
}

func rpcErr(id json.RawMessage, code int, msg string, data any) *Response {
	// Error envelopes always carry an id; it is null when unknown.
	if len(id) == 0 {
		id = json.RawMessage("null")
	}
	return &Response{JSONRPC: "2.0", ID: id, Error: &RPCError{Code: code, Message: msg, Data: data}}
}

func errParse(err error) *Response {
	return rpcErr(nil, CodeParseError, "parse error", err.Error())
}

func errInvalidRequest(id json.RawMessage, msg string) *Response {
	return rpcErr(id, CodeInvalidRequest, msg, nil)
}

func errInvalidParams(id json.RawMessage, data any) *Response {
	return rpcErr(id, CodeInvalidParams, "invalid params", data)
}

func errMethodNotFound(id json.RawMessage, method string) *Response {
	return rpcErr(id, CodeMethodNotFound, fmt.Sprintf("method %s not found", method), nil)
}

func errSessionRequired(id json.RawMessage) *Response {
	return rpcErr(id, CodeSessionRequired, "session required: initialize first or supply a valid Mcp-Session-Id header", nil)
}

func errUnknownTool(id json.RawMessage, name string) *Response {
	return rpcErr(id, CodeUnknownTool, fmt.Sprintf("unknown tool: %s", name), nil)
}
