// Package protocol implements the line-framed JSON-RPC 2.0 message model
// spoken between an MCP client and a child-process server: one UTF-8 JSON
// object per newline, classified structurally into a request, a response,
// or a notification.
package protocol

import (
	"encoding/json"

	"github.com/mcpcore/mcp-go/mcperr"
	"github.com/ybbus/jsonrpc/v3"
)

// Version is the literal JSON-RPC version string every message carries.
const Version = "2.0"

// Request is a client- or server-originated call expecting a Response.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// NewRequest builds a well-formed Request, marshaling params if present.
func NewRequest(id, method string, params any) (*Request, error) {
	raw, err := marshalParams(params)
	if err != nil {
		return nil, mcperr.Parse(err, "marshal params for %s", method)
	}
	return &Request{JSONRPC: Version, ID: id, Method: method, Params: raw}, nil
}

// Response carries exactly one of Result or Error, keyed by ID.
type Response struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      string           `json:"id"`
	Result  json.RawMessage  `json:"result,omitempty"`
	Error   *jsonrpc.RPCError `json:"error,omitempty"`
}

// Notification carries no ID and expects no reply.
type Notification struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// NewNotification builds a well-formed Notification, marshaling params if present.
func NewNotification(method string, params any) (*Notification, error) {
	raw, err := marshalParams(params)
	if err != nil {
		return nil, mcperr.Parse(err, "marshal params for %s", method)
	}
	return &Notification{JSONRPC: Version, Method: method, Params: raw}, nil
}

func marshalParams(params any) (json.RawMessage, error) {
	if params == nil {
		return nil, nil
	}
	return json.Marshal(params)
}

// Envelope is the classified result of parsing one line: exactly one of
// Request, Response, or Notification is non-nil.
type Envelope struct {
	Request      *Request
	Response     *Response
	Notification *Notification
}

// envelopeWire is the superset shape used only to discriminate a raw line;
// presence of "id" and "method" distinguishes the three message kinds, per
// the structural rule JSON-RPC 2.0 specifies.
type envelopeWire struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *string          `json:"id"`
	Method  *string          `json:"method"`
	Params  json.RawMessage  `json:"params"`
	Result  json.RawMessage  `json:"result"`
	Error   *jsonrpc.RPCError `json:"error"`
}

// ParseLine classifies one line of input. It never panics; malformed JSON
// comes back as a *mcperr.Error of KindParse so the caller can log and
// continue rather than treat the stream as broken.
func ParseLine(line []byte) (*Envelope, error) {
	var w envelopeWire
	if err := json.Unmarshal(line, &w); err != nil {
		return nil, mcperr.Parse(err, "invalid JSON-RPC line")
	}

	switch {
	case w.ID == nil:
		// No id: notification. A missing method on a notification is still
		// structurally a notification; the caller decides whether to act on it.
		method := ""
		if w.Method != nil {
			method = *w.Method
		}
		return &Envelope{Notification: &Notification{
			JSONRPC: w.JSONRPC,
			Method:  method,
			Params:  w.Params,
		}}, nil

	case w.Method != nil:
		// Both id and method: a request (from the server, which this client
		// does not support executing — see transport/stdio).
		return &Envelope{Request: &Request{
			JSONRPC: w.JSONRPC,
			ID:      *w.ID,
			Method:  *w.Method,
			Params:  w.Params,
		}}, nil

	default:
		// id with no method: a response.
		return &Envelope{Response: &Response{
			JSONRPC: w.JSONRPC,
			ID:      *w.ID,
			Result:  w.Result,
			Error:   w.Error,
		}}, nil
	}
}
