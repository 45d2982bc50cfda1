package protocol

import (
	"encoding/json"
	"testing"

	"github.com/mcpcore/mcp-go/mcperr"
)

func TestParseLine_Request(t *testing.T) {
	env, err := ParseLine([]byte(`{"jsonrpc":"2.0","id":"abc","method":"roots/list","params":{}}`))
	if err != nil {
		t.Fatalf("ParseLine() error = %v", err)
	}
	if env.Request == nil {
		t.Fatal("expected Request, got nil")
	}
	if env.Response != nil || env.Notification != nil {
		t.Fatal("expected only Request to be set")
	}
	if env.Request.ID != "abc" || env.Request.Method != "roots/list" {
		t.Errorf("unexpected request: %+v", env.Request)
	}
}

func TestParseLine_Response(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantErr bool
		check   func(t *testing.T, r *Response)
	}{
		{
			name: "success result",
			line: `{"jsonrpc":"2.0","id":"1","result":{"tools":[]}}`,
			check: func(t *testing.T, r *Response) {
				if r.Error != nil {
					t.Error("expected no error")
				}
				var result struct {
					Tools []any `json:"tools"`
				}
				if err := json.Unmarshal(r.Result, &result); err != nil {
					t.Fatalf("unmarshal result: %v", err)
				}
			},
		},
		{
			name: "rpc error",
			line: `{"jsonrpc":"2.0","id":"1","error":{"code":-32001,"message":"boom"}}`,
			check: func(t *testing.T, r *Response) {
				if r.Error == nil {
					t.Fatal("expected error")
				}
				if r.Error.Code != -32001 || r.Error.Message != "boom" {
					t.Errorf("unexpected error: %+v", r.Error)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := ParseLine([]byte(tt.line))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLine() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if env.Response == nil {
				t.Fatal("expected Response, got nil")
			}
			if env.Request != nil || env.Notification != nil {
				t.Fatal("expected only Response to be set")
			}
			tt.check(t, env.Response)
		})
	}
}

func TestParseLine_Notification(t *testing.T) {
	env, err := ParseLine([]byte(`{"jsonrpc":"2.0","method":"notifications/message","params":{"level":"info"}}`))
	if err != nil {
		t.Fatalf("ParseLine() error = %v", err)
	}
	if env.Notification == nil {
		t.Fatal("expected Notification, got nil")
	}
	if env.Request != nil || env.Response != nil {
		t.Fatal("expected only Notification to be set")
	}
	if env.Notification.Method != "notifications/message" {
		t.Errorf("unexpected method: %s", env.Notification.Method)
	}
}

func TestParseLine_Malformed(t *testing.T) {
	_, err := ParseLine([]byte(`{not json`))
	if err == nil {
		t.Fatal("expected error for malformed line")
	}
	if !mcperr.Is(err, mcperr.KindParse) {
		t.Errorf("expected KindParse, got %v", err)
	}
}

func TestNewRequest_RoundTrip(t *testing.T) {
	req, err := NewRequest("id-1", "tools/call", map[string]any{"name": "echo"})
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	env, err := ParseLine(data)
	if err != nil {
		t.Fatalf("ParseLine() error = %v", err)
	}
	if env.Request == nil {
		t.Fatal("expected Request after round trip")
	}
	if env.Request.ID != req.ID || env.Request.Method != req.Method {
		t.Errorf("round trip mismatch: got %+v, want %+v", env.Request, req)
	}
}

func TestNewNotification_NilParams(t *testing.T) {
	notif, err := NewNotification("initialized", nil)
	if err != nil {
		t.Fatalf("NewNotification() error = %v", err)
	}
	if notif.Params != nil {
		t.Errorf("expected nil params, got %s", notif.Params)
	}

	data, err := json.Marshal(notif)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if _, ok := raw["params"]; ok {
		t.Error("expected params to be omitted when nil")
	}
	if _, ok := raw["id"]; ok {
		t.Error("expected no id field on a notification")
	}
}
