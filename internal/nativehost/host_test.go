package nativehost

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/niteowll/SnoozeTabs/common"
)

// mockClient records calls and returns canned results or an error.
type mockClient struct {
	scheduled  []*common.SnoozeParams
	confirmed  []*common.SnoozeParams
	canceled   []*common.SnoozeParams
	updated    [][2]*common.SnoozeParams
	setConfirm []bool
	listed     int
	closed     bool

	confirmKey string
	listRes    *common.ListResponse
	err        error
}

func (c *mockClient) Schedule(p *common.SnoozeParams) error {
	c.scheduled = append(c.scheduled, p)
	return c.err
}

func (c *mockClient) Confirm(p *common.SnoozeParams) (*common.ConfirmResponse, error) {
	c.confirmed = append(c.confirmed, p)
	if c.err != nil {
		return nil, c.err
	}
	return &common.ConfirmResponse{Key: c.confirmKey}, nil
}

func (c *mockClient) Cancel(p *common.SnoozeParams) error {
	c.canceled = append(c.canceled, p)
	return c.err
}

func (c *mockClient) Update(old, updated *common.SnoozeParams) (*common.ConfirmResponse, error) {
	c.updated = append(c.updated, [2]*common.SnoozeParams{old, updated})
	if c.err != nil {
		return nil, c.err
	}
	return &common.ConfirmResponse{Key: c.confirmKey}, nil
}

func (c *mockClient) SetConfirm(dontShow bool) error {
	c.setConfirm = append(c.setConfirm, dontShow)
	return c.err
}

func (c *mockClient) List() (*common.ListResponse, error) {
	c.listed++
	if c.err != nil {
		return nil, c.err
	}
	return c.listRes, nil
}

func (c *mockClient) Close() error {
	c.closed = true
	return nil
}

// runHost feeds one request through a host wired to in-memory pipes and
// returns the decoded response.
func runHost(t *testing.T, client Client, req *Request) *Response {
	t.Helper()
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	var stdin, stdout bytes.Buffer
	if err := WriteMessage(&stdin, body); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	h := &Host{client: client, version: "1.2.3", stdin: &stdin, stdout: &stdout}
	if err := h.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	out, err := ReadMessage(&stdout)
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	var res Response
	if err := json.Unmarshal(out, &res); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return &res
}

func rawParams(t *testing.T, p *common.SnoozeParams) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}
	return b
}

// TestHostVersion verifies the version handshake answers locally without
// touching the daemon.
func TestHostVersion(t *testing.T) {
	client := &mockClient{}
	res := runHost(t, client, &Request{ID: 1, Method: "version"})

	if !res.Ok || res.ID != 1 {
		t.Fatalf("response = %+v", res)
	}
	result, ok := res.Result.(map[string]any)
	if !ok || result["version"] != "1.2.3" {
		t.Errorf("result = %v", res.Result)
	}
	if len(client.scheduled)+client.listed != 0 {
		t.Error("daemon client touched for a version request")
	}
}

// TestHostDispatch verifies each method reaches the matching client call.
func TestHostDispatch(t *testing.T) {
	p := &common.SnoozeParams{Url: "https://example.com", Time: 1000}

	t.Run("schedule", func(t *testing.T) {
		client := &mockClient{}
		res := runHost(t, client, &Request{ID: 2, Method: "schedule", Message: rawParams(t, p)})
		if !res.Ok || len(client.scheduled) != 1 || client.scheduled[0].Url != p.Url {
			t.Fatalf("res=%+v scheduled=%v", res, client.scheduled)
		}
	})

	t.Run("confirm", func(t *testing.T) {
		client := &mockClient{confirmKey: "abc123"}
		res := runHost(t, client, &Request{ID: 3, Method: "confirm", Message: rawParams(t, p)})
		if !res.Ok || len(client.confirmed) != 1 {
			t.Fatalf("res=%+v confirmed=%v", res, client.confirmed)
		}
		result, _ := res.Result.(map[string]any)
		if result["key"] != "abc123" {
			t.Errorf("result = %v", res.Result)
		}
	})

	t.Run("cancel", func(t *testing.T) {
		client := &mockClient{}
		res := runHost(t, client, &Request{ID: 4, Method: "cancel", Message: rawParams(t, p)})
		if !res.Ok || len(client.canceled) != 1 {
			t.Fatalf("res=%+v canceled=%v", res, client.canceled)
		}
	})

	t.Run("update", func(t *testing.T) {
		client := &mockClient{confirmKey: "new"}
		up := common.UpdateParams{Old: *p, Updated: common.SnoozeParams{Url: p.Url, Time: 2000}}
		b, _ := json.Marshal(up)
		res := runHost(t, client, &Request{ID: 5, Method: "update", Message: b})
		if !res.Ok || len(client.updated) != 1 {
			t.Fatalf("res=%+v updated=%v", res, client.updated)
		}
		if client.updated[0][1].Time != 2000 {
			t.Errorf("updated params = %+v", client.updated[0][1])
		}
	})

	t.Run("setconfirm", func(t *testing.T) {
		client := &mockClient{}
		res := runHost(t, client, &Request{ID: 6, Method: "setconfirm", Message: json.RawMessage(`{"dontShow":true}`)})
		if !res.Ok || len(client.setConfirm) != 1 || !client.setConfirm[0] {
			t.Fatalf("res=%+v setConfirm=%v", res, client.setConfirm)
		}
	})

	t.Run("list", func(t *testing.T) {
		client := &mockClient{listRes: &common.ListResponse{DontShow: true}}
		res := runHost(t, client, &Request{ID: 7, Method: "list"})
		if !res.Ok || client.listed != 1 {
			t.Fatalf("res=%+v listed=%d", res, client.listed)
		}
	})
}

// TestHostRejectsBadRequests covers the error paths: unknown method,
// missing url, daemon failure, and unparseable payloads.
func TestHostRejectsBadRequests(t *testing.T) {
	t.Run("unknown method", func(t *testing.T) {
		res := runHost(t, &mockClient{}, &Request{ID: 8, Method: "defenestrate"})
		if res.Ok || res.Error == "" {
			t.Fatalf("res = %+v", res)
		}
	})

	t.Run("missing url", func(t *testing.T) {
		client := &mockClient{}
		res := runHost(t, client, &Request{ID: 9, Method: "schedule", Message: json.RawMessage(`{}`)})
		if res.Ok {
			t.Fatal("schedule without url accepted")
		}
		if len(client.scheduled) != 0 {
			t.Error("daemon reached despite validation failure")
		}
	})

	t.Run("daemon error", func(t *testing.T) {
		client := &mockClient{err: errors.New("daemon gone")}
		res := runHost(t, client, &Request{ID: 10, Method: "cancel", Message: json.RawMessage(`{"url":"https://x"}`)})
		if res.Ok || res.Error != "daemon gone" {
			t.Fatalf("res = %+v", res)
		}
	})

	t.Run("bad json", func(t *testing.T) {
		var stdin, stdout bytes.Buffer
		if err := WriteMessage(&stdin, []byte("not json")); err != nil {
			t.Fatalf("WriteMessage: %v", err)
		}
		h := &Host{client: &mockClient{}, stdin: &stdin, stdout: &stdout}
		if err := h.Run(); err != nil {
			t.Fatalf("Run: %v", err)
		}
		out, err := ReadMessage(&stdout)
		if err != nil {
			t.Fatalf("ReadMessage: %v", err)
		}
		var res Response
		if err := json.Unmarshal(out, &res); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if res.Ok || res.ID != 0 {
			t.Fatalf("res = %+v, want error with id 0", res)
		}
	})
}

// TestFrameLimits verifies the 1MB native messaging cap on both sides.
func TestFrameLimits(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMessage(&buf, make([]byte, MaxMessageSize+1)); err == nil {
		t.Error("oversized write accepted")
	}

	buf.Reset()
	// Header claiming a payload past the cap.
	buf.Write([]byte{0xff, 0xff, 0xff, 0x7f})
	if _, err := ReadMessage(&buf); err == nil {
		t.Error("oversized read accepted")
	}
}

var _ Client = (*mockClient)(nil)
