package server

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/bastiangx/wordrank/pkg/config"
	"github.com/bastiangx/wordrank/pkg/suggest"
	"github.com/vmihailenco/msgpack/v5"
)

func newTestServer(t *testing.T, requests ...Request) (*Server, *bytes.Buffer) {
	t.Helper()

	completer := suggest.NewCachedCompleter(32)
	completer.AddWord("apple", 5)
	completer.AddWord("app", 2)
	completer.AddWord("application", 3)
	completer.AddWord("appliance", 4)

	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, req := range requests {
		if err := enc.Encode(req); err != nil {
			t.Fatalf("encoding request: %v", err)
		}
	}

	var out bytes.Buffer
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	srv := NewServerWithIO(completer, config.DefaultConfig(), cfgPath, &in, &out)
	return srv, &out
}

func TestCompleteRequest(t *testing.T) {
	srv, out := newTestServer(t, Request{ID: "req_001", Prefix: "app", Limit: 10})
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	var resp CompletionResponse
	if err := msgpack.NewDecoder(out).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if resp.ID != "req_001" {
		t.Errorf("response ID = %q", resp.ID)
	}
	if resp.Count != 4 {
		t.Fatalf("expected 4 suggestions, got %d", resp.Count)
	}
	wantOrder := []string{"apple", "appliance", "application", "app"}
	for i, w := range wantOrder {
		if resp.Suggestions[i].Word != w {
			t.Errorf("position %d: expected %q, got %q", i, w, resp.Suggestions[i].Word)
		}
		if resp.Suggestions[i].Rank != uint16(i+1) {
			t.Errorf("position %d: rank = %d", i, resp.Suggestions[i].Rank)
		}
	}
	if resp.Suggestions[0].Weight != 5 {
		t.Errorf("top suggestion weight = %d", resp.Suggestions[0].Weight)
	}
}

func TestCompleteRespectsLimit(t *testing.T) {
	srv, out := newTestServer(t, Request{ID: "req_002", Prefix: "app", Limit: 2})
	if err := srv.Start(); err != nil {
		t.Fatal(err)
	}

	var resp CompletionResponse
	if err := msgpack.NewDecoder(out).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 2 || resp.Suggestions[1].Word != "appliance" {
		t.Errorf("unexpected limited response: %+v", resp)
	}
}

func TestMissingPrefixIsError(t *testing.T) {
	srv, out := newTestServer(t, Request{ID: "req_003"})
	if err := srv.Start(); err != nil {
		t.Fatal(err)
	}

	var resp ErrorResponse
	if err := msgpack.NewDecoder(out).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.ID != "req_003" || resp.Code != 400 {
		t.Errorf("unexpected error response: %+v", resp)
	}
}

func TestPrefixTooLongIsError(t *testing.T) {
	long := make([]byte, 80)
	for i := range long {
		long[i] = 'a'
	}
	srv, out := newTestServer(t, Request{ID: "req_004", Prefix: string(long)})
	if err := srv.Start(); err != nil {
		t.Fatal(err)
	}

	var resp ErrorResponse
	if err := msgpack.NewDecoder(out).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Code != 400 {
		t.Errorf("expected 400, got %+v", resp)
	}
}

func TestAddWordThenComplete(t *testing.T) {
	srv, out := newTestServer(t,
		Request{ID: "w_001", Action: "add_word", Word: "apex", Weight: 9},
		Request{ID: "w_002", Action: "add_word", Word: "apple", Weight: 4},
		Request{ID: "req_005", Prefix: "ap", Limit: 2},
	)
	if err := srv.Start(); err != nil {
		t.Fatal(err)
	}

	dec := msgpack.NewDecoder(out)
	for _, id := range []string{"w_001", "w_002"} {
		var status StatusResponse
		if err := dec.Decode(&status); err != nil {
			t.Fatal(err)
		}
		if status.ID != id || status.Status != "ok" {
			t.Fatalf("unexpected status response: %+v", status)
		}
	}

	var resp CompletionResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatal(err)
	}
	// apple accumulated to 9 and ties with apex; apex wins on enumeration
	// order (stable sort over ascending-rune DFS).
	if resp.Count != 2 {
		t.Fatalf("expected 2 suggestions, got %+v", resp)
	}
	if resp.Suggestions[0].Weight != 9 || resp.Suggestions[1].Weight != 9 {
		t.Errorf("expected both weights 9, got %+v", resp.Suggestions)
	}
	if resp.Suggestions[0].Word != "apex" || resp.Suggestions[1].Word != "apple" {
		t.Errorf("unexpected tie order: %+v", resp.Suggestions)
	}
}

func TestStatsAction(t *testing.T) {
	srv, out := newTestServer(t, Request{ID: "s_001", Action: "stats"})
	if err := srv.Start(); err != nil {
		t.Fatal(err)
	}

	var status StatusResponse
	if err := msgpack.NewDecoder(out).Decode(&status); err != nil {
		t.Fatal(err)
	}
	if status.Stats["totalWords"] != 4 {
		t.Errorf("unexpected stats: %+v", status.Stats)
	}
}

func TestSetLimitsAction(t *testing.T) {
	limit := 8
	srv, out := newTestServer(t,
		Request{ID: "c_001", Action: "set_limits", MaxLimit: &limit},
		Request{ID: "req_006", Prefix: "app"},
	)
	if err := srv.Start(); err != nil {
		t.Fatal(err)
	}

	dec := msgpack.NewDecoder(out)
	var status StatusResponse
	if err := dec.Decode(&status); err != nil {
		t.Fatal(err)
	}
	if status.Status != "ok" {
		t.Fatalf("set_limits failed: %+v", status)
	}

	var resp CompletionResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 4 {
		t.Errorf("completion should still work after config update: %+v", resp)
	}
}

func TestUnknownActionIsError(t *testing.T) {
	srv, out := newTestServer(t, Request{ID: "x_001", Action: "bogus"})
	if err := srv.Start(); err != nil {
		t.Fatal(err)
	}

	var resp ErrorResponse
	if err := msgpack.NewDecoder(out).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Code != 400 {
		t.Errorf("expected 400 for unknown action, got %+v", resp)
	}
}
