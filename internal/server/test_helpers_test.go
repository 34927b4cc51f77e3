package server

import (
	"bytes"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping test; listen unavailable: %v", err)
	}
	ts := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	ts.Start()
	return ts
}

// doRequest issues a JSON request; userID 0 omits the identity header.
func doRequest(t *testing.T, ts *httptest.Server, method, path string, userID int, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID > 0 {
		req.Header.Set(userIDHeader, strconv.Itoa(userID))
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func createGame(t *testing.T, ts *httptest.Server, nickname string) (string, string, int) {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/games", 0, map[string]any{
		"nickname": nickname,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return body["game_id"].(string), body["code"].(string), int(body["user_id"].(float64))
}

func joinPlayer(t *testing.T, ts *httptest.Server, gameID, nickname string) int {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/join", 0, map[string]any{
		"nickname": nickname,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return int(body["user_id"].(float64))
}

func fetchSnapshot(t *testing.T, ts *httptest.Server, gameID string) map[string]any {
	t.Helper()
	resp := doRequest(t, ts, http.MethodGet, "/api/games/"+gameID, 0, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	return decodeBody(t, resp)
}

// snapshotTeamIDs returns team ids in rotation order.
func snapshotTeamIDs(t *testing.T, snapshot map[string]any) []int {
	t.Helper()
	teamsRaw, ok := snapshot["teams"].([]any)
	if !ok {
		t.Fatalf("expected teams array, got %#v", snapshot["teams"])
	}
	ids := make([]int, 0, len(teamsRaw))
	for _, raw := range teamsRaw {
		team, ok := raw.(map[string]any)
		if !ok {
			t.Fatalf("expected team object, got %#v", raw)
		}
		ids = append(ids, int(team["id"].(float64)))
	}
	return ids
}
