package server

import (
	"net/http"
	"strconv"
	"strings"
	"testing"

	"word-blitz/internal/config"
)

func TestCreateAndJoinByCode(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	gameID, code, adminID := createGame(t, ts, "Ada")
	if adminID <= 0 {
		t.Fatalf("expected admin id, got %d", adminID)
	}

	// join by lowercase code instead of id
	resp := doRequest(t, ts, http.MethodPost, "/api/games/"+strings.ToLower(code)+"/join", 0, map[string]any{
		"nickname": "Ben",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	snapshot := fetchSnapshot(t, ts, gameID)
	usersRaw := snapshot["users"].([]any)
	if len(usersRaw) != 2 {
		t.Fatalf("expected two users, got %d", len(usersRaw))
	}
	if snapshot["status"] != statusLobby {
		t.Fatalf("expected LOBBY, got %v", snapshot["status"])
	}
}

func TestAuthStatusMapping(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	gameID, _, _ := createGame(t, ts, "Ada")
	benID := joinPlayer(t, ts, gameID, "Ben")

	// missing identity header
	resp := doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/start", 0, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", resp.StatusCode)
	}
	// identity unknown to the game
	resp = doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/start", 999, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown user, got %d", resp.StatusCode)
	}
	// known player but not admin
	resp = doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/start", benID, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", resp.StatusCode)
	}
	// unknown game
	resp = doRequest(t, ts, http.MethodGet, "/api/games/game-404", 0, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown game, got %d", resp.StatusCode)
	}
}

func TestFullGameFlow(t *testing.T) {
	cfg := config.Default()
	cfg.WinningScore = 1
	srv := New(nil, cfg)
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	gameID, _, adminID := createGame(t, ts, "Ada")
	benID := joinPlayer(t, ts, gameID, "Ben")
	catID := joinPlayer(t, ts, gameID, "Cat")
	danID := joinPlayer(t, ts, gameID, "Dan")

	resp := doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/teams", adminID, map[string]any{
		"names": []string{"Red", "Blue"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create teams: expected 200, got %d", resp.StatusCode)
	}
	teamIDs := snapshotTeamIDs(t, decodeBody(t, resp))
	if len(teamIDs) != 2 {
		t.Fatalf("expected two teams, got %d", len(teamIDs))
	}

	assign := func(teamID, playerID int) {
		t.Helper()
		resp := doRequest(t, ts, http.MethodPost, "/api/teams/"+strconv.Itoa(teamID)+"/assign", adminID, map[string]any{
			"player_id": playerID,
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("assign: expected 200, got %d", resp.StatusCode)
		}
	}
	assign(teamIDs[0], adminID)
	assign(teamIDs[0], benID)
	assign(teamIDs[1], catID)
	assign(teamIDs[1], danID)

	resp = doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/start", adminID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("start game: expected 200, got %d", resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/rounds", adminID, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create round: expected 201, got %d", resp.StatusCode)
	}
	roundID := int(decodeBody(t, resp)["id"].(float64))

	// Blue cannot open the first turn
	resp = doRequest(t, ts, http.MethodPost, "/api/rounds/"+strconv.Itoa(roundID)+"/turns", catID, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("wrong team: expected 409, got %d", resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/rounds/"+strconv.Itoa(roundID)+"/turns", adminID, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("start turn: expected 201, got %d", resp.StatusCode)
	}
	turnBody := decodeBody(t, resp)
	turnID := int(turnBody["id"].(float64))
	wordsRaw := turnBody["words"].([]any)
	if len(wordsRaw) != cfg.WordsPerTurn {
		t.Fatalf("expected %d words, got %d", cfg.WordsPerTurn, len(wordsRaw))
	}
	firstWord := wordsRaw[0].(string)

	// case-flipped guess still matches and keeps original casing
	resp = doRequest(t, ts, http.MethodPost, "/api/turns/"+strconv.Itoa(turnID)+"/guesses", benID, map[string]any{
		"input": strings.ToUpper(firstWord),
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("guess: expected 200, got %d", resp.StatusCode)
	}
	guessBody := decodeBody(t, resp)
	guess := guessBody["guess"].(map[string]any)
	if int(guess["points"].(float64)) != 1 {
		t.Fatalf("expected one point, got %v", guess["points"])
	}
	turnPart := guessBody["turn"].(map[string]any)
	solved := turnPart["solved_words"].([]any)
	if len(solved) != 1 || solved[0].(string) != firstWord {
		t.Fatalf("expected solved word %q, got %#v", firstWord, solved)
	}

	// repeated solve maps to conflict
	resp = doRequest(t, ts, http.MethodPost, "/api/turns/"+strconv.Itoa(turnID)+"/guesses", benID, map[string]any{
		"input": firstWord,
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("already solved: expected 409, got %d", resp.StatusCode)
	}

	// score reached winningScore but the game finishes only at end turn
	snapshot := fetchSnapshot(t, ts, gameID)
	if snapshot["status"] != statusPlaying {
		t.Fatalf("expected PLAYING before end turn, got %v", snapshot["status"])
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/turns/"+strconv.Itoa(turnID)+"/end", adminID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("end turn: expected 200, got %d", resp.StatusCode)
	}
	snapshot = fetchSnapshot(t, ts, gameID)
	if snapshot["status"] != statusFinished {
		t.Fatalf("expected FINISHED after end turn, got %v", snapshot["status"])
	}

	// restart brings the lobby back with the roster intact
	resp = doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/restart", adminID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("restart: expected 200, got %d", resp.StatusCode)
	}
	snapshot = fetchSnapshot(t, ts, gameID)
	if snapshot["status"] != statusLobby {
		t.Fatalf("expected LOBBY after restart, got %v", snapshot["status"])
	}
	if rounds := snapshot["rounds"].([]any); len(rounds) != 0 {
		t.Fatalf("expected no rounds after restart, got %d", len(rounds))
	}
	for _, raw := range snapshot["teams"].([]any) {
		team := raw.(map[string]any)
		if int(team["score"].(float64)) != 0 {
			t.Fatalf("expected zeroed score, got %v", team["score"])
		}
		if len(team["members"].([]any)) != 2 {
			t.Fatalf("expected memberships preserved, got %#v", team["members"])
		}
	}
	if users := snapshot["users"].([]any); len(users) != 4 {
		t.Fatalf("expected four users after restart, got %d", len(users))
	}
}

func TestGuessValidation(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	gameID, _, adminID := createGame(t, ts, "Ada")
	resp := doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/teams", adminID, map[string]any{
		"names": []string{"Red"},
	})
	teamIDs := snapshotTeamIDs(t, decodeBody(t, resp))
	doRequest(t, ts, http.MethodPost, "/api/teams/"+strconv.Itoa(teamIDs[0])+"/assign", adminID, map[string]any{
		"player_id": adminID,
	})
	resp = doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/rounds", adminID, nil)
	roundID := int(decodeBody(t, resp)["id"].(float64))
	resp = doRequest(t, ts, http.MethodPost, "/api/rounds/"+strconv.Itoa(roundID)+"/turns", adminID, nil)
	turnID := int(decodeBody(t, resp)["id"].(float64))

	resp = doRequest(t, ts, http.MethodPost, "/api/turns/"+strconv.Itoa(turnID)+"/guesses", adminID, map[string]any{
		"input": "   ",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank guess, got %d", resp.StatusCode)
	}
	resp = doRequest(t, ts, http.MethodPost, "/api/turns/"+strconv.Itoa(turnID)+"/guesses", adminID, map[string]any{
		"input": strings.Repeat("x", maxGuessLength+1),
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized guess, got %d", resp.StatusCode)
	}
}

func TestJoinRejectsWhenFull(t *testing.T) {
	cfg := config.Default()
	cfg.MaxPlayers = 2
	srv := New(nil, cfg)
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	gameID, _, _ := createGame(t, ts, "Ada")
	joinPlayer(t, ts, gameID, "Ben")

	resp := doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/join", 0, map[string]any{
		"nickname": "Cat",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for full game, got %d", resp.StatusCode)
	}
}

func TestSessionRecall(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	resp := doRequest(t, ts, http.MethodPost, "/api/games", 0, map[string]any{
		"nickname": "Ada",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create game: expected 201, got %d", resp.StatusCode)
	}
	adminID := int(decodeBody(t, resp)["user_id"].(float64))

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "wb_session" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatalf("expected session cookie")
	}

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/session", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.AddCookie(cookie)
	sessionResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() { _ = sessionResp.Body.Close() })
	body := decodeBody(t, sessionResp)
	if int(body["user_id"].(float64)) != adminID || body["nickname"] != "Ada" {
		t.Fatalf("expected recalled identity, got %#v", body)
	}
}
