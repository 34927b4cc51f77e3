package server

import (
	"log"
	"net/http"
	"strconv"
)

type createGameRequest struct {
	Nickname string `json:"nickname"`
}

type joinRequest struct {
	Nickname string `json:"nickname"`
}

type kickRequest struct {
	PlayerID int `json:"player_id"`
}

type createTeamsRequest struct {
	Names []string `json:"names"`
}

type playerRequest struct {
	PlayerID int `json:"player_id"`
}

type guessRequest struct {
	Input string `json:"input"`
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	if !s.enforceRateLimit(w, r, "create") {
		return
	}
	var req createGameRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "nickname is required")
		return
	}
	nickname, err := validateNickname(req.Nickname)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	game, admin := s.store.CreateGame(nickname, s.cfg)
	if err := s.persistGame(game, admin); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create game")
		return
	}
	s.sessions.SetIdentity(w, r, admin.ID, admin.Nickname)
	log.Printf("game created game_id=%s code=%s admin_id=%d", game.ID, game.Code, admin.ID)
	writeJSON(w, http.StatusCreated, map[string]any{
		"game_id": game.ID,
		"code":    game.Code,
		"user_id": admin.ID,
	})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	err := s.store.ViewGame(r.PathValue("id"), func(game *Game) error {
		payload = snapshot(game)
		return nil
	})
	if err != nil {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleJoinGame(w http.ResponseWriter, r *http.Request) {
	if !s.enforceRateLimit(w, r, "join") {
		return
	}
	var req joinRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "nickname is required")
		return
	}
	nickname, err := validateNickname(req.Nickname)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	game, user, err := s.store.JoinGame(r.PathValue("id"), nickname)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if err := s.persistUser(game, user); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to join game")
		return
	}
	s.sessions.SetIdentity(w, r, user.ID, user.Nickname)
	log.Printf("player joined game_id=%s user_id=%d nickname=%s", game.ID, user.ID, nickname)
	payload := snapshot(game)
	payload["user_id"] = user.ID
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	if !s.enforceRateLimit(w, r, "start") {
		return
	}
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	game, err := s.store.StartGame(r.PathValue("id"), caller)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if err := s.persistGameStatus(game); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to start game")
		return
	}
	log.Printf("game started game_id=%s status=%s", game.ID, game.Status)
	writeJSON(w, http.StatusOK, snapshot(game))
}

func (s *Server) handleRestartGame(w http.ResponseWriter, r *http.Request) {
	if !s.enforceRateLimit(w, r, "restart") {
		return
	}
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	game, err := s.store.RestartGame(r.PathValue("id"), caller)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if err := s.persistRestart(game); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to restart game")
		return
	}
	log.Printf("game restarted game_id=%s", game.ID)
	writeJSON(w, http.StatusOK, snapshot(game))
}

func (s *Server) handleLeaveGame(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	game, removed, err := s.store.LeaveGame(r.PathValue("id"), caller)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if err := s.persistUserRemoval(removed); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to leave game")
		return
	}
	log.Printf("player left game_id=%s user_id=%d", game.ID, removed.ID)
	writeJSON(w, http.StatusOK, snapshot(game))
}

func (s *Server) handleKickPlayer(w http.ResponseWriter, r *http.Request) {
	if !s.enforceRateLimit(w, r, "kick") {
		return
	}
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req kickRequest
	if err := readJSON(r.Body, &req); err != nil || req.PlayerID <= 0 {
		writeError(w, http.StatusBadRequest, "player_id is required")
		return
	}
	game, removed, err := s.store.KickPlayer(r.PathValue("id"), caller, req.PlayerID)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if err := s.persistUserRemoval(removed); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to remove player")
		return
	}
	log.Printf("player kicked game_id=%s user_id=%d", game.ID, removed.ID)
	writeJSON(w, http.StatusOK, snapshot(game))
}

func (s *Server) handleCreateTeams(w http.ResponseWriter, r *http.Request) {
	if !s.enforceRateLimit(w, r, "teams") {
		return
	}
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req createTeamsRequest
	if err := readJSON(r.Body, &req); err != nil || len(req.Names) == 0 {
		writeError(w, http.StatusBadRequest, "team names are required")
		return
	}
	if len(req.Names) > maxTeamsPerBatch {
		writeError(w, http.StatusBadRequest, "too many teams")
		return
	}
	names := make([]string, 0, len(req.Names))
	for _, raw := range req.Names {
		name, err := validateTeamName(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		names = append(names, name)
	}
	game, teams, err := s.store.CreateTeams(r.PathValue("id"), caller, names)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if err := s.persistTeams(game, teams); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create teams")
		return
	}
	log.Printf("teams created game_id=%s count=%d", game.ID, len(teams))
	writeJSON(w, http.StatusOK, snapshot(game))
}

func (s *Server) handleAssignPlayer(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	teamID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var req playerRequest
	if err := readJSON(r.Body, &req); err != nil || req.PlayerID <= 0 {
		writeError(w, http.StatusBadRequest, "player_id is required")
		return
	}
	game, membership, err := s.store.AssignPlayer(teamID, caller, req.PlayerID)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if err := s.persistMembership(game, membership); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to assign player")
		return
	}
	log.Printf("player assigned game_id=%s team_id=%d user_id=%d", game.ID, teamID, req.PlayerID)
	writeJSON(w, http.StatusOK, snapshot(game))
}

func (s *Server) handleRemovePlayer(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	teamID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var req playerRequest
	if err := readJSON(r.Body, &req); err != nil || req.PlayerID <= 0 {
		writeError(w, http.StatusBadRequest, "player_id is required")
		return
	}
	game, err := s.store.RemovePlayer(teamID, caller, req.PlayerID)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if err := s.persistMembershipRemoval(game, teamID, req.PlayerID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to remove player")
		return
	}
	log.Printf("player unassigned game_id=%s team_id=%d user_id=%d", game.ID, teamID, req.PlayerID)
	writeJSON(w, http.StatusOK, snapshot(game))
}

func (s *Server) handleCreateRound(w http.ResponseWriter, r *http.Request) {
	if !s.enforceRateLimit(w, r, "rounds") {
		return
	}
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	game, round, err := s.store.CreateRound(r.PathValue("id"), caller)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if err := s.persistRound(game, round); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create round")
		return
	}
	log.Printf("round created game_id=%s round_number=%d", game.ID, round.Number)
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":           round.ID,
		"round_number": round.Number,
		"status":       round.Status,
	})
}

func (s *Server) handleCompleteRound(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	roundID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	game, round, err := s.store.CompleteRound(roundID, caller)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if err := s.persistRoundStatus(round); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to complete round")
		return
	}
	log.Printf("round completed game_id=%s round_number=%d", game.ID, round.Number)
	writeJSON(w, http.StatusOK, map[string]any{
		"id":           round.ID,
		"round_number": round.Number,
		"status":       round.Status,
	})
}

func (s *Server) handleStartTurn(w http.ResponseWriter, r *http.Request) {
	if !s.enforceRateLimit(w, r, "turns") {
		return
	}
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	roundID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	words := sampleWords(s.cfg.WordsPerTurn)
	game, turn, err := s.store.StartTurn(roundID, caller, words, s.cfg.TurnDurationSeconds)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if err := s.persistTurn(game, turn); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to start turn")
		return
	}
	log.Printf("turn started game_id=%s turn_id=%d team_id=%d describer_id=%d", game.ID, turn.ID, turn.TeamID, turn.DescriberID)
	writeJSON(w, http.StatusCreated, turnPayload(turn))
}

func (s *Server) handleSubmitGuess(w http.ResponseWriter, r *http.Request) {
	if !s.enforceRateLimit(w, r, "guesses") {
		return
	}
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	turnID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var req guessRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "guess is required")
		return
	}
	input, err := validateGuessInput(req.Input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	game, guess, turn, err := s.store.SubmitGuess(turnID, caller, input, s.cfg.AllowDescriberGuess)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if guess.Points > 0 {
		if err := s.persistTurnState(turn); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to save guess")
			return
		}
		if err := s.persistTeamScore(game.teamByID(turn.TeamID)); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to save guess")
			return
		}
	}
	if err := s.persistGuess(game, turn, guess); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save guess")
		return
	}
	log.Printf("guess submitted game_id=%s turn_id=%d user_id=%d points=%d", game.ID, turn.ID, caller, guess.Points)
	writeJSON(w, http.StatusOK, map[string]any{
		"guess": guessPayload(guess),
		"turn":  turnPayload(turn),
	})
}

func (s *Server) handleEndTurn(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	turnID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	game, turn, finished, err := s.store.EndTurn(turnID, caller)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if err := s.persistTurnState(turn); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to end turn")
		return
	}
	if finished {
		if err := s.persistGameStatus(game); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to finish game")
			return
		}
		log.Printf("game finished game_id=%s", game.ID)
	}
	log.Printf("turn ended game_id=%s turn_id=%d", game.ID, turn.ID)
	writeJSON(w, http.StatusOK, turnPayload(turn))
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	userID, nickname := s.sessions.GetIdentity(w, r)
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":  userID,
		"nickname": nickname,
	})
}
