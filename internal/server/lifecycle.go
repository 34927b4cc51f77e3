package server

// Admin-gated lifecycle operations plus endTurn. Every check runs before any
// mutation for the addressed entity; the turn-complete then game-finish
// cascade in EndTurn is two sequential steps by design of the polling model.

func requireAdmin(game *Game, callerID int) error {
	if game.userByID(callerID) == nil {
		return errUserNotFound
	}
	if game.AdminID != callerID {
		return errUnauthorized
	}
	return nil
}

func (s *Store) StartGame(idOrCode string, callerID int) (*Game, error) {
	return s.UpdateGame(idOrCode, func(game *Game) error {
		if err := requireAdmin(game, callerID); err != nil {
			return err
		}
		if game.Status == statusFinished {
			return errGameFinished
		}
		if game.Status != statusLobby {
			return errGameStarted
		}
		game.Status = statusPlaying
		return nil
	})
}

// RestartGame resets the game to LOBBY: rounds and turns are dropped and
// team scores zeroed, while users, teams and memberships survive.
func (s *Store) RestartGame(idOrCode string, callerID int) (*Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game := s.resolveLocked(idOrCode)
	if game == nil {
		return nil, errGameNotFound
	}
	if err := requireAdmin(game, callerID); err != nil {
		return nil, err
	}
	for i := range game.Rounds {
		round := &game.Rounds[i]
		delete(s.roundGames, round.ID)
		for _, turn := range round.Turns {
			delete(s.turnGames, turn.ID)
		}
	}
	game.Rounds = nil
	for i := range game.Teams {
		game.Teams[i].Score = 0
	}
	game.Status = statusLobby
	game.CurrentRound = 0
	return game, nil
}

func (s *Store) LeaveGame(idOrCode string, callerID int) (*Game, User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game := s.resolveLocked(idOrCode)
	if game == nil {
		return nil, User{}, errGameNotFound
	}
	removed, ok := s.removeUserLocked(game, callerID)
	if !ok {
		return nil, User{}, errUserNotFound
	}
	return game, removed, nil
}

func (s *Store) KickPlayer(idOrCode string, callerID, targetID int) (*Game, User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game := s.resolveLocked(idOrCode)
	if game == nil {
		return nil, User{}, errGameNotFound
	}
	if err := requireAdmin(game, callerID); err != nil {
		return nil, User{}, err
	}
	removed, ok := s.removeUserLocked(game, targetID)
	if !ok {
		return nil, User{}, errUserNotFound
	}
	return game, removed, nil
}

// CreateTeams creates teams in one batch; rotation order follows the
// position in names.
func (s *Store) CreateTeams(idOrCode string, callerID int, names []string) (*Game, []*Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game := s.resolveLocked(idOrCode)
	if game == nil {
		return nil, nil, errGameNotFound
	}
	if err := requireAdmin(game, callerID); err != nil {
		return nil, nil, err
	}
	start := len(game.Teams)
	for i, name := range names {
		team := Team{
			ID:    s.allocID(),
			Name:  name,
			Order: start + i,
		}
		game.Teams = append(game.Teams, team)
		s.teamGames[team.ID] = game.ID
	}
	created := make([]*Team, 0, len(names))
	for i := start; i < len(game.Teams); i++ {
		created = append(created, &game.Teams[i])
	}
	return game, created, nil
}

// AssignPlayer moves a user onto a team, first dropping any membership the
// user holds elsewhere in the same game.
func (s *Store) AssignPlayer(teamID, callerID, playerID int) (*Game, *Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game := s.gameForTeamLocked(teamID)
	if game == nil {
		return nil, nil, errTeamNotFound
	}
	if err := requireAdmin(game, callerID); err != nil {
		return nil, nil, err
	}
	if game.teamByID(teamID) == nil {
		return nil, nil, errTeamNotFound
	}
	if game.userByID(playerID) == nil {
		return nil, nil, errUserNotFound
	}
	for i := len(game.Memberships) - 1; i >= 0; i-- {
		if game.Memberships[i].UserID == playerID {
			game.Memberships = append(game.Memberships[:i], game.Memberships[i+1:]...)
		}
	}
	game.Memberships = append(game.Memberships, Membership{TeamID: teamID, UserID: playerID})
	return game, &game.Memberships[len(game.Memberships)-1], nil
}

// RemovePlayer drops a specific membership; absent memberships are not an error.
func (s *Store) RemovePlayer(teamID, callerID, playerID int) (*Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game := s.gameForTeamLocked(teamID)
	if game == nil {
		return nil, errTeamNotFound
	}
	if err := requireAdmin(game, callerID); err != nil {
		return nil, err
	}
	for i := range game.Memberships {
		if game.Memberships[i].TeamID == teamID && game.Memberships[i].UserID == playerID {
			game.Memberships = append(game.Memberships[:i], game.Memberships[i+1:]...)
			break
		}
	}
	return game, nil
}

// CreateRound numbers the new round one past the highest existing number.
func (s *Store) CreateRound(idOrCode string, callerID int) (*Game, *RoundState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game := s.resolveLocked(idOrCode)
	if game == nil {
		return nil, nil, errGameNotFound
	}
	if err := requireAdmin(game, callerID); err != nil {
		return nil, nil, err
	}
	if game.Status == statusFinished {
		return nil, nil, errGameFinished
	}
	round := RoundState{
		ID:     s.allocID(),
		Number: game.maxRoundNumber() + 1,
		Status: roundActive,
	}
	game.Rounds = append(game.Rounds, round)
	game.CurrentRound = round.Number
	s.roundGames[round.ID] = game.ID
	return game, &game.Rounds[len(game.Rounds)-1], nil
}

// CompleteRound is the administrative close of a round; nothing else
// transitions round status. Idempotent.
func (s *Store) CompleteRound(roundID, callerID int) (*Game, *RoundState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game := s.gameForRoundLocked(roundID)
	if game == nil {
		return nil, nil, errRoundNotFound
	}
	if err := requireAdmin(game, callerID); err != nil {
		return nil, nil, err
	}
	round := game.roundByID(roundID)
	if round == nil {
		return nil, nil, errRoundNotFound
	}
	round.Status = roundCompleted
	return game, round, nil
}

// EndTurn completes a turn and then checks the owning team's score against
// the winning score. Calling it on a COMPLETED turn returns the turn
// unchanged, so clients can treat a repeat as success; the score check still
// runs so an auto-completed or interrupted end can finish the game on retry.
func (s *Store) EndTurn(turnID, callerID int) (*Game, *TurnState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game := s.gameForTurnLocked(turnID)
	if game == nil {
		return nil, nil, false, errTurnNotFound
	}
	if game.userByID(callerID) == nil {
		return nil, nil, false, errUserNotFound
	}
	turn := game.turnByID(turnID)
	if turn == nil {
		return nil, nil, false, errTurnNotFound
	}
	turn.Status = turnCompleted

	finished := false
	if team := game.teamByID(turn.TeamID); team != nil {
		if team.Score >= game.WinningScore && game.Status != statusFinished {
			game.Status = statusFinished
			finished = true
		}
	}
	return game, turn, finished, nil
}
