package server

import (
	"fmt"
	"sort"
)

// Rotation is derived from the game's turn history on every call instead of
// a stored cursor: the next team follows the team of the most recent turn in
// the whole game, and the describer index is the team's completed-turn count
// modulo member count. The store lock makes the derive-then-write sequence
// atomic.

func teamsInOrder(game *Game) []*Team {
	teams := make([]*Team, 0, len(game.Teams))
	for i := range game.Teams {
		teams = append(teams, &game.Teams[i])
	}
	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].Order < teams[j].Order
	})
	return teams
}

// latestTurn returns the most recent turn across all rounds by start time,
// tie-broken by creation order.
func latestTurn(game *Game) *TurnState {
	var latest *TurnState
	for i := range game.Rounds {
		round := &game.Rounds[i]
		for j := range round.Turns {
			turn := &round.Turns[j]
			if latest == nil {
				latest = turn
				continue
			}
			if turn.StartTime.After(latest.StartTime) ||
				(turn.StartTime.Equal(latest.StartTime) && turn.ID > latest.ID) {
				latest = turn
			}
		}
	}
	return latest
}

func activeTurn(round *RoundState) *TurnState {
	for i := range round.Turns {
		if round.Turns[i].Status == turnActive {
			return &round.Turns[i]
		}
	}
	return nil
}

func completedTurnCount(game *Game, teamID int) int {
	count := 0
	for i := range game.Rounds {
		for j := range game.Rounds[i].Turns {
			turn := &game.Rounds[i].Turns[j]
			if turn.TeamID == teamID && turn.Status == turnCompleted {
				count++
			}
		}
	}
	return count
}

func nextTeam(game *Game) (*Team, error) {
	teams := teamsInOrder(game)
	if len(teams) == 0 {
		return nil, errNoTeams
	}
	last := latestTurn(game)
	if last == nil {
		return teams[0], nil
	}
	index := 0
	for i, team := range teams {
		if team.ID == last.TeamID {
			index = i
			break
		}
	}
	return teams[(index+1)%len(teams)], nil
}

func nextDescriber(game *Game, team *Team) (*User, error) {
	members := game.teamMembers(team.ID)
	if len(members) == 0 {
		return nil, errEmptyTeam
	}
	completed := completedTurnCount(game, team.ID)
	return members[completed%len(members)], nil
}

// StartTurn materializes the next turn for a round: the next team in
// rotation, that team's next describer, and a fresh word batch. The caller
// must belong to the selected team.
func (s *Store) StartTurn(roundID, callerID int, words []string, durationSeconds int) (*Game, *TurnState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game := s.gameForRoundLocked(roundID)
	if game == nil {
		return nil, nil, errRoundNotFound
	}
	if game.userByID(callerID) == nil {
		return nil, nil, errUserNotFound
	}
	if game.Status == statusFinished {
		return nil, nil, errGameFinished
	}
	round := game.roundByID(roundID)
	if round == nil {
		return nil, nil, errRoundNotFound
	}
	if activeTurn(round) != nil {
		return nil, nil, errTurnInProgress
	}

	team, err := nextTeam(game)
	if err != nil {
		return nil, nil, err
	}
	describer, err := nextDescriber(game, team)
	if err != nil {
		return nil, nil, err
	}
	callerTeam := game.teamForUser(callerID)
	if callerTeam == nil || callerTeam.ID != team.ID {
		return nil, nil, fmt.Errorf("%w: it is team %q's turn", errWrongTeamTurn, team.Name)
	}

	turn := TurnState{
		ID:              s.allocID(),
		RoundID:         round.ID,
		TeamID:          team.ID,
		DescriberID:     describer.ID,
		Words:           words,
		SolvedWords:     []string{},
		StartTime:       timeNowUTC(),
		DurationSeconds: durationSeconds,
		Status:          turnActive,
	}
	round.Turns = append(round.Turns, turn)
	s.turnGames[turn.ID] = game.ID
	return game, &round.Turns[len(round.Turns)-1], nil
}
