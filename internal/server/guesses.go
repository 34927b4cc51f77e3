package server

import "strings"

func normalizeGuess(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// SubmitGuess evaluates a guess against an active turn. A wrong guess is a
// logged zero-point event, not an error. A guess for a word already solved
// fails before any score mutation. A correct guess records the word with its
// original casing, awards one point to the owning team, and auto-completes
// the turn once every word is solved. The winning-score check belongs to
// EndTurn, not here.
func (s *Store) SubmitGuess(turnID, callerID int, input string, allowDescriberGuess bool) (*Game, *GuessEntry, *TurnState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game := s.gameForTurnLocked(turnID)
	if game == nil {
		return nil, nil, nil, errTurnNotFound
	}
	if game.userByID(callerID) == nil {
		return nil, nil, nil, errUserNotFound
	}
	if game.Status == statusFinished {
		return nil, nil, nil, errGameFinished
	}
	turn := game.turnByID(turnID)
	if turn == nil {
		return nil, nil, nil, errTurnNotFound
	}
	if turn.Status != turnActive {
		return nil, nil, nil, errTurnNotActive
	}
	if !allowDescriberGuess && callerID == turn.DescriberID {
		return nil, nil, nil, errDescriberGuess
	}

	normalized := normalizeGuess(input)
	matched := ""
	for _, word := range turn.Words {
		if normalizeGuess(word) == normalized {
			matched = word
			break
		}
	}

	points := 0
	if matched != "" {
		for _, solved := range turn.SolvedWords {
			if normalizeGuess(solved) == normalized {
				return nil, nil, nil, errWordAlreadySolved
			}
		}
		turn.SolvedWords = append(turn.SolvedWords, matched)
		points = 1
		if team := game.teamByID(turn.TeamID); team != nil {
			team.Score += points
		}
		if len(turn.SolvedWords) == len(turn.Words) {
			turn.Status = turnCompleted
		}
	}

	guess := GuessEntry{
		TurnID:    turn.ID,
		UserID:    callerID,
		Input:     input,
		Points:    points,
		CreatedAt: timeNowUTC(),
	}
	turn.Guesses = append(turn.Guesses, guess)
	return game, &turn.Guesses[len(turn.Guesses)-1], turn, nil
}
