package server

import (
	"errors"
	"net/http"
)

// Failure taxonomy for game operations. Handlers map these to HTTP statuses
// with errors.Is so wrapped variants (e.g. wrong-team errors carrying the
// team name) still match.
var (
	errGameNotFound  = errors.New("game not found")
	errUserNotFound  = errors.New("user not found")
	errTeamNotFound  = errors.New("team not found")
	errRoundNotFound = errors.New("round not found")
	errTurnNotFound  = errors.New("turn not found")

	errUnauthorized      = errors.New("unauthorized")
	errWrongTeamTurn     = errors.New("not your team's turn")
	errTurnInProgress    = errors.New("another turn is still active")
	errTurnNotActive     = errors.New("turn is not active")
	errWordAlreadySolved = errors.New("word already solved")
	errNoTeams           = errors.New("game has no teams")
	errEmptyTeam         = errors.New("team has no members")
	errGameFinished      = errors.New("game is finished")
	errDescriberGuess    = errors.New("describer cannot submit guesses")
	errGameFull          = errors.New("game is full")
	errGameStarted       = errors.New("game already started")
	errGameRunning       = errors.New("game already running")
)

func statusForError(err error) int {
	switch {
	case errors.Is(err, errGameNotFound),
		errors.Is(err, errTeamNotFound),
		errors.Is(err, errRoundNotFound),
		errors.Is(err, errTurnNotFound):
		return http.StatusNotFound
	case errors.Is(err, errUserNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, errUnauthorized), errors.Is(err, errDescriberGuess):
		return http.StatusForbidden
	default:
		return http.StatusConflict
	}
}
