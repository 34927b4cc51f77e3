package server

import (
	"errors"
	"testing"

	"word-blitz/internal/config"
)

func TestSubmitGuessCorrectAwardsPoint(t *testing.T) {
	store, game, teamIDs, users := buildGame(t, config.Default(), [][]string{
		{"Admin", "Ben"},
	})
	roundID := startRound(t, store, game, users["Admin"])
	turn := mustStartTurn(t, store, roundID, users["Admin"])

	_, guess, turn, err := store.SubmitGuess(turn.ID, users["Ben"], "  aPPle ", true)
	if err != nil {
		t.Fatalf("submit guess: %v", err)
	}
	if guess.Points != 1 {
		t.Fatalf("expected one point, got %d", guess.Points)
	}
	if len(turn.SolvedWords) != 1 || turn.SolvedWords[0] != "Apple" {
		t.Fatalf("expected original casing preserved, got %#v", turn.SolvedWords)
	}
	if score := game.teamByID(teamIDs[0]).Score; score != 1 {
		t.Fatalf("expected team score 1, got %d", score)
	}
	if turn.Status != turnActive {
		t.Fatalf("turn must stay active with words remaining, got %s", turn.Status)
	}
}

func TestSubmitGuessWrongIsLoggedNotRejected(t *testing.T) {
	store, game, teamIDs, users := buildGame(t, config.Default(), [][]string{
		{"Admin", "Ben"},
	})
	roundID := startRound(t, store, game, users["Admin"])
	turn := mustStartTurn(t, store, roundID, users["Admin"])

	_, guess, turn, err := store.SubmitGuess(turn.ID, users["Ben"], "Pineapple", true)
	if err != nil {
		t.Fatalf("wrong guess must not error, got %v", err)
	}
	if guess.Points != 0 {
		t.Fatalf("expected zero points, got %d", guess.Points)
	}
	if len(turn.SolvedWords) != 0 {
		t.Fatalf("wrong guess must not solve words, got %#v", turn.SolvedWords)
	}
	if score := game.teamByID(teamIDs[0]).Score; score != 0 {
		t.Fatalf("expected unchanged score, got %d", score)
	}
	if len(turn.Guesses) != 1 {
		t.Fatalf("expected guess recorded, got %d", len(turn.Guesses))
	}
}

func TestSubmitGuessAlreadySolved(t *testing.T) {
	store, game, teamIDs, users := buildGame(t, config.Default(), [][]string{
		{"Admin", "Ben"},
	})
	roundID := startRound(t, store, game, users["Admin"])
	turn := mustStartTurn(t, store, roundID, users["Admin"])

	if _, _, _, err := store.SubmitGuess(turn.ID, users["Ben"], "apple", true); err != nil {
		t.Fatalf("first guess: %v", err)
	}
	_, _, _, err := store.SubmitGuess(turn.ID, users["Ben"], "APPLE", true)
	if !errors.Is(err, errWordAlreadySolved) {
		t.Fatalf("expected already solved error, got %v", err)
	}
	if score := game.teamByID(teamIDs[0]).Score; score != 1 {
		t.Fatalf("repeat guess must not change score, got %d", score)
	}
	solved := game.turnByID(turn.ID).SolvedWords
	if len(solved) != 1 {
		t.Fatalf("repeat guess must not duplicate solved word, got %#v", solved)
	}
}

func TestSubmitGuessAutoCompletesTurn(t *testing.T) {
	store, game, _, users := buildGame(t, config.Default(), [][]string{
		{"Admin", "Ben"},
	})
	roundID := startRound(t, store, game, users["Admin"])
	turn := mustStartTurn(t, store, roundID, users["Admin"])

	if _, _, _, err := store.SubmitGuess(turn.ID, users["Ben"], "Apple", true); err != nil {
		t.Fatalf("first word: %v", err)
	}
	_, _, turn, err := store.SubmitGuess(turn.ID, users["Ben"], "Banana", true)
	if err != nil {
		t.Fatalf("final word: %v", err)
	}
	if turn.Status != turnCompleted {
		t.Fatalf("expected turn completed after full solve, got %s", turn.Status)
	}

	_, _, _, err = store.SubmitGuess(turn.ID, users["Ben"], "anything", true)
	if !errors.Is(err, errTurnNotActive) {
		t.Fatalf("expected turn not active, got %v", err)
	}
	if game.Status == statusFinished {
		t.Fatalf("full solve must not finish the game")
	}
}

func TestSubmitGuessDescriberBlocked(t *testing.T) {
	store, game, _, users := buildGame(t, config.Default(), [][]string{
		{"Admin", "Ben"},
	})
	roundID := startRound(t, store, game, users["Admin"])
	turn := mustStartTurn(t, store, roundID, users["Admin"])

	_, _, _, err := store.SubmitGuess(turn.ID, turn.DescriberID, "Apple", false)
	if !errors.Is(err, errDescriberGuess) {
		t.Fatalf("expected describer guess rejection, got %v", err)
	}

	if _, _, _, err := store.SubmitGuess(turn.ID, turn.DescriberID, "Apple", true); err != nil {
		t.Fatalf("describer guess allowed by config, got %v", err)
	}
}

func TestSubmitGuessRejectedAfterGameFinished(t *testing.T) {
	cfg := config.Default()
	cfg.WinningScore = 1
	store, game, teamIDs, users := buildGame(t, cfg, [][]string{
		{"Admin", "Ben"},
	})
	firstRound := startRound(t, store, game, users["Admin"])
	_, staleTurn, err := store.StartTurn(firstRound, users["Admin"], []string{"Apple", "Banana"}, 30)
	if err != nil {
		t.Fatalf("start stale turn: %v", err)
	}

	// a new round opens while the first round's turn is still active
	secondRound := startRound(t, store, game, users["Admin"])
	_, winningTurn, err := store.StartTurn(secondRound, users["Admin"], []string{"Cherry"}, 30)
	if err != nil {
		t.Fatalf("start winning turn: %v", err)
	}
	if _, _, _, err := store.SubmitGuess(winningTurn.ID, users["Ben"], "Cherry", true); err != nil {
		t.Fatalf("winning guess: %v", err)
	}
	if _, _, finished, err := store.EndTurn(winningTurn.ID, users["Admin"]); err != nil || !finished {
		t.Fatalf("expected game finish, finished=%v err=%v", finished, err)
	}

	// the stale active turn no longer accepts guesses
	_, _, _, err = store.SubmitGuess(staleTurn.ID, users["Ben"], "Apple", true)
	if !errors.Is(err, errGameFinished) {
		t.Fatalf("expected game finished error, got %v", err)
	}
	if score := game.teamByID(teamIDs[0]).Score; score != 1 {
		t.Fatalf("finished game must not change scores, got %d", score)
	}
}

func TestSubmitGuessPreconditions(t *testing.T) {
	store, game, _, users := buildGame(t, config.Default(), [][]string{
		{"Admin"},
	})
	roundID := startRound(t, store, game, users["Admin"])
	turn := mustStartTurn(t, store, roundID, users["Admin"])

	if _, _, _, err := store.SubmitGuess(999, users["Admin"], "Apple", true); !errors.Is(err, errTurnNotFound) {
		t.Fatalf("expected turn not found, got %v", err)
	}
	if _, _, _, err := store.SubmitGuess(turn.ID, 999, "Apple", true); !errors.Is(err, errUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}
