package server

import (
	"strings"
	"testing"
)

func TestValidateNickname(t *testing.T) {
	got, err := validateNickname("  Ada   Lovelace ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Ada Lovelace" {
		t.Fatalf("expected collapsed whitespace, got %q", got)
	}

	if _, err := validateNickname("   "); err == nil {
		t.Fatalf("expected error for blank nickname")
	}
	if _, err := validateNickname(strings.Repeat("a", maxNicknameLength+1)); err == nil {
		t.Fatalf("expected error for oversized nickname")
	}
	if _, err := validateNickname("<script>"); err == nil {
		t.Fatalf("expected error for unsafe characters")
	}
}

func TestValidateTeamName(t *testing.T) {
	got, err := validateTeamName("Red Team!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Red Team!" {
		t.Fatalf("unexpected normalization: %q", got)
	}
	if _, err := validateTeamName(strings.Repeat("b", maxTeamNameLength+1)); err == nil {
		t.Fatalf("expected error for oversized team name")
	}
}

func TestValidateGuessInput(t *testing.T) {
	got, err := validateGuessInput("  Apple  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Apple" {
		t.Fatalf("expected trimmed guess, got %q", got)
	}
	if _, err := validateGuessInput(""); err == nil {
		t.Fatalf("expected error for empty guess")
	}
}

func TestNormalizeGuess(t *testing.T) {
	if normalizeGuess("  APPle ") != "apple" {
		t.Fatalf("expected lowercase trimmed form")
	}
}
