package db

import (
	"time"

	"gorm.io/datatypes"
)

type Game struct {
	ID           uint      `gorm:"primaryKey"`
	Code         string    `gorm:"size:12;uniqueIndex;not null"`
	AdminID      uint      `gorm:"index"`
	Status       string    `gorm:"size:32;not null"`
	MaxPlayers   int       `gorm:"not null;default:10"`
	WinningScore int       `gorm:"not null;default:20"`
	CurrentRound int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
	Users        []User
	Teams        []Team
	Rounds       []Round
}

type User struct {
	ID          uint      `gorm:"primaryKey"`
	GameID      uint      `gorm:"index;not null"`
	Nickname    string    `gorm:"size:64;not null"`
	Role        string    `gorm:"size:16;not null"`
	IsConnected bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"not null"`
	Guesses     []Guess
}

type Team struct {
	ID        uint      `gorm:"primaryKey"`
	GameID    uint      `gorm:"index;not null"`
	Name      string    `gorm:"size:64;not null"`
	Score     int       `gorm:"not null;default:0"`
	Position  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Members   []TeamMembership
}

type TeamMembership struct {
	ID        uint      `gorm:"primaryKey"`
	TeamID    uint      `gorm:"index;not null;uniqueIndex:idx_memberships_team_user"`
	UserID    uint      `gorm:"index;not null;uniqueIndex:idx_memberships_team_user"`
	CreatedAt time.Time `gorm:"not null"`
}

type Round struct {
	ID        uint      `gorm:"primaryKey"`
	GameID    uint      `gorm:"index;not null;uniqueIndex:idx_rounds_game_number"`
	Number    int       `gorm:"not null;uniqueIndex:idx_rounds_game_number"`
	Status    string    `gorm:"size:32;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Turns     []Turn
}

type Turn struct {
	ID              uint                        `gorm:"primaryKey"`
	RoundID         uint                        `gorm:"index;not null"`
	GameID          uint                        `gorm:"index;not null"`
	TeamID          uint                        `gorm:"index;not null"`
	DescriberID     uint                        `gorm:"index;not null"`
	Words           datatypes.JSONSlice[string] `gorm:"not null"`
	SolvedWords     datatypes.JSONSlice[string] `gorm:"not null"`
	StartTime       time.Time                   `gorm:"not null"`
	DurationSeconds int                         `gorm:"not null;default:30"`
	Status          string                      `gorm:"size:32;not null"`
	CreatedAt       time.Time                   `gorm:"not null"`
	UpdatedAt       time.Time                   `gorm:"not null"`
	Guesses         []Guess
}

type Guess struct {
	ID        uint      `gorm:"primaryKey"`
	TurnID    uint      `gorm:"index;not null"`
	UserID    uint      `gorm:"index;not null"`
	Input     string    `gorm:"size:280;not null"`
	Points    int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
}

type Session struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    uint      `gorm:"index"`
	Nickname  string    `gorm:"size:64"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
