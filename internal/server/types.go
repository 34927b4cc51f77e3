package server

import "time"

const (
	statusLobby    = "LOBBY"
	statusPlaying  = "PLAYING"
	statusFinished = "FINISHED"
)

const (
	roundActive    = "ACTIVE"
	roundCompleted = "COMPLETED"
)

const (
	turnActive    = "ACTIVE"
	turnCompleted = "COMPLETED"
)

const (
	roleAdmin  = "ADMIN"
	rolePlayer = "PLAYER"
)

type GameSummary struct {
	ID      string
	Code    string
	Status  string
	Players int
}

// Game is the in-memory aggregate the store serializes all mutations on.
// DBID fields link entities to their Postgres rows once persisted.
type Game struct {
	ID           string
	DBID         uint
	Code         string
	AdminID      int
	Status       string
	MaxPlayers   int
	WinningScore int
	CurrentRound int
	Users        []User
	Teams        []Team
	Memberships  []Membership
	Rounds       []RoundState
}

type User struct {
	ID        int
	DBID      uint
	Nickname  string
	Role      string
	Connected bool
	JoinedAt  time.Time
}

type Team struct {
	ID    int
	DBID  uint
	Name  string
	Score int
	Order int
}

// Membership order in the slice is creation order, which fixes the
// describer rotation within a team.
type Membership struct {
	DBID   uint
	TeamID int
	UserID int
}

type RoundState struct {
	ID     int
	DBID   uint
	Number int
	Status string
	Turns  []TurnState
}

type TurnState struct {
	ID              int
	DBID            uint
	RoundID         int
	TeamID          int
	DescriberID     int
	Words           []string
	SolvedWords     []string
	StartTime       time.Time
	DurationSeconds int
	Status          string
	Guesses         []GuessEntry
}

type GuessEntry struct {
	DBID      uint
	TurnID    int
	UserID    int
	Input     string
	Points    int
	CreatedAt time.Time
}

func (g *Game) userByID(id int) *User {
	for i := range g.Users {
		if g.Users[i].ID == id {
			return &g.Users[i]
		}
	}
	return nil
}

func (g *Game) teamByID(id int) *Team {
	for i := range g.Teams {
		if g.Teams[i].ID == id {
			return &g.Teams[i]
		}
	}
	return nil
}

func (g *Game) roundByID(id int) *RoundState {
	for i := range g.Rounds {
		if g.Rounds[i].ID == id {
			return &g.Rounds[i]
		}
	}
	return nil
}

func (g *Game) turnByID(id int) *TurnState {
	for i := range g.Rounds {
		for j := range g.Rounds[i].Turns {
			if g.Rounds[i].Turns[j].ID == id {
				return &g.Rounds[i].Turns[j]
			}
		}
	}
	return nil
}

// teamMembers returns the team's users in membership creation order.
func (g *Game) teamMembers(teamID int) []*User {
	var members []*User
	for _, membership := range g.Memberships {
		if membership.TeamID != teamID {
			continue
		}
		if user := g.userByID(membership.UserID); user != nil {
			members = append(members, user)
		}
	}
	return members
}

func (g *Game) teamForUser(userID int) *Team {
	for _, membership := range g.Memberships {
		if membership.UserID == userID {
			return g.teamByID(membership.TeamID)
		}
	}
	return nil
}

func (g *Game) maxRoundNumber() int {
	max := 0
	for i := range g.Rounds {
		if g.Rounds[i].Number > max {
			max = g.Rounds[i].Number
		}
	}
	return max
}
