package server

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"word-blitz/internal/config"
)

// Store holds every running game and serializes all mutations behind one
// mutex. Each operation is a sequential read-modify-write, so precondition
// checks (active turn per round, rotation order) cannot race each other.
type Store struct {
	mu         sync.Mutex
	nextGameID int
	nextID     int
	games      map[string]*Game

	// reverse indexes from entity id to owning game id
	userGames  map[int]string
	teamGames  map[int]string
	roundGames map[int]string
	turnGames  map[int]string
}

func NewStore() *Store {
	return &Store{
		nextGameID: 1,
		nextID:     1,
		games:      make(map[string]*Game),
		userGames:  make(map[int]string),
		teamGames:  make(map[int]string),
		roundGames: make(map[int]string),
		turnGames:  make(map[int]string),
	}
}

func (s *Store) allocID() int {
	id := s.nextID
	s.nextID++
	return id
}

// CreateGame creates a LOBBY game plus its admin user. The join code is
// collision-checked against every running game.
func (s *Store) CreateGame(nickname string, cfg config.Config) (*Game, *User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := "game-" + strconv.Itoa(s.nextGameID)
	s.nextGameID++

	code := newGameCode()
	for s.findByCodeLocked(code) != nil {
		code = newGameCode()
	}

	admin := User{
		ID:        s.allocID(),
		Nickname:  nickname,
		Role:      roleAdmin,
		Connected: true,
		JoinedAt:  timeNowUTC(),
	}
	game := &Game{
		ID:           id,
		Code:         code,
		AdminID:      admin.ID,
		Status:       statusLobby,
		MaxPlayers:   cfg.MaxPlayers,
		WinningScore: cfg.WinningScore,
		Users:        []User{admin},
	}
	s.games[id] = game
	s.userGames[admin.ID] = id
	return game, &game.Users[0]
}

func (s *Store) findByCodeLocked(code string) *Game {
	for _, game := range s.games {
		if strings.EqualFold(game.Code, code) {
			return game
		}
	}
	return nil
}

// resolveLocked accepts a game id or a join code, case-insensitive on the code.
func (s *Store) resolveLocked(idOrCode string) *Game {
	if game, ok := s.games[idOrCode]; ok {
		return game
	}
	return s.findByCodeLocked(idOrCode)
}

func (s *Store) GetGame(idOrCode string) (*Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game := s.resolveLocked(idOrCode)
	return game, game != nil
}

// ViewGame runs fn with the game held under the store lock. fn must not
// retain the *Game past its return.
func (s *Store) ViewGame(idOrCode string, fn func(game *Game) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	game := s.resolveLocked(idOrCode)
	if game == nil {
		return errGameNotFound
	}
	return fn(game)
}

// UpdateGame applies fn to the game under the store lock. An error from fn
// leaves nothing committed elsewhere; fn is responsible for not partially
// mutating on failure.
func (s *Store) UpdateGame(idOrCode string, fn func(game *Game) error) (*Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game := s.resolveLocked(idOrCode)
	if game == nil {
		return nil, errGameNotFound
	}
	if err := fn(game); err != nil {
		return nil, err
	}
	return game, nil
}

// UpdateGameID rebinds a game to its database-derived id once persisted.
func (s *Store) UpdateGameID(game *Game, newID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if game.ID == newID {
		return
	}
	delete(s.games, game.ID)
	oldID := game.ID
	game.ID = newID
	s.games[newID] = game
	for id, gameID := range s.userGames {
		if gameID == oldID {
			s.userGames[id] = newID
		}
	}
	for id, gameID := range s.teamGames {
		if gameID == oldID {
			s.teamGames[id] = newID
		}
	}
	for id, gameID := range s.roundGames {
		if gameID == oldID {
			s.roundGames[id] = newID
		}
	}
	for id, gameID := range s.turnGames {
		if gameID == oldID {
			s.turnGames[id] = newID
		}
	}
}

func (s *Store) gameForUserLocked(userID int) *Game {
	id, ok := s.userGames[userID]
	if !ok {
		return nil
	}
	return s.games[id]
}

func (s *Store) gameForTeamLocked(teamID int) *Game {
	id, ok := s.teamGames[teamID]
	if !ok {
		return nil
	}
	return s.games[id]
}

func (s *Store) gameForRoundLocked(roundID int) *Game {
	id, ok := s.roundGames[roundID]
	if !ok {
		return nil
	}
	return s.games[id]
}

func (s *Store) gameForTurnLocked(turnID int) *Game {
	id, ok := s.turnGames[turnID]
	if !ok {
		return nil
	}
	return s.games[id]
}

// JoinGame adds a PLAYER user to a game addressed by id or code.
func (s *Store) JoinGame(idOrCode, nickname string) (*Game, *User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game := s.resolveLocked(idOrCode)
	if game == nil {
		return nil, nil, errGameNotFound
	}
	if game.MaxPlayers > 0 && len(game.Users) >= game.MaxPlayers {
		return nil, nil, errGameFull
	}
	user := User{
		ID:        s.allocID(),
		Nickname:  nickname,
		Role:      rolePlayer,
		Connected: true,
		JoinedAt:  timeNowUTC(),
	}
	game.Users = append(game.Users, user)
	s.userGames[user.ID] = game.ID
	return game, &game.Users[len(game.Users)-1], nil
}

func (s *Store) removeUserLocked(game *Game, userID int) (User, bool) {
	index := -1
	for i := range game.Users {
		if game.Users[i].ID == userID {
			index = i
			break
		}
	}
	if index == -1 {
		return User{}, false
	}
	removed := game.Users[index]
	game.Users = append(game.Users[:index], game.Users[index+1:]...)
	delete(s.userGames, userID)
	for i := len(game.Memberships) - 1; i >= 0; i-- {
		if game.Memberships[i].UserID == userID {
			game.Memberships = append(game.Memberships[:i], game.Memberships[i+1:]...)
		}
	}
	return removed, true
}

// RestoreGame registers a game rebuilt from the database. Entity ids are
// re-registered and the allocators bumped past everything restored.
func (s *Store) RestoreGame(game *Game) error {
	if game == nil {
		return errGameNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[game.ID]; ok {
		return errGameRunning
	}
	if s.findByCodeLocked(game.Code) != nil {
		return errGameRunning
	}
	s.games[game.ID] = game
	if id := gameSortKey(game.ID); id >= s.nextGameID {
		s.nextGameID = id + 1
	}
	maxID := 0
	track := func(id int) {
		if id > maxID {
			maxID = id
		}
	}
	for _, user := range game.Users {
		s.userGames[user.ID] = game.ID
		track(user.ID)
	}
	for _, team := range game.Teams {
		s.teamGames[team.ID] = game.ID
		track(team.ID)
	}
	for i := range game.Rounds {
		round := &game.Rounds[i]
		s.roundGames[round.ID] = game.ID
		track(round.ID)
		for _, turn := range round.Turns {
			s.turnGames[turn.ID] = game.ID
			track(turn.ID)
		}
	}
	if maxID >= s.nextID {
		s.nextID = maxID + 1
	}
	return nil
}

func (s *Store) ListGameSummaries() []GameSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]GameSummary, 0, len(s.games))
	for _, game := range s.games {
		list = append(list, GameSummary{
			ID:      game.ID,
			Code:    game.Code,
			Status:  game.Status,
			Players: len(game.Users),
		})
	}
	sort.Slice(list, func(i, j int) bool {
		return gameSortKey(list[i].ID) < gameSortKey(list[j].ID)
	})
	return list
}

func gameSortKey(id string) int {
	parts := strings.Split(id, "-")
	if len(parts) < 2 {
		return 0
	}
	value, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0
	}
	return value
}
