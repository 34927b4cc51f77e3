package server

import (
	"fmt"
	"log"

	"word-blitz/internal/db"
)

// RestoreGames reloads every unfinished game from the database into the
// store so a server restart does not strand polling clients. Finished games
// stay in the table for history but are not resumed.
func (s *Server) RestoreGames() error {
	if s.db == nil {
		return nil
	}
	var records []db.Game
	if err := s.db.Where("status <> ?", statusFinished).Order("id asc").Find(&records).Error; err != nil {
		return err
	}
	restored := 0
	for i := range records {
		if err := s.restoreGame(&records[i]); err != nil {
			log.Printf("restore skipped game_db_id=%d err=%v", records[i].ID, err)
			continue
		}
		restored++
	}
	if restored > 0 {
		log.Printf("games restored count=%d", restored)
	}
	return nil
}

func (s *Server) restoreGame(record *db.Game) error {
	var users []db.User
	if err := s.db.Where("game_id = ?", record.ID).Order("id asc").Find(&users).Error; err != nil {
		return err
	}
	var teams []db.Team
	if err := s.db.Where("game_id = ?", record.ID).Order("position asc").Find(&teams).Error; err != nil {
		return err
	}
	var rounds []db.Round
	if err := s.db.Where("game_id = ?", record.ID).Order("number asc").Find(&rounds).Error; err != nil {
		return err
	}
	var turns []db.Turn
	if err := s.db.Where("game_id = ?", record.ID).Order("id asc").Find(&turns).Error; err != nil {
		return err
	}

	teamIDs := make([]uint, 0, len(teams))
	for _, team := range teams {
		teamIDs = append(teamIDs, team.ID)
	}
	var memberships []db.TeamMembership
	if len(teamIDs) > 0 {
		if err := s.db.Where("team_id IN ?", teamIDs).Order("id asc").Find(&memberships).Error; err != nil {
			return err
		}
	}
	turnIDs := make([]uint, 0, len(turns))
	for _, turn := range turns {
		turnIDs = append(turnIDs, turn.ID)
	}
	var guesses []db.Guess
	if len(turnIDs) > 0 {
		if err := s.db.Where("turn_id IN ?", turnIDs).Order("id asc").Find(&guesses).Error; err != nil {
			return err
		}
	}

	game := &Game{
		ID:           fmt.Sprintf("game-%d", record.ID),
		DBID:         record.ID,
		Code:         record.Code,
		Status:       record.Status,
		MaxPlayers:   record.MaxPlayers,
		WinningScore: record.WinningScore,
		CurrentRound: record.CurrentRound,
	}

	// In-memory ids reuse the database ids; RestoreGame bumps the
	// allocators past them.
	userIDs := make(map[uint]int, len(users))
	for _, user := range users {
		id := int(user.ID)
		userIDs[user.ID] = id
		game.Users = append(game.Users, User{
			ID:        id,
			DBID:      user.ID,
			Nickname:  user.Nickname,
			Role:      user.Role,
			Connected: user.IsConnected,
			JoinedAt:  user.CreatedAt,
		})
		if user.ID == record.AdminID {
			game.AdminID = id
		}
	}
	teamIDsByDB := make(map[uint]int, len(teams))
	for _, team := range teams {
		id := int(team.ID)
		teamIDsByDB[team.ID] = id
		game.Teams = append(game.Teams, Team{
			ID:    id,
			DBID:  team.ID,
			Name:  team.Name,
			Score: team.Score,
			Order: team.Position,
		})
	}
	for _, membership := range memberships {
		teamID, okTeam := teamIDsByDB[membership.TeamID]
		userID, okUser := userIDs[membership.UserID]
		if !okTeam || !okUser {
			continue
		}
		game.Memberships = append(game.Memberships, Membership{
			DBID:   membership.ID,
			TeamID: teamID,
			UserID: userID,
		})
	}

	guessesByTurn := make(map[uint][]db.Guess)
	for _, guess := range guesses {
		guessesByTurn[guess.TurnID] = append(guessesByTurn[guess.TurnID], guess)
	}
	turnsByRound := make(map[uint][]db.Turn)
	for _, turn := range turns {
		turnsByRound[turn.RoundID] = append(turnsByRound[turn.RoundID], turn)
	}
	for _, round := range rounds {
		state := RoundState{
			ID:     int(round.ID),
			DBID:   round.ID,
			Number: round.Number,
			Status: round.Status,
		}
		for _, turn := range turnsByRound[round.ID] {
			turnState := TurnState{
				ID:              int(turn.ID),
				DBID:            turn.ID,
				RoundID:         state.ID,
				TeamID:          teamIDsByDB[turn.TeamID],
				DescriberID:     userIDs[turn.DescriberID],
				Words:           []string(turn.Words),
				SolvedWords:     []string(turn.SolvedWords),
				StartTime:       turn.StartTime,
				DurationSeconds: turn.DurationSeconds,
				Status:          turn.Status,
			}
			for _, guess := range guessesByTurn[turn.ID] {
				turnState.Guesses = append(turnState.Guesses, GuessEntry{
					DBID:      guess.ID,
					TurnID:    turnState.ID,
					UserID:    userIDs[guess.UserID],
					Input:     guess.Input,
					Points:    guess.Points,
					CreatedAt: guess.CreatedAt,
				})
			}
			state.Turns = append(state.Turns, turnState)
		}
		game.Rounds = append(game.Rounds, state)
	}

	return s.store.RestoreGame(game)
}
