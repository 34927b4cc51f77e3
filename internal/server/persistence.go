package server

import (
	"errors"
	"fmt"

	"word-blitz/internal/db"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
)

// The in-memory store is authoritative; these mirror each committed mutation
// to Postgres so games survive a restart. All of them tolerate a nil db,
// which is how the tests run.

func (s *Server) persistGame(game *Game, admin *User) error {
	if s.db == nil {
		return nil
	}
	record := db.Game{
		Code:         game.Code,
		Status:       game.Status,
		MaxPlayers:   game.MaxPlayers,
		WinningScore: game.WinningScore,
		CurrentRound: game.CurrentRound,
	}
	for attempt := 0; ; attempt++ {
		if err := s.db.Create(&record).Error; err != nil {
			// The store only checks codes of running games; a finished
			// game's code can still collide in the table.
			if isUniqueViolation(err) && attempt < 3 {
				record.Code = s.reissueGameCode(game)
				continue
			}
			return err
		}
		break
	}
	game.DBID = record.ID
	newID := fmt.Sprintf("game-%d", record.ID)
	if game.ID != newID {
		s.store.UpdateGameID(game, newID)
	}
	if err := s.persistUser(game, admin); err != nil {
		return err
	}
	return s.db.Model(&db.Game{}).Where("id = ?", game.DBID).Update("admin_id", admin.DBID).Error
}

func (s *Server) reissueGameCode(game *Game) string {
	code := newGameCode()
	_, _ = s.store.UpdateGame(game.ID, func(g *Game) error {
		g.Code = code
		return nil
	})
	return code
}

func (s *Server) persistUser(game *Game, user *User) error {
	if s.db == nil || user == nil || user.DBID != 0 {
		return nil
	}
	if err := s.ensureGameDBID(game); err != nil {
		return err
	}
	record := db.User{
		GameID:      game.DBID,
		Nickname:    user.Nickname,
		Role:        user.Role,
		IsConnected: user.Connected,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return err
	}
	user.DBID = record.ID
	return nil
}

func (s *Server) persistUserRemoval(user User) error {
	if s.db == nil || user.DBID == 0 {
		return nil
	}
	if err := s.db.Where("user_id = ?", user.DBID).Delete(&db.TeamMembership{}).Error; err != nil {
		return err
	}
	return s.db.Delete(&db.User{}, user.DBID).Error
}

func (s *Server) persistGameStatus(game *Game) error {
	if s.db == nil {
		return nil
	}
	if err := s.ensureGameDBID(game); err != nil {
		return err
	}
	updates := map[string]any{
		"status":        game.Status,
		"current_round": game.CurrentRound,
	}
	return s.db.Model(&db.Game{}).Where("id = ?", game.DBID).Updates(updates).Error
}

// persistRestart drops the game's rounds, turns and guesses and zeroes team
// scores; users, teams and memberships stay.
func (s *Server) persistRestart(game *Game) error {
	if s.db == nil {
		return nil
	}
	if err := s.ensureGameDBID(game); err != nil {
		return err
	}
	var turnIDs []uint
	if err := s.db.Model(&db.Turn{}).Where("game_id = ?", game.DBID).Pluck("id", &turnIDs).Error; err != nil {
		return err
	}
	if len(turnIDs) > 0 {
		if err := s.db.Where("turn_id IN ?", turnIDs).Delete(&db.Guess{}).Error; err != nil {
			return err
		}
	}
	if err := s.db.Where("game_id = ?", game.DBID).Delete(&db.Turn{}).Error; err != nil {
		return err
	}
	if err := s.db.Where("game_id = ?", game.DBID).Delete(&db.Round{}).Error; err != nil {
		return err
	}
	if err := s.db.Model(&db.Team{}).Where("game_id = ?", game.DBID).Update("score", 0).Error; err != nil {
		return err
	}
	return s.persistGameStatus(game)
}

func (s *Server) persistTeams(game *Game, teams []*Team) error {
	if s.db == nil {
		return nil
	}
	if err := s.ensureGameDBID(game); err != nil {
		return err
	}
	for _, team := range teams {
		if team.DBID != 0 {
			continue
		}
		record := db.Team{
			GameID:   game.DBID,
			Name:     team.Name,
			Score:    team.Score,
			Position: team.Order,
		}
		if err := s.db.Create(&record).Error; err != nil {
			return err
		}
		team.DBID = record.ID
	}
	return nil
}

func (s *Server) persistMembership(game *Game, membership *Membership) error {
	if s.db == nil {
		return nil
	}
	team := game.teamByID(membership.TeamID)
	user := game.userByID(membership.UserID)
	if team == nil || team.DBID == 0 || user == nil || user.DBID == 0 {
		return errors.New("membership entities not persisted")
	}
	var teamIDs []uint
	if err := s.db.Model(&db.Team{}).Where("game_id = ?", game.DBID).Pluck("id", &teamIDs).Error; err != nil {
		return err
	}
	if len(teamIDs) > 0 {
		if err := s.db.Where("user_id = ? AND team_id IN ?", user.DBID, teamIDs).Delete(&db.TeamMembership{}).Error; err != nil {
			return err
		}
	}
	record := db.TeamMembership{
		TeamID: team.DBID,
		UserID: user.DBID,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return err
	}
	membership.DBID = record.ID
	return nil
}

func (s *Server) persistMembershipRemoval(game *Game, teamID, playerID int) error {
	if s.db == nil {
		return nil
	}
	team := game.teamByID(teamID)
	user := game.userByID(playerID)
	if team == nil || team.DBID == 0 || user == nil || user.DBID == 0 {
		return nil
	}
	return s.db.Where("team_id = ? AND user_id = ?", team.DBID, user.DBID).Delete(&db.TeamMembership{}).Error
}

func (s *Server) persistRound(game *Game, round *RoundState) error {
	if s.db == nil || round == nil || round.DBID != 0 {
		return nil
	}
	if err := s.ensureGameDBID(game); err != nil {
		return err
	}
	record := db.Round{
		GameID: game.DBID,
		Number: round.Number,
		Status: round.Status,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return err
	}
	round.DBID = record.ID
	return s.persistGameStatus(game)
}

func (s *Server) persistRoundStatus(round *RoundState) error {
	if s.db == nil || round == nil || round.DBID == 0 {
		return nil
	}
	return s.db.Model(&db.Round{}).Where("id = ?", round.DBID).Update("status", round.Status).Error
}

func (s *Server) persistTurn(game *Game, turn *TurnState) error {
	if s.db == nil || turn == nil || turn.DBID != 0 {
		return nil
	}
	round := game.roundByID(turn.RoundID)
	team := game.teamByID(turn.TeamID)
	describer := game.userByID(turn.DescriberID)
	if round == nil || round.DBID == 0 || team == nil || team.DBID == 0 || describer == nil || describer.DBID == 0 {
		return errors.New("turn entities not persisted")
	}
	record := db.Turn{
		RoundID:         round.DBID,
		GameID:          game.DBID,
		TeamID:          team.DBID,
		DescriberID:     describer.DBID,
		Words:           datatypes.NewJSONSlice(turn.Words),
		SolvedWords:     datatypes.NewJSONSlice(turn.SolvedWords),
		StartTime:       turn.StartTime,
		DurationSeconds: turn.DurationSeconds,
		Status:          turn.Status,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return err
	}
	turn.DBID = record.ID
	return nil
}

func (s *Server) persistTurnState(turn *TurnState) error {
	if s.db == nil || turn == nil || turn.DBID == 0 {
		return nil
	}
	updates := map[string]any{
		"solved_words": datatypes.NewJSONSlice(turn.SolvedWords),
		"status":       turn.Status,
	}
	return s.db.Model(&db.Turn{}).Where("id = ?", turn.DBID).Updates(updates).Error
}

func (s *Server) persistTeamScore(team *Team) error {
	if s.db == nil || team == nil || team.DBID == 0 {
		return nil
	}
	return s.db.Model(&db.Team{}).Where("id = ?", team.DBID).Update("score", team.Score).Error
}

func (s *Server) persistGuess(game *Game, turn *TurnState, guess *GuessEntry) error {
	if s.db == nil || guess == nil || guess.DBID != 0 {
		return nil
	}
	user := game.userByID(guess.UserID)
	if turn == nil || turn.DBID == 0 || user == nil || user.DBID == 0 {
		return errors.New("guess entities not persisted")
	}
	record := db.Guess{
		TurnID: turn.DBID,
		UserID: user.DBID,
		Input:  guess.Input,
		Points: guess.Points,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return err
	}
	guess.DBID = record.ID
	return nil
}

func (s *Server) ensureGameDBID(game *Game) error {
	if s.db == nil || game.DBID != 0 {
		return nil
	}
	var record db.Game
	if err := s.db.Where("code = ?", game.Code).First(&record).Error; err != nil {
		return err
	}
	game.DBID = record.ID
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
