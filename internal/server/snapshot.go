package server

// snapshot builds the full game state polling clients re-fetch: game fields
// plus users, teams, memberships, rounds and turns. Both a polling and a
// push transport could wrap this payload.
func snapshot(game *Game) map[string]any {
	users := make([]map[string]any, 0, len(game.Users))
	for i := range game.Users {
		user := &game.Users[i]
		users = append(users, map[string]any{
			"id":           user.ID,
			"nickname":     user.Nickname,
			"role":         user.Role,
			"is_connected": user.Connected,
		})
	}

	teams := make([]map[string]any, 0, len(game.Teams))
	for _, team := range teamsInOrder(game) {
		memberIDs := make([]int, 0)
		for _, member := range game.teamMembers(team.ID) {
			memberIDs = append(memberIDs, member.ID)
		}
		teams = append(teams, map[string]any{
			"id":      team.ID,
			"name":    team.Name,
			"score":   team.Score,
			"order":   team.Order,
			"members": memberIDs,
		})
	}

	memberships := make([]map[string]any, 0, len(game.Memberships))
	for _, membership := range game.Memberships {
		memberships = append(memberships, map[string]any{
			"team_id": membership.TeamID,
			"user_id": membership.UserID,
		})
	}

	rounds := make([]map[string]any, 0, len(game.Rounds))
	for i := range game.Rounds {
		round := &game.Rounds[i]
		turns := make([]map[string]any, 0, len(round.Turns))
		for j := range round.Turns {
			turns = append(turns, turnPayload(&round.Turns[j]))
		}
		rounds = append(rounds, map[string]any{
			"id":           round.ID,
			"round_number": round.Number,
			"status":       round.Status,
			"turns":        turns,
		})
	}

	return map[string]any{
		"game_id":       game.ID,
		"code":          game.Code,
		"admin_id":      game.AdminID,
		"status":        game.Status,
		"max_players":   game.MaxPlayers,
		"winning_score": game.WinningScore,
		"current_round": game.CurrentRound,
		"users":         users,
		"teams":         teams,
		"memberships":   memberships,
		"rounds":        rounds,
	}
}

func turnPayload(turn *TurnState) map[string]any {
	guesses := make([]map[string]any, 0, len(turn.Guesses))
	for _, guess := range turn.Guesses {
		guesses = append(guesses, guessPayload(&guess))
	}
	return map[string]any{
		"id":           turn.ID,
		"round_id":     turn.RoundID,
		"team_id":      turn.TeamID,
		"describer_id": turn.DescriberID,
		"words":        turn.Words,
		"solved_words": turn.SolvedWords,
		"start_time":   turn.StartTime,
		"duration":     turn.DurationSeconds,
		"status":       turn.Status,
		"guesses":      guesses,
	}
}

func guessPayload(guess *GuessEntry) map[string]any {
	return map[string]any{
		"turn_id":    guess.TurnID,
		"user_id":    guess.UserID,
		"input":      guess.Input,
		"points":     guess.Points,
		"created_at": guess.CreatedAt,
	}
}
