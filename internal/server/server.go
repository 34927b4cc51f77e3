package server

import (
	"net/http"

	"word-blitz/internal/config"

	"gorm.io/gorm"
)

type Server struct {
	store    *Store
	db       *gorm.DB
	cfg      config.Config
	sessions *sessionStore
	limiter  *rateLimiter
}

func New(conn *gorm.DB, cfg config.Config) *Server {
	return &Server{
		store:    NewStore(),
		db:       conn,
		cfg:      cfg,
		sessions: newSessionStore(conn),
		limiter:  newRateLimiter(),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /play/{id}", s.handlePlayView)

	mux.HandleFunc("POST /api/games", s.handleCreateGame)
	mux.HandleFunc("GET /api/games/{id}", s.handleGetGame)
	mux.HandleFunc("POST /api/games/{id}/join", s.handleJoinGame)
	mux.HandleFunc("POST /api/games/{id}/start", s.handleStartGame)
	mux.HandleFunc("POST /api/games/{id}/restart", s.handleRestartGame)
	mux.HandleFunc("POST /api/games/{id}/leave", s.handleLeaveGame)
	mux.HandleFunc("POST /api/games/{id}/kick", s.handleKickPlayer)
	mux.HandleFunc("POST /api/games/{id}/teams", s.handleCreateTeams)
	mux.HandleFunc("POST /api/games/{id}/rounds", s.handleCreateRound)
	mux.HandleFunc("POST /api/teams/{id}/assign", s.handleAssignPlayer)
	mux.HandleFunc("POST /api/teams/{id}/remove", s.handleRemovePlayer)
	mux.HandleFunc("POST /api/rounds/{id}/turns", s.handleStartTurn)
	mux.HandleFunc("POST /api/rounds/{id}/complete", s.handleCompleteRound)
	mux.HandleFunc("POST /api/turns/{id}/guesses", s.handleSubmitGuess)
	mux.HandleFunc("POST /api/turns/{id}/end", s.handleEndTurn)
	mux.HandleFunc("GET /api/session", s.handleSession)
	return mux
}
