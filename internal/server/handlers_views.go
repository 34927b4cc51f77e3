package server

import (
	"net/http"

	"word-blitz/internal/web"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = web.Home().Render(r.Context(), w)
}

func (s *Server) handlePlayView(w http.ResponseWriter, r *http.Request) {
	idOrCode := r.PathValue("id")
	game, ok := s.store.GetGame(idOrCode)
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = web.Play(game.ID, game.Code).Render(r.Context(), w)
}
