package server

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"word-blitz/internal/db"

	"gorm.io/gorm"
)

// sessionStore remembers a browser's user id and nickname across reloads so
// a rejoining client can recover its identity without re-joining. Backed by
// the sessions table when a database is configured, an in-memory map
// otherwise.
type sessionStore struct {
	db       *gorm.DB
	mu       sync.Mutex
	sessions map[string]sessionData
}

type sessionData struct {
	UserID   int
	Nickname string
}

func newSessionStore(conn *gorm.DB) *sessionStore {
	return &sessionStore{
		db:       conn,
		sessions: make(map[string]sessionData),
	}
}

func (s *sessionStore) SetIdentity(w http.ResponseWriter, r *http.Request, userID int, nickname string) {
	if strings.TrimSpace(nickname) == "" {
		return
	}
	id := s.ensureSessionID(w, r)
	if s.db == nil {
		s.mu.Lock()
		s.sessions[id] = sessionData{UserID: userID, Nickname: nickname}
		s.mu.Unlock()
		return
	}
	record := db.Session{
		ID:       id,
		UserID:   uint(userID),
		Nickname: nickname,
	}
	_ = s.db.Save(&record).Error
}

func (s *sessionStore) GetIdentity(w http.ResponseWriter, r *http.Request) (int, string) {
	id := s.ensureSessionID(w, r)
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		data := s.sessions[id]
		return data.UserID, data.Nickname
	}
	var record db.Session
	if err := s.db.Where("id = ?", id).First(&record).Error; err != nil {
		return 0, ""
	}
	return int(record.UserID), record.Nickname
}

func (s *sessionStore) ensureSessionID(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie("wb_session")
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}
	id := newSessionID()
	http.SetCookie(w, &http.Cookie{
		Name:     "wb_session",
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func newSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("sess-%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("%x", buf)
}
