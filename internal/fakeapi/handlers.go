package fakeapi

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.enter(w, OpLogin) {
		return
	}

	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	acc, ok := s.accounts[creds.Email]
	if !ok || acc.password != creds.Password {
		s.mu.Unlock()
		writeFail(w, http.StatusUnauthorized, "email or password is wrong")
		return
	}
	token := uuid.NewString()
	s.tokens[token] = creds.Email
	s.mu.Unlock()

	writeSuccess(w, map[string]string{"accessToken": token})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if !s.enter(w, OpRegister) {
		return
	}

	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	if _, exists := s.accounts[input.Email]; exists {
		s.mu.Unlock()
		writeFail(w, http.StatusBadRequest, "email already in use")
		return
	}
	s.accounts[input.Email] = &account{
		user:     User{ID: "user-" + uuid.NewString(), Name: input.Name, Email: input.Email},
		password: input.Password,
	}
	s.mu.Unlock()

	writeSuccess(w, nil)
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	if !s.enter(w, OpCurrentUser) {
		return
	}
	acc, ok := s.authed(r)
	if !ok {
		writeFail(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}
	writeSuccess(w, acc.user)
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	if !s.enter(w, OpCreateNote) {
		return
	}
	acc, ok := s.authed(r)
	if !ok {
		writeFail(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}

	var input struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	note := Note{
		ID:        "notes-" + uuid.NewString(),
		Title:     input.Title,
		Body:      input.Body,
		CreatedAt: s.now(),
	}
	acc.notes = append(acc.notes, note)
	s.mu.Unlock()

	writeSuccess(w, note)
}

func (s *Server) handleListActive(w http.ResponseWriter, r *http.Request) {
	if !s.enter(w, OpListActive) {
		return
	}
	s.listNotes(w, r, false)
}

func (s *Server) handleListArchived(w http.ResponseWriter, r *http.Request) {
	if !s.enter(w, OpListArchived) {
		return
	}
	s.listNotes(w, r, true)
}

func (s *Server) listNotes(w http.ResponseWriter, r *http.Request, archived bool) {
	acc, ok := s.authed(r)
	if !ok {
		writeFail(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}

	s.mu.Lock()
	out := make([]Note, 0, len(acc.notes))
	for _, n := range acc.notes {
		if n.Archived == archived {
			out = append(out, n)
		}
	}
	s.mu.Unlock()

	writeSuccess(w, out)
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	if !s.enter(w, OpGetNote) {
		return
	}
	acc, ok := s.authed(r)
	if !ok {
		writeFail(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}

	s.mu.Lock()
	idx := findNote(acc.notes, r.PathValue("id"))
	if idx < 0 {
		s.mu.Unlock()
		writeFail(w, http.StatusNotFound, "note not found")
		return
	}
	note := acc.notes[idx]
	s.mu.Unlock()

	writeSuccess(w, note)
}

func (s *Server) handleArchive(w http.ResponseWriter, r *http.Request) {
	if !s.enter(w, OpArchive) {
		return
	}
	s.setArchived(w, r, true)
}

func (s *Server) handleUnarchive(w http.ResponseWriter, r *http.Request) {
	if !s.enter(w, OpUnarchive) {
		return
	}
	s.setArchived(w, r, false)
}

func (s *Server) setArchived(w http.ResponseWriter, r *http.Request, archived bool) {
	acc, ok := s.authed(r)
	if !ok {
		writeFail(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}

	s.mu.Lock()
	idx := findNote(acc.notes, r.PathValue("id"))
	if idx < 0 {
		s.mu.Unlock()
		writeFail(w, http.StatusNotFound, "note not found")
		return
	}
	acc.notes[idx].Archived = archived
	note := acc.notes[idx]
	s.mu.Unlock()

	writeSuccess(w, note)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	if !s.enter(w, OpDeleteNote) {
		return
	}
	acc, ok := s.authed(r)
	if !ok {
		writeFail(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}

	s.mu.Lock()
	idx := findNote(acc.notes, r.PathValue("id"))
	if idx < 0 {
		s.mu.Unlock()
		writeFail(w, http.StatusNotFound, "note not found")
		return
	}
	acc.notes = append(acc.notes[:idx], acc.notes[idx+1:]...)
	s.mu.Unlock()

	writeSuccess(w, nil)
}

func findNote(notes []Note, id string) int {
	for i := range notes {
		if notes[i].ID == id {
			return i
		}
	}
	return -1
}
