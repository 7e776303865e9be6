// Package fakeapi provides an in-process notes API server for tests.
//
// It speaks the same JSON envelope as the real service and keeps its state in
// memory, so gateway and collection tests can run against real HTTP without a
// network. Faults can be injected per endpoint: an API-level "fail" envelope,
// an aborted connection to simulate a network fault, or a delay to exercise
// timing-sensitive callers.
package fakeapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Op names an endpoint for fault injection and call counting.
type Op string

const (
	OpLogin        Op = "login"
	OpRegister     Op = "register"
	OpCurrentUser  Op = "currentUser"
	OpCreateNote   Op = "createNote"
	OpListActive   Op = "listActive"
	OpListArchived Op = "listArchived"
	OpGetNote      Op = "getNote"
	OpArchive      Op = "archive"
	OpUnarchive    Op = "unarchive"
	OpDeleteNote   Op = "deleteNote"
)

// FaultMode selects how an injected fault manifests.
type FaultMode int

const (
	// FaultAPI answers with a well-formed envelope whose status is "fail".
	FaultAPI FaultMode = iota + 1
	// FaultNetwork aborts the connection mid-response, so the client sees a
	// transport error rather than an envelope.
	FaultNetwork
	// FaultSlow delays the response but then lets it succeed, for callers
	// exercising timing-sensitive code.
	FaultSlow
)

// Fault describes an injected failure for one endpoint.
type Fault struct {
	Mode    FaultMode
	Message string
	// Delay is applied before the fault (or the normal response, when
	// Remaining has run out).
	Delay time.Duration
	// Remaining is how many requests the fault applies to; 0 means every
	// request until the fault is cleared.
	Remaining int
}

// Note mirrors the wire shape of a note. The fake owns its own copy of the
// contract on purpose, so the library's types are tested against independent
// JSON rather than against themselves.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	Archived  bool      `json:"archived"`
}

// User mirrors the wire shape of a user.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type account struct {
	user     User
	password string
	notes    []Note
}

// Server is the fake notes service.
type Server struct {
	srv *httptest.Server

	mu       sync.Mutex
	accounts map[string]*account // keyed by email
	tokens   map[string]string   // token -> email
	faults   map[Op]*Fault
	calls    map[Op]int
	now      func() time.Time
}

// NewServer starts a fake service with no accounts and no faults.
func NewServer() *Server {
	s := &Server{
		accounts: make(map[string]*account),
		tokens:   make(map[string]string),
		faults:   make(map[Op]*Fault),
		calls:    make(map[Op]int),
		now:      time.Now,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("GET /users/me", s.handleCurrentUser)
	mux.HandleFunc("POST /notes", s.handleCreateNote)
	mux.HandleFunc("GET /notes", s.handleListActive)
	mux.HandleFunc("GET /notes/archived", s.handleListArchived)
	mux.HandleFunc("GET /notes/{id}", s.handleGetNote)
	mux.HandleFunc("POST /notes/{id}/archive", s.handleArchive)
	mux.HandleFunc("POST /notes/{id}/unarchive", s.handleUnarchive)
	mux.HandleFunc("DELETE /notes/{id}", s.handleDeleteNote)

	s.srv = httptest.NewServer(mux)
	return s
}

// URL is the base URL clients should be pointed at.
func (s *Server) URL() string { return s.srv.URL }

// Close shuts the server down.
func (s *Server) Close() { s.srv.Close() }

// AddUser creates an account directly, bypassing HTTP, and returns its ID.
func (s *Server) AddUser(name, email, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := "user-" + uuid.NewString()
	s.accounts[email] = &account{
		user:     User{ID: id, Name: name, Email: email},
		password: password,
	}
	return id
}

// MintToken issues a token for an existing account, bypassing HTTP.
func (s *Server) MintToken(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := uuid.NewString()
	s.tokens[token] = email
	return token
}

// SeedNote plants a note in an account's store, minting an ID and timestamp
// for any zero fields, and returns the stored note.
func (s *Server) SeedNote(email string, n Note) Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.ID == "" {
		n.ID = "notes-" + uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now()
	}
	acc := s.accounts[email]
	acc.notes = append(acc.notes, n)
	return n
}

// InjectFault arms a fault for the endpoint. A zero-mode fault clears it.
func (s *Server) InjectFault(op Op, f Fault) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.Mode == 0 {
		delete(s.faults, op)
		return
	}
	s.faults[op] = &f
}

// Calls reports how many requests the endpoint has received.
func (s *Server) Calls(op Op) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// TotalCalls reports how many requests the server has received in total.
func (s *Server) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

// SetClock overrides the timestamp source for created notes.
func (s *Server) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// enter counts the call and applies any armed fault. It reports whether the
// handler should continue; when it should not, the fault has already been
// written (or the connection aborted).
func (s *Server) enter(w http.ResponseWriter, op Op) bool {
	s.mu.Lock()
	s.calls[op]++
	f := s.faults[op]
	var fault Fault
	if f != nil {
		fault = *f
		if f.Remaining > 0 {
			f.Remaining--
			if f.Remaining == 0 {
				delete(s.faults, op)
			}
		}
	}
	s.mu.Unlock()

	if f == nil {
		return true
	}
	if fault.Delay > 0 {
		time.Sleep(fault.Delay)
	}
	switch fault.Mode {
	case FaultNetwork:
		panic(http.ErrAbortHandler)
	case FaultSlow:
		return true
	default:
		msg := fault.Message
		if msg == "" {
			msg = "injected failure"
		}
		writeFail(w, http.StatusBadRequest, msg)
		return false
	}
}

func (s *Server) authed(r *http.Request) (*account, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.tokens[token]
	if !ok {
		return nil, false
	}
	return s.accounts[email], true
}

func writeSuccess(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	body := map[string]any{"status": "success", "message": "ok"}
	if data != nil {
		body["data"] = data
	}
	json.NewEncoder(w).Encode(body)
}

func writeFail(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{"status": "fail", "message": message})
}
