package noteflow

import (
	"encoding/json"
	"time"
)

// Note is a single note as the remote service stores it. Identity is ID;
// every other field is mutable. The Body is a rich-text HTML fragment.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	Archived  bool      `json:"archived"`
}

// User is the identity derived from an access token.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Credentials is the payload for Login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput is the payload for Register.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NoteInput is the payload for CreateNote. The server assigns the ID and the
// creation timestamp.
type NoteInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// AuthToken is the data of a successful Login.
type AuthToken struct {
	AccessToken string `json:"accessToken"`
}

// envelope is the wire shape every endpoint responds with.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

const statusSuccess = "success"

// Result is the uniform outcome of a gateway call.
//
// An API-level failure (the service answered with status "fail") sets Failed
// and carries the service's message; it is not a Go error. Network faults and
// undecodable responses are returned as errors by the gateway methods instead.
// Callers treat both the same way when deciding whether a local optimistic
// change may be kept.
type Result[T any] struct {
	Failed  bool
	Message string
	Data    *T
}

func success[T any](v T) Result[T] {
	return Result[T]{Data: &v}
}

func failure[T any](message string) Result[T] {
	return Result[T]{Failed: true, Message: message}
}
