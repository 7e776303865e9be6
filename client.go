package noteflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeout bounds every request issued by a Client that was not given
// its own http.Client.
const DefaultTimeout = 30 * time.Second

// Client provides strongly-typed access to the notes REST API.
//
// Client manages HTTP communication, serialization, and the attachment of the
// current bearer token for all operations. The token is read from the Session
// on every call; Client itself never writes to the Session, so a successful
// Login still has to be persisted by the caller via [Session.SetToken].
//
// Expected API-level failures come back as a [Result] with Failed set and are
// never surfaced as Go errors. Errors are reserved for network faults and
// responses the client cannot decode.
//
// Client instances are safe for concurrent use by multiple goroutines.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
	logger     zerolog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client, including its timeout.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithClientLogger attaches a logger used for request-level debug logging.
func WithClientLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a client for the notes API at baseURL.
//
// The baseURL should include the protocol, host, and any version prefix
// (e.g. "https://notes-api.example.dev/v1") without a trailing slash. The
// session supplies the bearer token; a session without a token is fine, the
// request is sent anyway and the server rejects it.
func NewClient(baseURL string, session *Session, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		session: session,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// doRequest performs an HTTP request with proper headers.
func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug().Str("method", method).Str("path", path).Msg("api request")
	return c.httpClient.Do(req)
}

// decode reads the response envelope and converts it into a Result.
//
// A "fail" status becomes a failed Result carrying the service's message. A
// body that is not a valid envelope is a fault of the transport or of the
// service itself and is returned as an error.
func decode[T any](resp *http.Response) (Result[T], error) {
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return Result[T]{}, fmt.Errorf("failed to decode response: status=%d: %w", resp.StatusCode, err)
	}

	if env.Status != statusSuccess {
		return failure[T](env.Message), nil
	}

	var data T
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return Result[T]{}, fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return success(data), nil
}

// CreateNote creates a new note. The returned note carries the server-assigned
// ID and creation timestamp.
func (c *Client) CreateNote(ctx context.Context, input NoteInput) (Result[Note], error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/notes", input)
	if err != nil {
		return Result[Note]{}, err
	}
	return decode[Note](resp)
}

// ListActiveNotes retrieves every note that is not archived.
func (c *Client) ListActiveNotes(ctx context.Context) (Result[[]Note], error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/notes", nil)
	if err != nil {
		return Result[[]Note]{}, err
	}
	return decode[[]Note](resp)
}

// ListArchivedNotes retrieves every archived note.
func (c *Client) ListArchivedNotes(ctx context.Context) (Result[[]Note], error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/notes/archived", nil)
	if err != nil {
		return Result[[]Note]{}, err
	}
	return decode[[]Note](resp)
}

// GetNote retrieves a single note by ID.
func (c *Client) GetNote(ctx context.Context, id string) (Result[Note], error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/notes/"+url.PathEscape(id), nil)
	if err != nil {
		return Result[Note]{}, err
	}
	return decode[Note](resp)
}

// ArchiveNote marks the note as archived.
func (c *Client) ArchiveNote(ctx context.Context, id string) (Result[Note], error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/notes/"+url.PathEscape(id)+"/archive", nil)
	if err != nil {
		return Result[Note]{}, err
	}
	return decode[Note](resp)
}

// UnarchiveNote moves the note back to the active set.
func (c *Client) UnarchiveNote(ctx context.Context, id string) (Result[Note], error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/notes/"+url.PathEscape(id)+"/unarchive", nil)
	if err != nil {
		return Result[Note]{}, err
	}
	return decode[Note](resp)
}

// DeleteNote permanently removes the note.
func (c *Client) DeleteNote(ctx context.Context, id string) (Result[struct{}], error) {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/notes/"+url.PathEscape(id), nil)
	if err != nil {
		return Result[struct{}]{}, err
	}
	return decode[struct{}](resp)
}

// ListAllNotes retrieves the union of active and archived notes.
//
// The two list calls run concurrently and the aggregate is fail-fast: if
// either comes back failed or errors, ListAllNotes returns an error and no
// partial data. It is the only gateway operation that promotes an API-level
// failure into an error, because its callers use it to establish collection
// truth and must not mistake half a collection for the whole.
func (c *Client) ListAllNotes(ctx context.Context) ([]Note, error) {
	var active, archived Result[[]Note]

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if active, err = c.ListActiveNotes(gctx); err != nil {
			return err
		}
		if active.Failed {
			return apiFailure("list active notes", active.Message)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if archived, err = c.ListArchivedNotes(gctx); err != nil {
			return err
		}
		if archived.Failed {
			return apiFailure("list archived notes", archived.Message)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := make([]Note, 0, len(*active.Data)+len(*archived.Data))
	all = append(all, *active.Data...)
	all = append(all, *archived.Data...)
	return all, nil
}

// apiFailure turns a failed Result into an error for the few places that
// need one, keeping the service's message when it gave one.
func apiFailure(op, message string) error {
	if message == "" {
		return fmt.Errorf("%s: request failed", op)
	}
	return fmt.Errorf("%s: %s", op, message)
}
