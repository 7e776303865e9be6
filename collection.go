package noteflow

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/noteflow/noteflow.go/pkg/loadgate"
)

// FilterKind selects which side of the archived split a projection shows.
type FilterKind string

const (
	FilterActive   FilterKind = "active"
	FilterArchived FilterKind = "archived"
)

var (
	// ErrNoteNotFound is returned by mutations addressed to an ID the
	// collection does not hold.
	ErrNoteNotFound = errors.New("note not found in collection")

	// ErrTogglePending is returned when an archive toggle is requested for a
	// note whose previous toggle has not settled yet.
	ErrTogglePending = errors.New("archive toggle already in flight for this note")
)

// Collection owns the in-memory note list and implements each mutation with
// its own consistency policy:
//
//   - Load replaces the collection wholesale with server truth, newest first.
//   - Create only touches local state after the server confirmed the note.
//   - Delete asks for confirmation, then trusts a full reload over a local
//     splice.
//   - ToggleArchive flips local state optimistically, then commits or rolls
//     back against the server's answer.
//
// Filtering is a pure projection over the current list and is computed fresh
// on every call; nothing is memoized that could drift from the collection.
//
// Collection is safe for concurrent use, though its intended caller is a
// single interactive loop.
type Collection struct {
	client   *Client
	notifier Notifier
	confirm  func() bool
	busy     *loadgate.Gate
	logger   zerolog.Logger

	mu      sync.Mutex
	notes   []Note
	pending map[string]bool
	loading bool
}

// CollectionOption configures a Collection.
type CollectionOption func(*Collection)

// WithNotifier routes mutation outcomes to the given notifier.
func WithNotifier(n Notifier) CollectionOption {
	return func(c *Collection) { c.notifier = n }
}

// WithConfirm installs the yes/no gate consulted before destructive actions.
// Without one, Delete refuses rather than destroys.
func WithConfirm(confirm func() bool) CollectionOption {
	return func(c *Collection) { c.confirm = confirm }
}

// WithBusyGate wraps Create and Delete in the given loading gate so the view
// shows a busy affordance for slow mutations without flashing it for fast
// ones. Load and ToggleArchive have their own affordances (the loading flag
// and the per-note pending flag) and stay outside the gate.
func WithBusyGate(gate *loadgate.Gate) CollectionOption {
	return func(c *Collection) { c.busy = gate }
}

// WithCollectionLogger attaches a logger for background failures that are
// deliberately not surfaced as notifications.
func WithCollectionLogger(logger zerolog.Logger) CollectionOption {
	return func(c *Collection) { c.logger = logger }
}

// NewCollection creates an empty collection backed by the given gateway.
func NewCollection(client *Client, opts ...CollectionOption) *Collection {
	c := &Collection{
		client:   client,
		notifier: LogNotifier{Logger: zerolog.Nop()},
		confirm:  func() bool { return false },
		logger:   zerolog.Nop(),
		pending:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load replaces the collection with server truth, sorted newest first.
//
// On failure the prior collection is kept untouched: a stale list beats an
// empty one. The failure is logged, not notified — background loading is the
// one action allowed to fail without user-visible feedback.
func (c *Collection) Load(ctx context.Context) error {
	c.setLoading(true)
	defer c.setLoading(false)

	notes, err := c.client.ListAllNotes(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to load notes")
		return err
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})

	c.mu.Lock()
	c.notes = notes
	c.mu.Unlock()
	return nil
}

// Create asks the server for a new note and, only on success, prepends the
// returned note — server-assigned ID and timestamp included — to the front of
// the collection. A failed create mutates nothing locally.
//
// The optimistic treatment that ToggleArchive gets would be wrong here: until
// the server answers there is no ID to address the note by, so there is
// nothing coherent to insert ahead of confirmation.
func (c *Collection) Create(ctx context.Context, input NoteInput) (*Note, error) {
	var created *Note

	err := c.runBusy(ctx, func(ctx context.Context) error {
		res, err := c.client.CreateNote(ctx, input)
		if err != nil {
			return err
		}
		if res.Failed {
			return apiFailure("create note", res.Message)
		}

		c.mu.Lock()
		c.notes = append([]Note{*res.Data}, c.notes...)
		c.mu.Unlock()
		created = res.Data
		return nil
	})
	if err != nil {
		c.notifier.Failure("could not add the note")
		return nil, err
	}

	c.notifier.Success("note added")
	return created, nil
}

// Delete removes a note after the confirmation gate approves.
//
// A declined confirmation is a complete no-op: zero gateway calls, collection
// untouched, nil error. A confirmed delete is followed by a full reload
// rather than a local splice, so the list matches server truth even if the
// server did something surprising, at the cost of one more round trip.
func (c *Collection) Delete(ctx context.Context, id string) error {
	if !c.confirm() {
		return nil
	}

	var deleted bool
	err := c.runBusy(ctx, func(ctx context.Context) error {
		res, err := c.client.DeleteNote(ctx, id)
		if err != nil {
			return err
		}
		if res.Failed {
			return apiFailure("delete note", res.Message)
		}
		deleted = true
		return c.Load(ctx)
	})
	if err != nil {
		if deleted {
			c.notifier.Failure("note deleted, but refreshing the list failed")
		} else {
			c.notifier.Failure("could not delete the note")
		}
		return err
	}

	c.notifier.Success("note deleted")
	return nil
}

// ToggleArchive flips a note between active and archived, optimistically.
//
// The flip lands in local state before the network call so the view reflects
// it with zero latency. While the call is in flight the ID carries a pending
// marker — a UI affordance for a per-note spinner, not a domain state; a
// reload never resurrects it. On failure, including a network fault, the
// note's Archived field is restored to the recorded snapshot rather than
// negated again, so a rollback can never overshoot. The pending marker is
// cleared on every path.
//
// A second toggle for the same ID while one is pending returns
// ErrTogglePending instead of racing the first.
func (c *Collection) ToggleArchive(ctx context.Context, id string) error {
	c.mu.Lock()
	idx := c.indexLocked(id)
	if idx < 0 {
		c.mu.Unlock()
		return ErrNoteNotFound
	}
	if c.pending[id] {
		c.mu.Unlock()
		return ErrTogglePending
	}
	prev := c.notes[idx].Archived
	willArchive := !prev
	c.notes[idx].Archived = willArchive
	c.pending[id] = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	var res Result[Note]
	var err error
	if willArchive {
		res, err = c.client.ArchiveNote(ctx, id)
	} else {
		res, err = c.client.UnarchiveNote(ctx, id)
	}

	if err != nil || res.Failed {
		c.mu.Lock()
		if i := c.indexLocked(id); i >= 0 {
			c.notes[i].Archived = prev
		}
		c.mu.Unlock()

		c.notifier.Failure("could not change the note's archive state")
		if err != nil {
			return err
		}
		return apiFailure("toggle archive", res.Message)
	}

	if willArchive {
		c.notifier.Success("note archived")
	} else {
		c.notifier.Success("note unarchived")
	}
	return nil
}

// Notes returns a copy of the collection in its current order.
func (c *Collection) Notes() []Note {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Note(nil), c.notes...)
}

// Get returns the note with the given ID, if the collection holds it.
func (c *Collection) Get(id string) (Note, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexLocked(id); i >= 0 {
		return c.notes[i], true
	}
	return Note{}, false
}

// Filter projects the collection for display: notes on the requested side of
// the archived split whose title contains the keyword, case-insensitively.
// An empty keyword matches everything.
func (c *Collection) Filter(kind FilterKind, keyword string) []Note {
	keyword = strings.ToLower(keyword)
	archived := kind == FilterArchived

	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Note, 0, len(c.notes))
	for _, n := range c.notes {
		if n.Archived != archived {
			continue
		}
		if keyword != "" && !strings.Contains(strings.ToLower(n.Title), keyword) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Pending reports whether an archive toggle is in flight for the ID. Views
// use it to disable the toggle control and show a per-note spinner.
func (c *Collection) Pending(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending[id]
}

// Loading reports whether a full reload is in progress.
func (c *Collection) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Collection) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}

func (c *Collection) runBusy(ctx context.Context, fn func(context.Context) error) error {
	if c.busy != nil {
		return c.busy.Run(ctx, fn)
	}
	return fn(ctx)
}

func (c *Collection) indexLocked(id string) int {
	for i := range c.notes {
		if c.notes[i].ID == id {
			return i
		}
	}
	return -1
}
