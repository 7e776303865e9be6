// The [noteflow] package is a Go client for an authenticated remote notes
// service, built around the state-synchronization layer that sits between
// user actions, the remote API, and whatever renders the result.
//
// # Session
//
// [Session] owns the access token and the identity derived from it. The token
// is persisted to a single file and survives restarts; the identity does not,
// and is re-derived from the token at startup via [Session.Bootstrap].
//
// # Gateway
//
// [Client] wraps every REST endpoint of the service with a typed method. Each
// call attaches the session's bearer token and normalizes the response into a
// [Result]: expected API-level failures set Result.Failed, while only network
// faults come back as Go errors. [Client.ListAllNotes] fetches the active and
// archived sets concurrently and is fail-fast — it returns an error rather
// than half a collection.
//
// # Collection
//
// [Collection] holds the in-memory note list and implements each mutation
// with its own consistency policy. Loads replace the list wholesale with
// server truth, newest first. Creates touch local state only after the server
// confirms. Deletes are confirmation-gated and followed by a full reload.
// Archive toggles are optimistic: the flip is applied locally before the
// network call and rolled back to the recorded snapshot if the call fails.
// Filtering for display is a pure projection computed fresh on every call.
//
// # Loading affordances
//
// [github.com/noteflow/noteflow.go/pkg/loadgate] supplies the timing policy
// that keeps busy indicators from flickering: shown only if an action is
// still running after a delay, and kept up for a minimum once shown. Wire a
// gate into a collection with [WithBusyGate].
//
// # View layer
//
// Rendering is out of scope. A view consumes [Collection.Filter],
// [Collection.Pending], and [Collection.Loading], and drives the mutation
// methods; the cobra CLI under cmd/noteflow is one such view.
package noteflow
