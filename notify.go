package noteflow

import "github.com/rs/zerolog"

// Notifier receives the transient, non-blocking outcome messages a mutation
// wants the user to see. The view layer decides how they look (a toast, a
// terminal line); the collection only decides when one is due.
type Notifier interface {
	Success(message string)
	Failure(message string)
}

// LogNotifier routes notifications to a zerolog logger. It is the default
// for collections created without an explicit notifier, and useful on its
// own for headless callers.
type LogNotifier struct {
	Logger zerolog.Logger
}

func (n LogNotifier) Success(message string) {
	n.Logger.Info().Msg(message)
}

func (n LogNotifier) Failure(message string) {
	n.Logger.Error().Msg(message)
}
