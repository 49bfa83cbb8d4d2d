package liststate

import (
	"context"
	"errors"
	"log/slog"

	"github.com/BearBump/RollOff/internal/integrations/rolloffapi"
	"github.com/BearBump/RollOff/internal/models"
)

var (
	// ErrClosed is returned when a response resolves after the controller was closed.
	// Such responses are dropped without touching state.
	ErrClosed = errors.New("controller closed")

	// ErrArchived: update/delete на архивном контейнере не предлагаются.
	ErrArchived = errors.New("archived containers are read-only")
)

// Notice is the single user-visible message raised for one failed operation.
type Notice struct {
	Op      string
	Message string
	Err     error
}

type Notifier interface {
	Notify(n Notice)
}

type NotifierFunc func(n Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// LogNotifier is used when no notifier is wired.
type LogNotifier struct{}

func (LogNotifier) Notify(n Notice) {
	slog.Warn("notice", "op", n.Op, "message", n.Message)
}

// Confirmer is the cancellable gate in front of every delete. false means "do nothing".
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

type ConfirmerFunc func(ctx context.Context, prompt string) bool

func (f ConfirmerFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

// Decline refuses everything. It is the default when no confirmer is wired.
var Decline = ConfirmerFunc(func(context.Context, string) bool { return false })

// userMessage prefers what the server said, then local validation text, then the generic text.
func userMessage(err error, generic string) string {
	var rerr *rolloffapi.RequestError
	if errors.As(err, &rerr) && rerr.ServerMessage != "" {
		return rerr.ServerMessage
	}
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	if errors.Is(err, ErrArchived) {
		return err.Error()
	}
	return generic
}
