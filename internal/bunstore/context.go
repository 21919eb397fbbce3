package bunstore

import (
	"context"

	"github.com/neatous/go-translatable/internal/translated"
)

type contextKey string

const listenerKey contextKey = "translatable.bunstore.listener"

// WithListener attaches a lifecycle listener to the context so bun model
// hooks can fire the pre-insert notification. Queries issued without a
// listener on the context skip the notification silently.
func WithListener(ctx context.Context, listener *translated.Listener) context.Context {
	if listener == nil {
		return ctx
	}
	return context.WithValue(ctx, listenerKey, listener)
}

// ListenerFromContext extracts the listener installed by WithListener.
func ListenerFromContext(ctx context.Context) *translated.Listener {
	if ctx == nil {
		return nil
	}
	listener, _ := ctx.Value(listenerKey).(*translated.Listener)
	return listener
}
