package translated

import (
	"github.com/neatous/go-translatable/internal/logging"
	"github.com/neatous/go-translatable/pkg/interfaces"
)

// LocaleReceiver is the slice of the holder surface the listener needs.
// Entities embedding Holder satisfy it through method promotion.
type LocaleReceiver interface {
	ApplyLocales(current, fallback string)
}

// Listener is the lifecycle glue between the persistence layer and the
// holder: on "instance loaded" and "instance about to be inserted" it asks
// the locale provider for the ambient locale pair and applies it to the
// entity. The provider is consulted once per notification.
type Listener struct {
	locales interfaces.LocaleProvider
	logger  interfaces.Logger
}

// NewListener wires a locale provider into lifecycle notifications. A nil
// provider yields a listener whose notifications are no-ops.
func NewListener(locales interfaces.LocaleProvider, provider interfaces.LoggerProvider) *Listener {
	return &Listener{
		locales: locales,
		logger:  logging.ResolveLogger(provider),
	}
}

// InstanceLoaded handles the post-load notification.
func (l *Listener) InstanceLoaded(entity LocaleReceiver) {
	l.apply("loaded", entity)
}

// BeforeInsert handles the pre-insert notification, the last point at which
// locale state can change before the persistence layer takes over.
func (l *Listener) BeforeInsert(entity LocaleReceiver) {
	l.apply("before_insert", entity)
}

func (l *Listener) apply(event string, entity LocaleReceiver) {
	if l == nil || l.locales == nil || entity == nil {
		return
	}

	current := l.locales.CurrentLocale()
	fallback := l.locales.FallbackLocale()
	entity.ApplyLocales(current, fallback)

	l.logger.Trace("translatable.locales.applied",
		"event", event,
		"current", current,
		"fallback", fallback,
	)
}
